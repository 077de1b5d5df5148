// Package imagesearch queries stock photo providers and ranks the results
// for relevance to a query.
//
// Pixabay and Unsplash share one scoring base: the fraction of query tokens
// present in the candidate's tags, boosted by trigram similarity and by
// coarse domain keywords. Provider-specific boosts (photo type, likes) are
// part of a tunable Policy. Every search returns a typed Result instead of
// an error so callers can fall through to the next query.
package imagesearch
