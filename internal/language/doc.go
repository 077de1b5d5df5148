// Package language provides language code normalization for narration,
// subtitles, and lexicon lookups.
//
// Codes are accepted in ISO 639-1, ISO 639-2, regional ("zh-cn", "fr_FR")
// and word form ("french"). Base reduces any of them to the primary
// subtag used to select stopwords, lexicon variants, and voices.
package language
