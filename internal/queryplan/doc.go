// Package queryplan turns a sentence into an ordered list of image-search
// queries.
//
// Builder consults the lexicon matcher for canonical concepts, then adds
// the literal ASCII tokens of the sentence, curated domain anchor phrases,
// and terms mined from same-domain reference texts. Plans are deduplicated
// by (lowercased query, category), capped, and never empty.
//
// The TermTable is built once from reference files by BuildTermTable or
// LoadTermTable and injected into the Builder; it is immutable afterwards.
package queryplan
