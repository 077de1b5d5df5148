// Package lexicon maps multilingual sentences onto canonical visual concepts.
//
// A Table holds the immutable concept vocabulary (per-language surface
// forms, search template, provider category, coarse domain) plus the
// modifier and negator phrases that must not drive image choice. Default
// returns the built-in table, constructed once per process.
//
// Matcher evidences concepts in two passes: whole-word phrase matching
// against the cleaned, stopword-free sentence, then (only when nothing
// matched) character-trigram similarity between sentence tokens and
// surface forms. Hits are ordered by earliest offset, ties by declaration
// order, so results are deterministic for a given input.
package lexicon
