// Package textutil provides the text normalization shared by concept
// matching, query planning, and image ranking.
//
// The primary use cases are:
//   - Normalizing sentences (case-fold, accent and punctuation stripping)
//   - Tokenizing with per-language stopword removal
//   - Character-trigram Jaccard similarity for typo-tolerant matching
//   - Sanitizing titles, tags, and file names for filesystem use
//
// Tokens shorter than 3 characters are dropped. Languages without a
// stopword table fall back to the English list.
package textutil
