package textutil

// Trigrams returns the set of 3-rune windows of s padded with two spaces on
// each side.
func Trigrams(s string) map[string]struct{} {
	padded := []rune("  " + s + "  ")
	out := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		out[string(padded[i:i+3])] = struct{}{}
	}
	return out
}

// TrigramSimilarity is the Jaccard index of the trigram sets of the
// normalized inputs, in [0, 1].
func TrigramSimilarity(a, b string) float64 {
	return Jaccard(Trigrams(Normalize(a)), Trigrams(Normalize(b)))
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when either set is empty.
func Jaccard(ta, tb map[string]struct{}) float64 {
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
