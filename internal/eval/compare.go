package eval

// Compare computes pairwise similarity metrics over every unordered pair of
// successful, non-empty results. Fewer than two eligible results yield an
// empty (but non-nil) pair list.
func Compare(results []ModelResult) []ComparePair {
	type candidate struct {
		id        string
		canonical string
		tokens    map[string]struct{}
	}
	var eligible []candidate
	for _, r := range results {
		if !r.usable() {
			continue
		}
		canonical := Normalize(r.Text)
		eligible = append(eligible, candidate{id: r.Model, canonical: canonical, tokens: Tokenize(canonical)})
	}

	pairs := make([]ComparePair, 0, len(eligible)*(len(eligible)-1)/2)
	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			a, b := eligible[i], eligible[j]
			if b.id < a.id {
				a, b = b, a
			}
			pairs = append(pairs, ComparePair{
				A:                   a.id,
				B:                   b.id,
				TokenOverlapJaccard: jaccard(a.tokens, b.tokens),
				LengthRatio:         lengthRatio(len(a.canonical), len(b.canonical)),
				KeywordCoverage:     keywordCoverage(a.tokens, b.tokens),
			})
		}
	}
	return pairs
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

// jaccard is |A ∩ B| / |A ∪ B|, 0 on an empty union.
func jaccard(a, b map[string]struct{}) float64 {
	inter := intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// lengthRatio is min/max over canonical character counts, 1.0 when both are
// equal length including both empty.
func lengthRatio(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	if b == 0 {
		return 1.0
	}
	return float64(a) / float64(b)
}

// keywordCoverage is the fraction of the smaller token set covered by the
// intersection, with a floor of 1 on the divisor.
func keywordCoverage(a, b map[string]struct{}) float64 {
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller < 1 {
		smaller = 1
	}
	return float64(intersection(a, b)) / float64(smaller)
}
