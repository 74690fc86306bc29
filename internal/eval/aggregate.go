package eval

// NoteInsufficientResults is attached to the summary whenever fewer than two
// successful results exist to compare.
const NoteInsufficientResults = "insufficient successful responses to compare"

// Aggregate reduces per-model outcomes and pairwise metrics into summary
// statistics. All ratios lie in [0, 1]; AvgSimilarity is nil when there are
// no pairs.
func Aggregate(results []ModelResult, pairs []ComparePair) CompareSummary {
	var canonicals []string
	for _, r := range results {
		if r.usable() {
			canonicals = append(canonicals, Normalize(r.Text))
		}
	}

	var summary CompareSummary
	if len(canonicals) > 0 {
		counts := make(map[string]int)
		totalLen := 0
		for _, c := range canonicals {
			counts[c]++
			totalLen += len(c)
		}
		top := 0
		for _, n := range counts {
			if n > top {
				top = n
			}
		}
		summary.AgreementRatio = float64(top) / float64(len(canonicals))
		summary.UniqueResponses = len(counts)
		summary.AvgLengthChars = float64(totalLen) / float64(len(canonicals))
	}

	if len(pairs) > 0 {
		sum := pairs[0].TokenOverlapJaccard
		worst := pairs[0]
		for _, p := range pairs[1:] {
			sum += p.TokenOverlapJaccard
			if p.TokenOverlapJaccard < worst.TokenOverlapJaccard ||
				(p.TokenOverlapJaccard == worst.TokenOverlapJaccard && pairSortsBefore(p, worst)) {
				worst = p
			}
		}
		avg := sum / float64(len(pairs))
		summary.AvgSimilarity = &avg
		summary.MostDisagreePair = &worst
	}

	if len(canonicals) < 2 {
		summary.Notes = NoteInsufficientResults
	}
	return summary
}

// pairSortsBefore orders pairs lexicographically by (A, B); used for the
// most-disagree tie-break.
func pairSortsBefore(p, q ComparePair) bool {
	if p.A != q.A {
		return p.A < q.A
	}
	return p.B < q.B
}
