package eval

import "fmt"

// best_of_n blends normalized length with normalized consensus. The weights
// are tunable constants, not a behavioral guarantee; the blend is monotonic
// in both inputs.
const (
	bestOfNLengthWeight    = 0.5
	bestOfNConsensusWeight = 0.5
)

// Synthesize applies the selected strategy to the successful, non-empty
// results. Pure function of its inputs: identical inputs always produce
// identical output. When nothing is usable it returns ok=false with a null
// text, which is a valid terminal state rather than an error.
func Synthesize(method Method, results []ModelResult, pairs []ComparePair) Synthesis {
	var usable []ModelResult
	for _, r := range results {
		if r.usable() {
			usable = append(usable, r)
		}
	}
	if len(usable) == 0 {
		return Synthesis{OK: false, Method: method, Text: nil, Rationale: "no usable responses"}
	}

	switch method {
	case MethodConsensusOverlap:
		return synthesizeConsensus(method, usable, pairs)
	case MethodBestOfN:
		return synthesizeBestOfN(method, usable, pairs)
	default:
		return synthesizeLongest(method, usable)
	}
}

// synthesizeLongest picks the result with the greatest canonical character
// length; ties go to the earliest requested position.
func synthesizeLongest(method Method, usable []ModelResult) Synthesis {
	best := usable[0]
	bestLen := len(Normalize(best.Text))
	for _, r := range usable[1:] {
		if n := len(Normalize(r.Text)); n > bestLen {
			best, bestLen = r, n
		}
	}
	return selected(method, best,
		fmt.Sprintf("selected %s: longest response at %d characters", best.Model, bestLen))
}

// synthesizeConsensus picks the result most agreed with by its peers: the one
// with the greatest summed pairwise jaccard overlap.
func synthesizeConsensus(method Method, usable []ModelResult, pairs []ComparePair) Synthesis {
	scores := consensusScores(usable, pairs)
	best := usable[0]
	for _, r := range usable[1:] {
		if scores[r.Model] > scores[best.Model] {
			best = r
		}
	}
	return selected(method, best,
		fmt.Sprintf("selected %s: consensus score %.3f across %d peer(s)", best.Model, scores[best.Model], len(usable)-1))
}

// synthesizeBestOfN ranks by a convex blend of normalized length and mean
// peer overlap, rewarding answers that are both complete and agreed upon.
func synthesizeBestOfN(method Method, usable []ModelResult, pairs []ComparePair) Synthesis {
	scores := consensusScores(usable, pairs)
	peers := float64(len(usable) - 1)

	maxLen := 0
	for _, r := range usable {
		if n := len(Normalize(r.Text)); n > maxLen {
			maxLen = n
		}
	}

	best := usable[0]
	bestScore := -1.0
	var bestLenPart, bestConsPart float64
	for _, r := range usable {
		lenPart := 0.0
		if maxLen > 0 {
			lenPart = float64(len(Normalize(r.Text))) / float64(maxLen)
		}
		consPart := 0.0
		if peers > 0 {
			consPart = scores[r.Model] / peers
		}
		score := bestOfNLengthWeight*lenPart + bestOfNConsensusWeight*consPart
		if score > bestScore {
			best, bestScore = r, score
			bestLenPart, bestConsPart = lenPart, consPart
		}
	}
	return selected(method, best,
		fmt.Sprintf("selected %s: composite score %.3f (length %.3f, consensus %.3f)", best.Model, bestScore, bestLenPart, bestConsPart))
}

// consensusScores sums each model's pairwise jaccard overlap against all
// other eligible models. A lone result scores 0 and wins trivially.
func consensusScores(usable []ModelResult, pairs []ComparePair) map[string]float64 {
	scores := make(map[string]float64, len(usable))
	for _, r := range usable {
		scores[r.Model] = 0
	}
	for _, p := range pairs {
		scores[p.A] += p.TokenOverlapJaccard
		scores[p.B] += p.TokenOverlapJaccard
	}
	return scores
}

func selected(method Method, r ModelResult, rationale string) Synthesis {
	text := r.Text
	return Synthesis{OK: true, Method: method, Text: &text, Rationale: rationale}
}
