package eval

import (
	"regexp"
	"strconv"
	"strings"
)

// Per-result heuristics attached to successful results under meta.

var hedgeTerms = map[string]struct{}{
	"maybe": {}, "perhaps": {}, "possibly": {}, "might": {},
	"uncertain": {}, "unclear": {}, "likely": {}, "unlikely": {},
	"could": {}, "should": {}, "may": {}, "appears": {}, "suggests": {},
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var (
	wordPattern        = regexp.MustCompile(`\b\w+\b`)
	bulletRequestRegex = regexp.MustCompile(`(?i)(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s+(?:bullet|bullets|points|items)`)
	bulletLineRegex    = regexp.MustCompile(`^\s*(?:[-*]|\d+\.)\s+`)
)

// HedgeCount counts hedging terms ("maybe", "likely", ...) in the text.
func HedgeCount(text string) int {
	n := 0
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := hedgeTerms[w]; ok {
			n++
		}
	}
	return n
}

// FormatCompliance scores how well the text honors a bullet/item count the
// prompt asked for. 1.0 when the prompt requests no particular count.
func FormatCompliance(prompt, text string) float64 {
	expected, ok := bulletRequestCount(prompt)
	if !ok {
		return 1.0
	}
	actual := countBullets(text)
	if actual == 0 && expected > 0 {
		return 0.0
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	denom := expected
	if denom < 1 {
		denom = 1
	}
	score := 1.0 - float64(diff)/float64(denom)
	if score < 0 {
		return 0.0
	}
	return score
}

func bulletRequestCount(prompt string) (int, bool) {
	match := bulletRequestRegex.FindStringSubmatch(prompt)
	if match == nil {
		return 0, false
	}
	token := strings.ToLower(match[1])
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	n, ok := numberWords[token]
	return n, ok
}

func countBullets(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if bulletLineRegex.MatchString(line) {
			n++
		}
	}
	return n
}

// annotate attaches the heuristics above to every usable result in place.
func annotate(prompt string, results []ModelResult) {
	for i := range results {
		if !results[i].usable() {
			continue
		}
		if results[i].Meta == nil {
			results[i].Meta = make(map[string]any)
		}
		results[i].Meta["format_compliance"] = FormatCompliance(prompt, results[i].Text)
		results[i].Meta["hedge_count"] = HedgeCount(results[i].Text)
	}
}
