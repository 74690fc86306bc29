package eval

import "strings"

// Normalize returns the canonical form used by every metric: surrounding
// whitespace trimmed and all characters lowercased. No further cleanup is
// applied, so metrics reflect the raw surface form. Idempotent.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tokenize splits canonical text on whitespace boundaries into a set of
// tokens. Duplicates collapse; overlap metrics are set-based.
func Tokenize(canonical string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(canonical) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
