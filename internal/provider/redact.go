package provider

import "regexp"

// Provider errors can echo request headers back, including credentials.
var tokenLike = regexp.MustCompile(`[A-Za-z0-9_-]{20,}`)

// RedactSecrets masks long token-like substrings so provider error messages
// are safe to store on results and log.
func RedactSecrets(s string) string {
	return tokenLike.ReplaceAllStringFunc(s, func(match string) string {
		return match[:4] + "***REDACTED***" + match[len(match)-4:]
	})
}
