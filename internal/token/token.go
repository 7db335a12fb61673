// Package token splits a raw command line into whitespace-separated
// tokens. It does no interpretation: quoting, escaping, globbing and
// variable expansion are all explicitly out of scope (spec §1, §4.1).
package token

import "strings"

// Tokenize splits input on runs of ASCII space or tab. Empty input (or
// input that is all whitespace) yields an empty slice, signaling
// "nothing to do" to the caller.
func Tokenize(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}
