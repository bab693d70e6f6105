package lexicon

import "strings"

// Surface encoding of emitted tokens.  Within a token, the unit separator
// joins sub-token units (a multi-word symbol never contains spaces on the
// wire); a run of consecutive emitted tokens is wrapped and delimited by the
// doubled marker, so a decoder can split token runs from verbatim words
// unambiguously.
const (
	UnitSeparator = "_"
	RunSeparator  = "__"
)

// SanitizeToken rewrites a token into its wire form, joining any internal
// whitespace with the unit separator.
func SanitizeToken(token string) string {
	return strings.Join(strings.Fields(token), UnitSeparator)
}

// EncodeTokenRun renders consecutive emitted tokens as one wire field, e.g.
// ["tokA", "tokB"] → "__tokA__tokB__".
func EncodeTokenRun(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	sanitized := make([]string, len(tokens))
	for i, t := range tokens {
		sanitized[i] = SanitizeToken(t)
	}
	return RunSeparator + strings.Join(sanitized, RunSeparator) + RunSeparator
}

// IsTokenRun reports whether a whitespace-delimited output field is an
// encoded token run rather than a verbatim word.
func IsTokenRun(field string) bool {
	return len(field) > 2*len(RunSeparator) &&
		strings.HasPrefix(field, RunSeparator) &&
		strings.HasSuffix(field, RunSeparator)
}

// DecodeTokenRun splits an encoded run back into its wire-form tokens.
// Fields that are not token runs yield nil.
func DecodeTokenRun(field string) []string {
	if !IsTokenRun(field) {
		return nil
	}
	inner := strings.TrimPrefix(field, RunSeparator)
	inner = strings.TrimSuffix(inner, RunSeparator)
	var tokens []string
	for _, t := range strings.Split(inner, RunSeparator) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// DesanitizeToken restores a wire-form token's internal spaces for lookup.
func DesanitizeToken(wire string) string {
	return strings.ReplaceAll(wire, UnitSeparator, " ")
}
