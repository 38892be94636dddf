package quickjump

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// LegacyPlaceholder is the emoji token written by early releases.
const LegacyPlaceholder = "🔍"

// Placeholders are the tokens replaced by the encoded query.
var Placeholders = []string{"{q}", "%s", LegacyPlaceholder}

// BuildURL substitutes the percent-encoded query into template. Every
// occurrence of every placeholder is replaced; a template without placeholders
// gets the query appended. An empty template yields the encoded query alone.
func BuildURL(template, query string) string {
	encoded := EncodeQuery(query)
	if template == "" {
		return encoded
	}

	var pairs []string
	for _, tok := range Placeholders {
		if strings.Contains(template, tok) {
			pairs = append(pairs, tok, encoded)
		}
	}
	if len(pairs) == 0 {
		return template + encoded
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// EncodeQuery percent-encodes query as UTF-8, spaces as %20. Text that is not
// valid UTF-8 is returned unencoded.
func EncodeQuery(query string) string {
	if !utf8.ValidString(query) {
		return query
	}
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
