package rdf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// normalizeBlankLabel rewrites a label that is not a valid N-Triples blank node
// label, such as "nodeID://b10000", by replacing each offending rune with
// _xHEX_. Valid labels and the empty label are returned unchanged.
func normalizeBlankLabel(label string) string {
	if label == "" || isBlankLabel(label) {
		return label
	}
	// a trailing dot would end the statement
	trailing := len(strings.TrimRight(label, "."))
	var b strings.Builder
	b.Grow(len(label) + 8)
	for i := 0; i < len(label); {
		r, size := utf8.DecodeRuneInString(label[i:])
		if i < trailing && isBlankLabelRune(r, i == 0) {
			b.WriteString(label[i : i+size])
		} else {
			fmt.Fprintf(&b, "_x%X_", r)
		}
		i += size
	}
	return b.String()
}

func isBlankLabel(label string) bool {
	for i := 0; i < len(label); {
		r, size := utf8.DecodeRuneInString(label[i:])
		if !isBlankLabelRune(r, i == 0) {
			return false
		}
		i += size
	}
	return label[len(label)-1] != '.'
}

// normalizeLangTag maps a tag onto the N-Triples form [a-zA-Z]+ ('-'
// [a-zA-Z0-9]+)*. Underscores become hyphens, other characters and empty
// subtags are dropped. The result is empty when no letter-only primary
// subtag remains.
func normalizeLangTag(lang string) string {
	var b strings.Builder
	for i := 0; i < len(lang); i++ {
		c := lang[i]
		switch {
		case c == '_' || c == '-':
			b.WriteByte('-')
		case isASCIILetter(c) || isASCIIDigit(c):
			b.WriteByte(c)
		}
	}
	var subtags []string
	for _, s := range strings.Split(b.String(), "-") {
		if s != "" {
			subtags = append(subtags, s)
		}
	}
	if len(subtags) == 0 {
		return ""
	}
	for i := 0; i < len(subtags[0]); i++ {
		if !isASCIILetter(subtags[0][i]) {
			return ""
		}
	}
	return strings.Join(subtags, "-")
}
