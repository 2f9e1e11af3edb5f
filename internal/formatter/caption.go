package formatter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isCaption reports whether text looks like a numbered caption for the
// given label prefix, e.g. "图1" or "表 2" but not ordinary prose that
// merely starts with the label character.
func isCaption(text, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return false
	}
	rest := strings.TrimLeft(strings.TrimPrefix(text, prefix), " \t")
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsDigit(r)
}
