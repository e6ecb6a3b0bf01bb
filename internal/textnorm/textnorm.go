// Package textnorm holds the text normalization rules shared by the catalog,
// the routine engine and the persistence layer. Stored documents predate any
// consistent casing or accent policy, so every comparison goes through here.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases, trims and strips diacritics ("Press Banca Inclinado" and
// "press banca inclinado" compare equal, as do "día" and "dia").
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // drop combining marks
		}
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Email normalizes an email address for comparison: lowercased, whitespace
// stripped.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EmailKey converts an email into the form used inside document keys, with
// '@' and '.' replaced so the key stays a single flat token.
func EmailKey(s string) string {
	e := Email(s)
	e = strings.ReplaceAll(e, "@", "_")
	e = strings.ReplaceAll(e, ".", "_")
	return e
}

// ID builds a stable identifier from a display name: folded, spaces and
// dashes collapsed to underscores. Used as catalog document IDs.
func ID(s string) string {
	f := Fold(s)
	f = strings.ReplaceAll(f, " ", "_")
	f = strings.ReplaceAll(f, "-", "_")
	return f
}
