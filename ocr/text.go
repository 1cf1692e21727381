package ocr

import (
	"regexp"
	"strings"
)

// Leading ordinal like "3." or "12、" that quiz apps prefix questions with.
var leadingOrdinal = regexp.MustCompile(`^\s*\d+\s*[.．、]?\s*`)

// Bracket-style quote punctuation around quoted terms; it breaks literal
// matching against search text, so it is dropped entirely.
var bracketQuotes = strings.NewReplacer(
	"《", "", "》", "",
	"「", "", "」", "",
	"『", "", "』", "",
	"“", "", "”", "",
)

// JoinFragments concatenates fragment texts in provider order.
func JoinFragments(fragments []Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// CleanQuestion strips a single leading ordinal run and bracket quote
// punctuation from recognized question text.
func CleanQuestion(raw string) string {
	s := leadingOrdinal.ReplaceAllString(raw, "")
	s = bracketQuotes.Replace(s)
	return strings.TrimSpace(s)
}
