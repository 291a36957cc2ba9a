package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// letterRun is a maximal run of letters with their combining marks.
var letterRun = regexp.MustCompile(`[\p{L}\p{M}]+`)

// TitleCase capitalizes the first letter of every letter run and lowercases
// the rest. Any non-letter starts a new run, apostrophes included
// ("Д'АРТАНЬЯН" → "Д'Артаньян", "ИВАН-ПЕТРОВ" → "Иван-Петров").
func TitleCase(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	caser := cases.Title(language.Russian)
	return letterRun.ReplaceAllStringFunc(s, caser.String)
}

// splitWords splits a candidate on runs of whitespace.
func splitWords(s string) []string {
	return strings.Fields(s)
}
