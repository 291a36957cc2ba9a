package ingest

import (
	"log"
	"regexp"
	"strings"
)

// Markers placed around every tagged name.
const (
	MarkOpen  = "<&"
	MarkClose = "!&"
)

// TagNames wraps every occurrence of any of names in text with MarkOpen and
// MarkClose. Names are matched literally; when two names could match at the
// same position the one listed first wins.
func TagNames(text string, names []string) string {
	seen := make(map[string]struct{}, len(names))
	alts := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		alts = append(alts, regexp.QuoteMeta(n))
	}
	if len(alts) == 0 {
		return text
	}

	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		log.Printf("ingest: markup pattern: %v", err)
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return MarkOpen + m + MarkClose
	})
}
