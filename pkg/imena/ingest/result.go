package ingest

import "strings"

// Status tells apart the three outcomes of an extraction.
type Status int

const (
	// StatusFound means at least one name was extracted.
	StatusFound Status = iota
	// StatusEmpty means the tagger ran but no name survived.
	StatusEmpty
	// StatusTaggerFailed means the tagger could not be run or its output read.
	StatusTaggerFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusEmpty:
		return "empty"
	case StatusTaggerFailed:
		return "tagger_failed"
	}
	return "unknown"
}

// Rendered placeholders kept for callers that consume the flat string form.
const (
	BlankSentinel   = "            "
	FailureSentinel = "tomita, doesnt work"
)

// Result is the outcome of one extraction. Names holds the filtered tagger
// candidates followed by the matched corpus names; duplicates between the
// two sources are kept.
type Result struct {
	Status Status
	Names  []string
}

// String renders the result as names joined by ", ", or as one of the
// sentinels when nothing was found or the tagger failed.
func (r Result) String() string {
	switch r.Status {
	case StatusTaggerFailed:
		return FailureSentinel
	case StatusEmpty:
		return BlankSentinel
	}
	return strings.Join(r.Names, ", ")
}
