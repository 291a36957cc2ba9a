package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLexiconLoad marks word lists that could not be read at startup.
	ErrLexiconLoad = errors.New("lexicon load failed")
	// ErrTaggerFailure marks a failed tagger run: non-zero exit, timeout or missing output.
	ErrTaggerFailure = errors.New("tagger failed")
	// ErrParse marks tagger output that could not be decoded at all.
	ErrParse = errors.New("tagger output undecodable")
)
