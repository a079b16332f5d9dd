package bookshelf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfScope is returned when a path resolves outside the bookshelf home.
	ErrOutOfScope = errors.New("path is outside the bookshelf home")
	// ErrShelfNotFound is returned when a shelf does not exist.
	ErrShelfNotFound = errors.New("shelf not found")
	// ErrNoEntry is returned by providers when a catalog lookup has no match.
	ErrNoEntry = errors.New("no entry found")
	// ErrNoPrice is returned by providers when a catalog entry has no price.
	ErrNoPrice = errors.New("no price found")
)

// AmbiguousError is returned by providers when a variant selector matches
// zero or several catalog entries.
type AmbiguousError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%q matches nothing", e.Query)
	}
	return fmt.Sprintf("%q is ambiguous, candidates are: %s", e.Query, strings.Join(e.Candidates, ", "))
}
