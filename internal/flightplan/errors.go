package flightplan

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a plan name that is not in the library directory.
var ErrNotFound = errors.New("flight plan not found")

// ErrorKind is the reason a plan document was rejected.
type ErrorKind int

const (
	// KindIO means the file could not be read.
	KindIO ErrorKind = iota
	// KindMalformed means the HTML could not be parsed at all.
	KindMalformed
	// KindNoTable means the document has no <table>.
	KindNoTable
	// KindMissingColumns means a required column header was not found.
	KindMissingColumns
	// KindNoPoints means no table row produced a waypoint.
	KindNoPoints
	// KindNoRoute means departure and arrival could not be determined.
	KindNoRoute
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O Error"
	case KindMalformed:
		return "Malformed Document"
	case KindNoTable:
		return "No Table"
	case KindMissingColumns:
		return "Missing Columns"
	case KindNoPoints:
		return "No Waypoints"
	case KindNoRoute:
		return "No Route"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ParseError is returned for any document that cannot become a flight plan.
type ParseError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}
