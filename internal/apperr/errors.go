package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Match with errors.Is.
var (
	NotFound          = errors.New("not found")
	InsufficientStock = errors.New("insufficient stock")
	DuplicateReview   = errors.New("duplicate review")
	Validation        = errors.New("validation failure")
	Unauthorized      = errors.New("unauthorized")
	Forbidden         = errors.New("forbidden")
	Conflict          = errors.New("conflict")
	Upstream          = errors.New("upstream failure")
)

// Error carries a user facing message and the kind it belongs to.
type Error struct {
	kind error
	msg  string
}

func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the first known kind found in err's chain, or nil.
func Kind(err error) error {
	for _, k := range []error{
		NotFound, InsufficientStock, DuplicateReview, Validation,
		Unauthorized, Forbidden, Conflict, Upstream,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Messages flattens a joined error into its individual messages.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
