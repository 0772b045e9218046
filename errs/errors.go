package errs

import "fmt"

// Kind classifies an error so the HTTP boundary can pick a status code
// without inspecting message text.
type Kind int

const (
	// Validation is returned for missing or malformed input.
	Validation Kind = iota + 1
	// NotFound is returned when a referenced user, post, comment or
	// bookmark does not exist.
	NotFound
	// Authorization is returned when the actor is not permitted to
	// mutate the target.
	Authorization
	// Duplicate is returned on a uniqueness violation. Callers treat it
	// as a benign no-op unless stated otherwise.
	Duplicate
	// Persistence is returned for connection, timeout or driver
	// failures. It is logged and surfaced as a server error.
	Persistence
)

// Error carries a kind, a caller-facing message and an optional wrapped
// cause (usually a driver error).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Public returns the message safe to show a client. Wrapped driver
// detail is never included.
func (e *Error) Public() string { return e.Message }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
