package apperrors

import "errors"

// Kinds. Use errors.Is against these; never compare messages.
var (
	ErrAuthentication      = errors.New("authentication failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDuplicateIdentity   = errors.New("identity already registered")
	ErrDuplicateFeedback   = errors.New("feedback already submitted")
	ErrValidation          = errors.New("validation failed")
	ErrPersistence         = errors.New("persistence failure")
	ErrStorageConnectivity = errors.New("storage unreachable")
	ErrLogFileMissing      = errors.New("log file not found")
)

var userFacing = map[error]bool{
	ErrAuthentication:    true,
	ErrUnauthorized:      true,
	ErrDuplicateIdentity: true,
	ErrDuplicateFeedback: true,
	ErrValidation:        true,
	ErrLogFileMissing:    true,
}

// Error carries a kind, a message safe to show to the user, and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// UserFacing reports whether Message may be shown to the caller verbatim.
func (e *Error) UserFacing() bool {
	return userFacing[e.Kind]
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func Validation(message string) *Error {
	return New(ErrValidation, message)
}

func Persistence(cause error) *Error {
	return Wrap(ErrPersistence, "storage operation failed", cause)
}

func Connectivity(cause error) *Error {
	return Wrap(ErrStorageConnectivity, "cannot reach the database", cause)
}
