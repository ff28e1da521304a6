package models

import "fmt"

// CustomError classifies an error at the service boundary. Message is safe
// to return to callers; Err keeps the underlying cause for logs.
type CustomError struct {
	Code    string
	Message string
	Err     error
}

func (e CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
func (e CustomError) ErrorCode() string {
	return e.Code
}
func (e CustomError) Unwrap() error {
	return e.Err
}

// Error codes carried by CustomError
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL"
)

func NotFoundError(message string) CustomError {
	return CustomError{Code: ErrCodeNotFound, Message: message}
}

func InvalidInputError(message string) CustomError {
	return CustomError{Code: ErrCodeInvalidInput, Message: message}
}

func ForbiddenError(message string) CustomError {
	return CustomError{Code: ErrCodeForbidden, Message: message}
}

func ConflictError(message string) CustomError {
	return CustomError{Code: ErrCodeConflict, Message: message}
}

// InternalError wraps an unexpected storage or infrastructure failure. The
// message is what callers see; the cause only surfaces in logs.
func InternalError(message string, err error) CustomError {
	return CustomError{Code: ErrCodeInternal, Message: message, Err: err}
}
