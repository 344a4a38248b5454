package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/jbclements/t-test/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeEmptySample       = "EMPTY_SAMPLE"
	CodeDegenerateSamples = "DEGENERATE_SAMPLES"
	CodeComputationError  = "COMPUTATION_ERROR"
	CodeCancelled         = "CANCELLED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// Cancelled reports a request abandoned because its context ended
func Cancelled(message string, cause error) *AppError {
	return &AppError{Code: CodeCancelled, Message: message, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FromDomain classifies a domain error under an application code. Errors
// that already carry a code are returned unchanged.
func FromDomain(err error) error {
	if err == nil || IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: CodeCancelled, Message: "request cancelled", Cause: err}
	case core.IsEmptySampleError(err):
		return &AppError{Code: CodeEmptySample, Message: "sample must not be empty", Cause: err}
	case core.IsDegenerateError(err):
		return &AppError{Code: CodeDegenerateSamples, Message: "test statistic is undefined", Cause: err}
	case stderrors.Is(err, core.ErrInvalidArgument):
		return &AppError{Code: CodeInvalidInput, Message: "invalid input", Cause: err}
	case core.IsComputationError(err):
		return &AppError{Code: CodeComputationError, Message: "test could not be computed", Cause: err}
	case core.IsNotFoundError(err):
		return &AppError{Code: CodeNotFound, Message: "not found", Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: "internal error", Cause: err}
}

// HTTPStatus maps an error code to the status the API responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeEmptySample, CodeDegenerateSamples, CodeComputationError:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeCancelled:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
