package common

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedFormat    = errors.New("unsupported document format")
	ErrNoExtractableText    = errors.New("no extractable text")
	ErrExtractorUnavailable = errors.New("text extractor unavailable")
	ErrValidation           = errors.New("validation failed")
	ErrInternal             = errors.New("internal error")
)

// Error codes attached to AppError and to per-document diagnostics.
const (
	CodeConfig       = "CONFIG_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnsupported  = "UNSUPPORTED_FORMAT"
	CodeNoText       = "NO_TEXT"
	CodeExtractor    = "EXTRACTOR_UNAVAILABLE"
	CodeValidation   = "VALIDATION_FAILED"
	CodeTimeout      = "TIMEOUT"
	CodeInternal     = "INTERNAL"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf maps err to one of the Code* constants.
func CodeOf(err error) string {
	var appErr *AppError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &appErr) && appErr.Code != "":
		return appErr.Code
	case errors.Is(err, ErrUnsupportedFormat):
		return CodeUnsupported
	case errors.Is(err, ErrNoExtractableText):
		return CodeNoText
	case errors.Is(err, ErrExtractorUnavailable):
		return CodeExtractor
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	}
	return CodeInternal
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func FailedPreconditionError(message string) error {
	return status.Error(codes.FailedPrecondition, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return InvalidArgumentError(fmt.Sprintf(format, args...))
}

// StatusError converts err into a gRPC status error.
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch CodeOf(err) {
	case CodeInvalidInput, CodeValidation, CodeUnsupported, CodeConfig:
		return InvalidArgumentError(err.Error())
	case CodeExtractor:
		return FailedPreconditionError(err.Error())
	case CodeTimeout:
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return InternalError(err.Error())
}
