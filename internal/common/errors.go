package common

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeAlreadySatisfied ErrorCode = "ALREADY_SATISFIED"
	CodeAuthFailed       ErrorCode = "AUTHENTICATION_FAILED"
	CodeTokenReused      ErrorCode = "TOKEN_REUSED"
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeProviderFailure  ErrorCode = "TRANSIENT_PROVIDER_FAILURE"
	CodeInternal         ErrorCode = "INTERNAL"
)

// AppError is an error that carries a caller-facing code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func WrapError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return NewError(CodeNotFound, message)
}

func PermissionDenied(message string) *AppError {
	return NewError(CodePermissionDenied, message)
}

func AuthFailed(message string) *AppError {
	return NewError(CodeAuthFailed, message)
}

func InvalidArgument(message string) *AppError {
	return NewError(CodeInvalidArgument, message)
}

var (
	ErrAuthFailed = AuthFailed("Authentication failed.")
	// ErrTokenReused is returned when a refresh token does not verify on a known device.
	// Every session of that device has been revoked by the time it is returned.
	ErrTokenReused = NewError(CodeTokenReused, "Refresh token reused or invalid, please sign in again")
	ErrRateLimited = NewError(CodeRateLimited, "Too many requests")
)

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// PublicMessage is the text safe to show to a client; internal errors are masked.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong!"
}
