// Package errors classifies failures of a reconcile run. Every error that
// leaves a component carries a Code; the ones meant for the operator also
// carry a message and a suggested next step.
package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type AppError struct {
	Code            Code
	Message         string
	InternalDetails string
	IsUserFacing    bool
	SuggestedAction string
	WrappedError    error
	StackTrace      string
}

func (e *AppError) Error() string {
	if e.WrappedError == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.WrappedError)
}

func (e *AppError) Unwrap() error {
	return e.WrappedError
}

func build(code Code, message, suggestion string, userFacing bool, cause error) *AppError {
	return &AppError{
		Code:            code,
		Message:         message,
		IsUserFacing:    userFacing,
		SuggestedAction: suggestion,
		WrappedError:    cause,
		StackTrace:      string(debug.Stack()),
	}
}

func New(code Code, message string) *AppError {
	return build(code, message, "", false, nil)
}

func NewUserFacing(code Code, message string, suggestion string) *AppError {
	return build(code, message, suggestion, true, nil)
}

// Wrap attaches code to a plain error. An error that is already an AppError
// was classified closer to its source and is returned unchanged.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	if inner := asAppError(err); inner != nil {
		return inner
	}
	return build(code, message, "", false, err)
}

// WrapUserFacing always reclassifies err under code. When err is an AppError
// its text is kept as InternalDetails together with its stack.
func WrapUserFacing(err error, code Code, message string, suggestion string) *AppError {
	if err == nil {
		return nil
	}
	wrapped := build(code, message, suggestion, true, err)
	if inner := asAppError(err); inner != nil {
		wrapped.InternalDetails = inner.Error()
		wrapped.StackTrace = inner.StackTrace
	}
	return wrapped
}

func asAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func GetCode(err error) Code {
	if appErr := asAppError(err); appErr != nil {
		return appErr.Code
	}
	return CodeUnknown
}

func Is(err error, code Code) bool {
	appErr := asAppError(err)
	return appErr != nil && appErr.Code == code
}

// Message returns the most specific message to show a caller: the first
// user-facing message in the chain, or the error text itself.
func Message(err error) string {
	msg, _, _ := GetUserFacingMessage(err)
	return msg
}

// GetUserFacingMessage walks the AppError chain and returns the first
// message marked for the operator with its suggestion. The bool is false
// when no such message exists and the raw error text is returned instead.
func GetUserFacingMessage(err error) (string, string, bool) {
	if err == nil {
		return "An unexpected error occurred.", "Check logs for more details.", false
	}
	for appErr := asAppError(err); appErr != nil; appErr = asAppError(appErr.WrappedError) {
		if appErr.IsUserFacing {
			return appErr.Message, appErr.SuggestedAction, true
		}
		if appErr.WrappedError == nil {
			break
		}
	}
	return err.Error(), "", false
}
