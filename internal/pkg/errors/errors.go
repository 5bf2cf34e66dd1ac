package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`

	// kind - исходная sentinel-ошибка; копии WithDetails/WithMessage её сохраняют
	kind *AppError
	// refined - уточнение общей ошибки с тем же кодом (ErrEmptyBatch для INVALID_REQUEST)
	refined bool
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches copies of the same sentinel. A general sentinel also matches every error
// with its code; a refined one matches only itself.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.kind != nil && e.kind == t.kind {
		return true
	}
	return !t.refined && e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	e := &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
	e.kind = e
	return e
}

// Refine - более узкая ошибка с кодом и статусом parent
func Refine(parent *AppError, message string) *AppError {
	e := New(parent.Code, message, parent.StatusCode)
	e.refined = true
	return e
}

// WithDetails returns a copy of the error carrying details; the receiver is left untouched.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of the error with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// AsAppError unwraps err into an AppError, falling back to ErrInternalServer.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}
