package errors

import (
	"fmt"
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
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
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

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInputMissing  = "INPUT_MISSING"
	CodeWorkbookRead  = "WORKBOOK_READ"
	CodeWorkbookWrite = "WORKBOOK_WRITE"
	CodeSheetMissing  = "SHEET_MISSING"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputMissing(path string) *AppError {
	return New(CodeInputMissing, fmt.Sprintf("input file not found: %s", path))
}

func SheetMissing(name string) *AppError {
	return New(CodeSheetMissing, fmt.Sprintf("worksheet %q not found", name))
}

func WorkbookRead(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeWorkbookRead,
		Message: fmt.Sprintf("failed to read workbook %s", path),
		Cause:   cause,
	}
}

func WorkbookWrite(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeWorkbookWrite,
		Message: fmt.Sprintf("failed to write workbook %s", path),
		Cause:   cause,
	}
}
