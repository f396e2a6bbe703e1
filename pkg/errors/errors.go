package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrBackupNotFound  = errors.New("backup not found")
	ErrMalformedBackup = errors.New("malformed backup")
	ErrUnencodable     = errors.New("value cannot be encoded in backup format")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrIndexNotReady   = errors.New("database has not been created or loaded")
	ErrInternal        = errors.New("internal error")
)

// Process exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitData     = 4
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to the process exit status used by the CLI.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidState), errors.Is(err, ErrIndexNotReady):
		return ExitUsage
	case errors.Is(err, ErrBackupNotFound):
		return ExitNotFound
	case errors.Is(err, ErrMalformedBackup), errors.Is(err, ErrUnencodable):
		return ExitData
	default:
		return ExitFailure
	}
}
