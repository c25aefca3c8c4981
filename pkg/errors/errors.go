package errors

import (
	"errors"
	"fmt"
)

var (
	ErrFormat        = errors.New("invalid or outdated index snapshot")
	ErrMergeConflict = errors.New("partial indexes share a document")
	ErrSnapshotIO    = errors.New("snapshot i/o failed")
	ErrNotExist      = errors.New("snapshot does not exist")
	ErrUnsupported   = errors.New("operation not supported by format")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
)

// Exit codes reported by the searchindex command.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitConflict = 3
	ExitIO       = 4
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

// ExitCode maps an error returned by the index pipeline to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupported):
		return ExitUsage
	case errors.Is(err, ErrMergeConflict):
		return ExitConflict
	case errors.Is(err, ErrSnapshotIO), errors.Is(err, ErrNotExist):
		return ExitIO
	default:
		return ExitFailure
	}
}

// Recoverable reports whether err only means the previous index cannot be
// reused. The build continues from an empty index in that case.
func Recoverable(err error) bool {
	return errors.Is(err, ErrFormat) || errors.Is(err, ErrNotExist) || errors.Is(err, ErrSnapshotIO)
}
