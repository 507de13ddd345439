package syncer

import (
	"errors"
	"fmt"
)

// WriteErrorCode categorizes per-file failures.
type WriteErrorCode string

const (
	// ErrCodeWriteFailed indicates a document could not be written.
	ErrCodeWriteFailed WriteErrorCode = "WRITE_FAILED"

	// ErrCodeReadFailed indicates existing content could not be read.
	ErrCodeReadFailed WriteErrorCode = "READ_FAILED"

	// ErrCodeDeleteFailed indicates a stale document could not be removed.
	ErrCodeDeleteFailed WriteErrorCode = "DELETE_FAILED"
)

// WriteError is a per-file I/O failure inside a pass.
// It never aborts the pass; it is collected in Report.Failures.
type WriteError struct {
	Code WriteErrorCode
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError returns true if err is a WriteError of any code.
// Uses errors.As to handle wrapped errors.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// IsCode returns true if err is a WriteError with code.
func IsCode(err error, code WriteErrorCode) bool {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Code == code
	}
	return false
}
