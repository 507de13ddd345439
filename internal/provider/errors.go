package provider

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// ManifestErrorCode categorizes manifest errors.
type ManifestErrorCode string

const (
	// ErrCodeManifestNotFound indicates the manifest file could not be read.
	ErrCodeManifestNotFound ManifestErrorCode = "MANIFEST_NOT_FOUND"

	// ErrCodeManifestParse indicates a YAML or CUE syntax or type error.
	ErrCodeManifestParse ManifestErrorCode = "MANIFEST_PARSE"

	// ErrCodeManifestInvalid indicates well-formed content that violates
	// manifest rules.
	ErrCodeManifestInvalid ManifestErrorCode = "MANIFEST_INVALID"
)

// ManifestError describes a manifest that could not be loaded.
type ManifestError struct {
	Code    ManifestErrorCode
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// IsManifestError returns true if err is or wraps a ManifestError.
func IsManifestError(err error) bool {
	var me *ManifestError
	return errors.As(err, &me)
}
