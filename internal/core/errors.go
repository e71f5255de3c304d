package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Remote when the resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned by a Remote when the token is rejected
	ErrUnauthorized = errors.New("bad credentials")

	// ErrInvalidPath indicates the upload source is not an existing directory
	ErrInvalidPath = errors.New("not an existing directory")

	// ErrIsDirectory indicates a remote path resolved to a directory listing
	ErrIsDirectory = errors.New("remote path is a directory")
)

// RepositoryAccessError indicates the target repository could not be
// fetched or created. It is always fatal for an upload.
type RepositoryAccessError struct {
	Name string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("error accessing repository %q: %v", e.Name, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

// FileUploadError wraps a failure for a single file
type FileUploadError struct {
	Path string
	Err  error
}

func (e *FileUploadError) Error() string {
	return fmt.Sprintf("error uploading file %q: %v", e.Path, e.Err)
}

func (e *FileUploadError) Unwrap() error {
	return e.Err
}

// ErrorPolicy defines how per-file failures affect the rest of the upload
type ErrorPolicy int

const (
	ContinueOnFileError ErrorPolicy = iota // Report and move on (default)
	AbortOnFileError                       // Stop at the first failed file
)

func (p ErrorPolicy) String() string {
	switch p {
	case AbortOnFileError:
		return "abort"
	default:
		return "continue"
	}
}
