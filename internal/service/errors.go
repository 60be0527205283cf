package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not learn which factor failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken   = errors.New("username already exists")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrFolderNameTaken = errors.New("folder name already exists")
	ErrNoteNotFound    = errors.New("note not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameTaken    = errors.New("tag name already exists")

	// Reference validation: a note's folder/tag ids must be well formed and
	// point at entities the same user owns.
	ErrInvalidFolderRef = errors.New("the folder id is not valid")
	ErrInvalidTagRef    = errors.New("the tags array contains an invalid id")

	ErrMissingTitle = errors.New("missing title in request body")
)

// IntegrityError reports a partial failure: the parent delete committed but
// the dependent reference cleanup did not, leaving dangling references. It
// must surface as a server error, never be swallowed.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity maintenance failed during %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
