package filesystem

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by filesystem operations. Callers match them with
// [errors.Is]; every fallible operation reports exactly one kind, the first
// violated precondition.
var (
	ErrPathEmpty         = errors.New("path is empty")
	ErrPathNotFound      = errors.New("path not found")
	ErrNotADirectory     = errors.New("not a directory")
	ErrNotAFile          = errors.New("not a file")
	ErrAlreadyExists     = errors.New("already exists")
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	ErrInvalidOperation  = errors.New("invalid operation")
)

// PathError wraps an error kind with the operation and path that produced it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Is(other error) bool {
	_, ok := other.(*PathError)
	return ok
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func pathErr(op, path string, kind error) *PathError {
	return &PathError{Op: op, Path: path, Err: kind}
}
