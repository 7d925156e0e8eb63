package fs

import (
	"errors"
	"fmt"
)

// ErrExists is returned when a create operation finds something already at the path.
var ErrExists = errors.New("path already exists")

// ErrNotRegular is the read failure for pipes, sockets, devices and directories.
var ErrNotRegular = errors.New("not a regular file")

// ReadError wraps failures to read file content.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }
