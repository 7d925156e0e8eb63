package fs

import (
	"errors"
	"io"
	"os"
)

// ReadAllBytes returns the whole content of path.
func ReadAllBytes(path string) ([]byte, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return data, nil
}

// ReadText returns the content of path decoded as text.
func ReadText(path string) (string, error) {
	data, err := ReadAllBytes(path)
	if err != nil {
		return "", err
	}
	return DecodeText(data), nil
}

// ReadContent is ReadText for display: a failure becomes a message the
// preview can show instead of the content.
func ReadContent(path string) string {
	text, err := ReadText(path)
	if err != nil {
		return ReadFailureMessage(path, err)
	}
	return text
}

// ReadFailureMessage describes a failed read of path for the user.
func ReadFailureMessage(path string, err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "Could not read " + path + ": the file does not exist."
	case errors.Is(err, os.ErrPermission):
		return "Could not read " + path + ": permission denied."
	case errors.Is(err, ErrNotRegular):
		return "Could not read " + path + ": not a regular file."
	}
	var readErr *ReadError
	if errors.As(err, &readErr) {
		err = readErr.Cause
	}
	return "Could not read " + path + ": " + err.Error()
}
