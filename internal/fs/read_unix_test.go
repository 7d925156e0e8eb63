//go:build unix

package fs

import (
	"errors"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestReadsRejectFifoWithoutOpening(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe")
	if err := syscall.Mkfifo(path, 0o644); err != nil {
		t.Skipf("mkfifo unavailable: %v", err)
	}

	done := make(chan struct{})
	var headErr, allErr error
	var content string
	go func() {
		_, headErr = ReadFileHead(path, 16)
		_, allErr = ReadAllBytes(path)
		content = ReadContent(path)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reading a fifo blocked")
	}

	if !errors.Is(headErr, ErrNotRegular) || !errors.Is(allErr, ErrNotRegular) {
		t.Fatalf("expected ErrNotRegular, got %v / %v", headErr, allErr)
	}
	var readErr *ReadError
	if !errors.As(allErr, &readErr) || readErr.Path != path {
		t.Fatalf("expected *ReadError for %s, got %v", path, allErr)
	}
	if !strings.Contains(content, "not a regular file") {
		t.Fatalf("ReadContent = %q", content)
	}
	if IsProbablyText(path) || DetectMIME(path) != "" {
		t.Fatalf("fifo must not be classified")
	}
}
