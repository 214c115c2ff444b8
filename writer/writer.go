// Package writer owns the output artifact: a single growing file the
// assembler appends segment payloads to.
package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports a failure to open, write, or finalize the output
// artifact.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s output %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer appends raw segment bytes to a growing output container.
type Writer interface {
	// AppendSegment writes one segment's payload at the current end of
	// the output.
	AppendSegment(b []byte) error
	// Close flushes buffered data and finalizes the output. Safe to call
	// more than once.
	Close() error
}

type fileWriter struct {
	path   string
	f      *os.File
	buf    *bufio.Writer
	closed bool
}

// NewFile opens path for writing. It refuses to overwrite an existing
// file and creates missing parent directories.
func NewFile(path string) (Writer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, &WriteError{Path: path, Op: "create", Err: err}
		}
	}
	// O_EXCL makes the refuse-to-overwrite check atomic
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, &WriteError{Path: path, Op: "create", Err: err}
	}
	return &fileWriter{path: path, f: f, buf: bufio.NewWriter(f)}, nil
}

func (w *fileWriter) AppendSegment(b []byte) error {
	if _, err := w.buf.Write(b); err != nil {
		return &WriteError{Path: w.path, Op: "write", Err: err}
	}
	return nil
}

func (w *fileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.buf.Flush(); err != nil {
		_ = w.f.Close()
		return &WriteError{Path: w.path, Op: "finalize", Err: err}
	}
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		return &WriteError{Path: w.path, Op: "finalize", Err: err}
	}
	if err := w.f.Close(); err != nil {
		return &WriteError{Path: w.path, Op: "finalize", Err: err}
	}
	return nil
}
