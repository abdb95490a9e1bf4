// Package pipe provides anonymous and named pipe streams, with named
// pipes resolved through a platform-specific logical-name namespace.
package pipe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
)

// bufferSize is the internal buffering applied to both anonymous and
// named pipe streams.
const bufferSize = 1024

// Reader is the read half of a pipe.
type Reader struct {
	r *bufio.Reader
	c io.Closer
}

func (r *Reader) Read(p []byte) (int, error) { return r.r.Read(p) }
func (r *Reader) Close() error                { return r.c.Close() }

// Writer is the write half of a pipe. Close flushes any buffered bytes
// before releasing the underlying descriptor.
type Writer struct {
	w *bufio.Writer
	c io.Closer
}

func (w *Writer) Write(p []byte) (int, error) { return w.w.Write(p) }

func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.c.Close()
		return err
	}
	return w.c.Close()
}

// Anonymous creates an anonymous in-process pipe, returning its read and
// write ends.
func Anonymous() (*Reader, *Writer, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, fmt.Errorf("pipe: anonymous: %w", err)
	}
	return &Reader{r: bufio.NewReaderSize(r, bufferSize), c: r},
		&Writer{w: bufio.NewWriterSize(w, bufferSize), c: w},
		nil
}

// namespacePrefix maps a logical pipe name onto this platform's named-pipe
// namespace: `\\.\pipe\` on Windows, `/tmp/` (FIFO) elsewhere.
func namespacePrefix() string {
	if runtime.GOOS == "windows" {
		return `\\.\pipe\`
	}
	return "/tmp/"
}

// ResolveName maps a logical pipe name onto the platform's namespace,
// exposed so callers creating the named pipe out-of-band (e.g. via
// golang.org/x/sys/unix.Mkfifo, or github.com/Microsoft/go-winio on
// Windows) agree on the same path.
func ResolveName(name string) string {
	return namespacePrefix() + name
}
