//go:build !windows

package pipe

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// OpenNamed opens (creating if necessary) a named pipe identified by the
// logical name, resolved via ResolveName to a FIFO path under /tmp.
// readWrite selects whether the local end is opened for reading or
// writing; a FIFO requires peers on both ends before either blocking
// open call returns.
func OpenNamed(name string, readWrite bool) (io.ReadWriteCloser, error) {
	path := ResolveName(name)
	if err := unix.Mkfifo(path, 0o600); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("pipe: mkfifo %q: %w", path, err)
	}

	flag := os.O_RDONLY
	if readWrite {
		flag = os.O_WRONLY
	}
	f, err := os.OpenFile(path, flag, 0o600)
	if err != nil {
		return nil, fmt.Errorf("pipe: open named %q: %w", path, err)
	}
	return &namedPipe{f: f, r: bufio.NewReaderSize(f, bufferSize), w: bufio.NewWriterSize(f, bufferSize)}, nil
}

type namedPipe struct {
	f *os.File
	r *bufio.Reader
	w *bufio.Writer
}

func (p *namedPipe) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *namedPipe) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p *namedPipe) Close() error {
	if err := p.w.Flush(); err != nil {
		_ = p.f.Close()
		return err
	}
	return p.f.Close()
}
