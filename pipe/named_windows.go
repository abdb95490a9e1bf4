//go:build windows

package pipe

import (
	"fmt"
	"io"

	"github.com/Microsoft/go-winio"
)

// OpenNamed opens (creating if necessary) a named pipe identified by the
// logical name, resolved via ResolveName to a \\.\pipe\ path. readWrite
// is accepted for parity with the Unix FIFO implementation; go-winio's
// named pipes are always bidirectional once connected.
func OpenNamed(name string, readWrite bool) (io.ReadWriteCloser, error) {
	_ = readWrite
	path := ResolveName(name)

	if l, err := winio.ListenPipe(path, nil); err == nil {
		conn, acceptErr := l.Accept()
		if acceptErr != nil {
			_ = l.Close()
			return nil, fmt.Errorf("pipe: accept named %q: %w", path, acceptErr)
		}
		return conn, nil
	}

	conn, err := winio.DialPipe(path, nil)
	if err != nil {
		return nil, fmt.Errorf("pipe: dial named %q: %w", path, err)
	}
	return conn, nil
}
