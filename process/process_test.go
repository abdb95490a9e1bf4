package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStart_captureStdout(t *testing.T) {
	p, err := Start(context.Background(), "/bin/echo", []string{"/bin/echo", "hello"}, Options{CaptureStdout: true})
	require.NoError(t, err)
	require.NoError(t, p.Wait())
	require.Equal(t, 0, p.ExitCode())
	require.Equal(t, "hello\n", string(p.Stdout()))
}

func TestStart_exitCodeNonZero(t *testing.T) {
	p, err := Start(context.Background(), "/bin/sh", []string{"/bin/sh", "-c", "exit 7"}, Options{})
	require.NoError(t, err)
	require.Error(t, p.Wait())
	require.Equal(t, 7, p.ExitCode())
}

func TestProcess_detach(t *testing.T) {
	p, err := Start(context.Background(), "/bin/echo", []string{"/bin/echo", "x"}, Options{})
	require.NoError(t, err)
	require.False(t, p.Detached())
	p.Detach()
	require.True(t, p.Detached())
	require.NoError(t, p.Wait())
}

func TestProcess_waitCalledTwiceFails(t *testing.T) {
	p, err := Start(context.Background(), "/bin/echo", []string{"/bin/echo", "x"}, Options{})
	require.NoError(t, err)
	require.NoError(t, p.Wait())
	require.Error(t, p.Wait())
}
