// Package storage reads and writes VCL sources.  The path "-" names
// standard input or standard output.
package storage

import (
	"context"
	"io"
	"os"
)

const StdioPath = "-"

type Engine interface {
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string) (io.WriteCloser, error)
}

// StdioEngine serves "-" from the process's standard streams.  Closing a
// reader or writer it returns leaves the stream open.
type StdioEngine struct {
	Stdin  io.Reader
	Stdout io.Writer
}

var _ Engine = (*StdioEngine)(nil)

func NewStdioEngine() *StdioEngine {
	return &StdioEngine{Stdin: os.Stdin, Stdout: os.Stdout}
}

func (s *StdioEngine) Get(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(s.Stdin), nil
}

func (s *StdioEngine) Put(context.Context, string) (io.WriteCloser, error) {
	return nopWriteCloser{s.Stdout}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Local routes "-" to a StdioEngine and everything else to a FileSystem.
type Local struct {
	*FileSystem
	Stdio *StdioEngine
}

var _ Engine = (*Local)(nil)

func NewLocalEngine() *Local {
	return &Local{FileSystem: NewFileSystem(), Stdio: NewStdioEngine()}
}

func (l *Local) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == StdioPath {
		return l.Stdio.Get(ctx, path)
	}
	return l.FileSystem.Get(ctx, path)
}

func (l *Local) Put(ctx context.Context, path string) (io.WriteCloser, error) {
	if path == StdioPath {
		return l.Stdio.Put(ctx, path)
	}
	return l.FileSystem.Put(ctx, path)
}

func ReadAll(ctx context.Context, e Engine, path string) ([]byte, error) {
	r, err := e.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func WriteAll(ctx context.Context, e Engine, path string, b []byte) error {
	w, err := e.Put(ctx, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
