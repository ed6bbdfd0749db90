// Package zio opens possibly-gzipped inputs and creates possibly-gzipped
// outputs. "-" means stdin.
package zio

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiCloser closes multiple io.Closers when Close() is called.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. Gzip is detected by magic number
// (1F 8B) or by a .gz suffix. Stdin ("-") is passed through as-is.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// writeCloser flushes the gzip stream before closing the file.
type writeCloser struct {
	io.Writer
	closers []io.Closer
}

func (w *writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create opens path for writing, wrapping it in a gzip stream when
// compress is true. The caller receives the final file name actually used
// (a .gz suffix is appended when compressing).
func Create(path string, compress bool) (io.WriteCloser, string, error) {
	if compress && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	if !compress {
		return fh, path, nil
	}
	gw := gzip.NewWriter(fh)
	return &writeCloser{Writer: gw, closers: []io.Closer{gw, fh}}, path, nil
}
