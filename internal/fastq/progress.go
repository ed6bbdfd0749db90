package fastq

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"ontdemux/internal/zio"
)

// OpenInput opens a FASTQ file for reading, optionally tracking progress
// against the on-disk size. The bar counts raw file bytes, so it stays
// accurate for gzipped inputs; decompression happens behind the proxy.
// The returned bar is nil when progress is off or the input is stdin.
func OpenInput(path string, progress bool) (io.ReadCloser, *pb.ProgressBar, error) {
	if !progress || path == "-" {
		rc, err := zio.Open(path)
		return rc, nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, nil, err
	}
	bar := pb.Full.Start64(fi.Size())
	bar.Set(pb.Bytes, true)

	br := bufio.NewReader(bar.NewProxyReader(fh))
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = fh.Close()
			return nil, nil, err
		}
		return &proxyCloser{Reader: gr, closers: []io.Closer{gr, fh}}, bar, nil
	}
	return &proxyCloser{Reader: br, closers: []io.Closer{fh}}, bar, nil
}

type proxyCloser struct {
	io.Reader
	closers []io.Closer
}

func (p *proxyCloser) Close() error {
	var err error
	for _, c := range p.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
