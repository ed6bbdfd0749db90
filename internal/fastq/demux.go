package fastq

import (
	"bufio"
	"fmt"
	"io"

	"ontdemux/internal/output"
	"ontdemux/internal/zio"
)

// Demux owns one FASTQ output file per channel key. Each file has exactly
// one writer; routing is single-pass so no locking is needed.
type Demux struct {
	files   map[string]*channelFile
	names   []string
	matched bool // matched-only: reserved channels suppressed
}

type channelFile struct {
	w  *bufio.Writer
	cl io.Closer
}

// OpenDemux creates <prefix>_<key>.fastq[.gz] for every site name and, when
// matchedOnly is false, for the three reserved channels.
func OpenDemux(prefix string, siteNames []string, compress, matchedOnly bool) (*Demux, error) {
	d := &Demux{files: make(map[string]*channelFile), matched: matchedOnly}
	keys := make([]string, 0, len(siteNames)+3)
	keys = append(keys, siteNames...)
	if !matchedOnly {
		keys = append(keys, "unmapped", "low_mapq", "unmatched")
	}
	for _, k := range keys {
		if _, dup := d.files[k]; dup {
			continue
		}
		wc, _, err := zio.Create(fmt.Sprintf("%s_%s.fastq", prefix, k), compress)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		d.files[k] = &channelFile{w: bufio.NewWriter(wc), cl: wc}
		d.names = append(d.names, k)
	}
	return d, nil
}

// Route writes rec to the channel for key. Records for suppressed channels
// are dropped; that is the point of -matched-only.
func (d *Demux) Route(key string, rec Record) error {
	f := d.files[key]
	if f == nil {
		if d.matched && output.Reserved(key) {
			return nil
		}
		return fmt.Errorf("no output channel %q", key)
	}
	return rec.Write(f.w)
}

// Close flushes and closes every channel file.
func (d *Demux) Close() error {
	var err error
	for _, k := range d.names {
		f := d.files[k]
		if ferr := f.w.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		if cerr := f.cl.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
