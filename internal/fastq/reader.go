// Package fastq reads FASTQ records and partitions them across the
// per-channel output files.
package fastq

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one FASTQ entry. Head keeps the full header line (with the
// leading '@') so records round-trip unchanged.
type Record struct {
	Head string
	Seq  string
	Qual string
}

// ID normalizes the header into the read id used by the aligner: the text
// up to the first whitespace, without the '@', with a trailing /1 or /2
// pair tag removed.
func (r Record) ID() string {
	tag := strings.TrimPrefix(r.Head, "@")
	if i := strings.IndexFunc(tag, isSpace); i >= 0 {
		tag = tag[:i]
	}
	if strings.HasSuffix(tag, "/1") || strings.HasSuffix(tag, "/2") {
		return tag[:len(tag)-2]
	}
	return tag
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// Write emits the record in 4-line form.
func (r Record) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n+\n%s\n", r.Head, r.Seq, r.Qual)
	return err
}

// Reader parses 4-line FASTQ records. Malformed records abort the run.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF at end of input.
func (r *Reader) Next() (Record, error) {
	head, ok, err := r.next()
	if err != nil || !ok {
		return Record{}, orEOF(err)
	}
	if !strings.HasPrefix(head, "@") {
		return Record{}, fmt.Errorf("line %d: expected '@' at start of record", r.line)
	}
	seq, ok, err := r.next()
	if err != nil || !ok {
		return Record{}, incomplete(err, r.line)
	}
	plus, ok, err := r.next()
	if err != nil || !ok {
		return Record{}, incomplete(err, r.line)
	}
	if !strings.HasPrefix(plus, "+") {
		return Record{}, fmt.Errorf("line %d: expected '+' at start of line", r.line)
	}
	qual, ok, err := r.next()
	if err != nil || !ok {
		return Record{}, incomplete(err, r.line)
	}
	if len(seq) != len(qual) {
		return Record{}, fmt.Errorf("line %d: sequence and quality lengths differ", r.line)
	}
	return Record{Head: head, Seq: seq, Qual: qual}, nil
}

func (r *Reader) next() (string, bool, error) {
	if !r.sc.Scan() {
		return "", false, r.sc.Err()
	}
	r.line++
	return r.sc.Text(), true, nil
}

func orEOF(err error) error {
	if err == nil {
		return io.EOF
	}
	return err
}

func incomplete(err error, line int) error {
	if err == nil {
		return fmt.Errorf("line %d: incomplete record", line)
	}
	return err
}
