package paf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader parses PAF records line by line. Blank lines and lines starting
// with '#' are skipped. Malformed lines are reported with their line number
// and abort the run.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// Long-read PAF lines can exceed the default scanner buffer.
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimSpace(r.sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		rec, err := parseLine(line, r.line)
		if err != nil {
			return Record{}, err
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

func parseLine(line string, ln int) (Record, error) {
	f := strings.Split(line, "\t")
	if len(f) < 12 {
		return Record{}, fmt.Errorf("line %d: short line (%d columns, need 12)", ln, len(f))
	}
	var (
		rec Record
		err error
	)
	rec.ReadID = f[0]
	if rec.ReadLen, err = parseInt(f[1], ln, "read length"); err != nil {
		return Record{}, err
	}
	if rec.QStart, err = parseInt(f[2], ln, "read start"); err != nil {
		return Record{}, err
	}
	if rec.QEnd, err = parseInt(f[3], ln, "read end"); err != nil {
		return Record{}, err
	}
	switch f[4] {
	case "+":
		rec.Strand = '+'
	case "-":
		rec.Strand = '-'
	case "*":
		rec.Strand = '*'
	default:
		return Record{}, fmt.Errorf("line %d: bad strand %q", ln, f[4])
	}
	rec.Target = f[5]
	if rec.Target != "*" {
		if rec.TLen, err = parseInt(f[6], ln, "target length"); err != nil {
			return Record{}, err
		}
		if rec.TStart, err = parseInt(f[7], ln, "target start"); err != nil {
			return Record{}, err
		}
		if rec.TEnd, err = parseInt(f[8], ln, "target end"); err != nil {
			return Record{}, err
		}
		if rec.Matches, err = parseInt(f[9], ln, "matching bases"); err != nil {
			return Record{}, err
		}
		if rec.MapQ, err = parseInt(f[11], ln, "mapq"); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func parseInt(s string, ln int, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad %s: %v", ln, what, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("line %d: negative %s", ln, what)
	}
	return v, nil
}
