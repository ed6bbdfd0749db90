// Package sam converts SAM alignments into the PAF record shape the
// classifier consumes. minimap2 can emit either format; accepting SAM
// avoids a conversion step for pipelines that keep SAM around.
package sam

import (
	"fmt"
	"io"

	"github.com/biogo/hts/sam"

	"ontdemux/internal/paf"
)

// ReadRecords parses a SAM stream and returns one paf.Record per
// alignment line. Read-relative coordinates are recovered from CIGAR
// clipping and flipped for reverse-strand records, where SAM stores the
// query reverse-complemented.
func ReadRecords(r io.Reader) ([]paf.Record, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading SAM header: %w", err)
	}
	var out []paf.Record
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading SAM record: %w", err)
		}
		conv, err := convert(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}

func convert(rec *sam.Record) (paf.Record, error) {
	if rec.Flags&sam.Unmapped != 0 {
		return paf.Record{
			ReadID:  rec.Name,
			ReadLen: rec.Seq.Length,
			Strand:  '*',
			Target:  "*",
		}, nil
	}
	if rec.Ref == nil {
		return paf.Record{}, fmt.Errorf("record %s: mapped but has no reference", rec.Name)
	}

	readLen, lead, trail := queryExtent(rec.Cigar)
	if readLen == 0 {
		return paf.Record{}, fmt.Errorf("record %s: cannot recover read length from CIGAR", rec.Name)
	}
	qstart, qend := lead, readLen-trail
	strand := byte('+')
	if rec.Flags&sam.Reverse != 0 {
		strand = '-'
		// SAM clips are in alignment orientation; flip back onto the read.
		qstart, qend = trail, readLen-lead
	}

	return paf.Record{
		ReadID:  rec.Name,
		ReadLen: readLen,
		QStart:  qstart,
		QEnd:    qend,
		Strand:  strand,
		Target:  rec.Ref.Name(),
		TLen:    rec.Ref.Len(),
		TStart:  rec.Pos,
		TEnd:    rec.End(),
		MapQ:    int(rec.MapQ),
	}, nil
}

// queryExtent walks the CIGAR once: full read length (hard clips
// included), leading clipped bases, trailing clipped bases.
func queryExtent(cig sam.Cigar) (readLen, lead, trail int) {
	atStart := true
	run := 0 // clip run currently accumulating at the tail
	for _, co := range cig {
		t := co.Type()
		switch t {
		case sam.CigarSoftClipped, sam.CigarHardClipped:
			readLen += co.Len()
			if atStart {
				lead += co.Len()
			} else {
				run += co.Len()
			}
		default:
			readLen += co.Len() * t.Consumes().Query
			if t.Consumes().Query > 0 || t.Consumes().Reference > 0 {
				atStart = false
				run = 0
			}
		}
	}
	return readLen, lead, run
}
