// Package sam materializes alignment records from SAM/BAM sources parsed
// by biogo/hts.
package sam

import (
	"fmt"

	"github.com/biogo/hts/sam"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/cigar"
)

var opKinds = map[sam.CigarOpType]cigar.OpKind{
	sam.CigarMatch:       cigar.Match,
	sam.CigarEqual:       cigar.Match,
	sam.CigarMismatch:    cigar.Mismatch,
	sam.CigarInsertion:   cigar.Insertion,
	sam.CigarDeletion:    cigar.Deletion,
	sam.CigarSkipped:     cigar.Skip,
	sam.CigarSoftClipped: cigar.SoftClip,
	sam.CigarHardClipped: cigar.HardClip,
	sam.CigarPadded:      cigar.Padding,
}

// NewPath converts a biogo CIGAR into an alignment path.
func NewPath(c sam.Cigar) (cigar.Path, error) {
	ops := make([]cigar.Op, 0, len(c))
	for _, co := range c {
		k, ok := opKinds[co.Type()]
		if !ok {
			return nil, fmt.Errorf("sam: unsupported operation %v: %w", co.Type(), cigar.ErrInvalidOp)
		}
		op, err := cigar.NewOp(k, co.Len())
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return cigar.NewPath(ops...)
}

// RecordID returns the collection-unique id of a parsed record: the read
// name, suffixed with the segment number for paired reads. Secondary
// alignments share their primary's flags, so they additionally carry the
// mapped locus to keep the id unique within the collection.
func RecordID(r *sam.Record) string {
	id := r.Name
	switch {
	case r.Flags&sam.Read1 != 0:
		id += "/1"
	case r.Flags&sam.Read2 != 0:
		id += "/2"
	}
	if r.Flags&sam.Secondary != 0 && r.Ref != nil {
		return fmt.Sprintf("%s@%s:%d", id, r.Ref.Name(), r.Pos)
	}
	return id
}

func mateID(r *sam.Record) string {
	if r.Flags&sam.Read1 != 0 {
		return r.Name + "/2"
	}
	return r.Name + "/1"
}

func qualities(q []byte) string {
	if len(q) == 0 || q[0] == 0xff {
		return ""
	}
	b := make([]byte, len(q))
	for i, v := range q {
		b[i] = v + 33
	}
	return string(b)
}

func auxString(r *sam.Record, tag string) string {
	aux, ok := r.Tag([]byte(tag))
	if !ok {
		return ""
	}
	if s, ok := aux.Value().(string); ok {
		return s
	}
	return ""
}

func rnaOrientation(r *sam.Record) byte {
	aux, ok := r.Tag([]byte("XS"))
	if !ok {
		return 0
	}
	switch v := aux.Value().(type) {
	case byte:
		return v
	case string:
		if len(v) == 1 {
			return v[0]
		}
	}
	return 0
}

// NewRecord materializes an alignment record from a parsed SAM/BAM record.
// Unmapped records carry no alignment path and are rejected.
func NewRecord(r *sam.Record) (*align.Record, error) {
	if r.Flags&sam.Unmapped != 0 || r.Ref == nil {
		return nil, fmt.Errorf("sam: %s is unmapped: %w", r.Name, align.ErrUnavailable)
	}
	path, err := NewPath(r.Cigar)
	if err != nil {
		return nil, fmt.Errorf("sam: %s: %v", r.Name, err)
	}
	cat := align.Primary
	if r.Flags&sam.Secondary != 0 {
		cat = align.Secondary
	}
	var mate *align.Mate
	if r.Flags&sam.Paired != 0 && r.Flags&sam.MateUnmapped == 0 && r.MateRef != nil {
		mate = &align.Mate{
			ID:      mateID(r),
			Ref:     r.MateRef.Name(),
			Reverse: r.Flags&sam.MateReverse != 0,
		}
	}
	return align.NewRecord(align.Data{
		ID:        RecordID(r),
		Ref:       r.Ref.Name(),
		Pos:       r.Pos,
		MapQ:      int(r.MapQ),
		Reverse:   r.Flags&sam.Reverse != 0,
		Category:  cat,
		Path:      path,
		TLen:      r.TempLen,
		RNA:       rnaOrientation(r),
		Duplicate: r.Flags&sam.Duplicate != 0,
		QCFail:    r.Flags&sam.QCFail != 0,
		Mate:      mate,
		Fragment: align.Fragment{
			Bases:     string(r.Seq.Expand()),
			Qualities: qualities(r.Qual),
			ReadGroup: auxString(r, "RG"),
			ReadID:    r.Name,
		},
	})
}
