// Package align defines the alignment record aggregate: a single read
// aligned against a reference, its alignment path, and the derivations a
// caller can ask of it. All derivations are pure functions of the record's
// immutable fields, so concurrent reads need no locking.
package align

import (
	"errors"
	"fmt"

	"github.com/ngskit/alnview/cigar"
)

var (
	// ErrUnavailable is returned when an accessed field was not populated
	// by the record's source.
	ErrUnavailable = errors.New("align: field unavailable")
	// ErrNotFound is returned when a mate id cannot be resolved.
	ErrNotFound = errors.New("align: record not found")
)

// MapQMissing is the sentinel mapping quality of records whose source did
// not compute one.
const MapQMissing = 0xFF

// Mate identifies the paired alignment of a record. It is a lookup key,
// never an owning reference; resolving it goes through an external
// Resolver and may fail.
type Mate struct {
	ID      string
	Ref     string
	Reverse bool
}

// Resolver locates alignment records by id. Lookups must be idempotent:
// resolving the same id twice yields equivalent records.
type Resolver interface {
	ResolveMate(id string) (*Record, error)
}

// Data carries the materialized fields of an alignment record as supplied
// by the retrieval collaborator.
type Data struct {
	ID        string
	Ref       string
	Pos       int // 0-based start on the reference
	MapQ      int
	Reverse   bool
	Category  Category
	Path      cigar.Path
	TLen      int
	RNA       byte // '+', '-' or 0 when unknown
	Duplicate bool
	QCFail    bool
	Mate      *Mate
	Fragment  Fragment
}

// Record is a single alignment of a read against a reference. It owns its
// path and fragment data for its lifetime and is immutable after
// construction.
type Record struct {
	id        string
	ref       string
	pos       int
	mapq      int
	rev       bool
	category  Category
	path      cigar.Path
	tlen      int
	rna       byte
	duplicate bool
	qcFail    bool
	mate      *Mate
	frag      Fragment
}

// NewRecord builds a Record from materialized data, checking that the path
// covers the stored read bases when bases are present.
func NewRecord(d Data) (*Record, error) {
	if d.Fragment.Bases != "" && !d.Path.Valid(len(d.Fragment.Bases)) {
		return nil, fmt.Errorf("%s: path covers %d bases, read has %d: %w",
			d.ID, d.Path.ReadSpan(true), len(d.Fragment.Bases), cigar.ErrMalformedPath)
	}
	cat := d.Category
	if cat == 0 {
		cat = Primary
	}
	return &Record{
		id:        d.ID,
		ref:       d.Ref,
		pos:       d.Pos,
		mapq:      d.MapQ,
		rev:       d.Reverse,
		category:  cat,
		path:      d.Path,
		tlen:      d.TLen,
		rna:       d.RNA,
		duplicate: d.Duplicate,
		qcFail:    d.QCFail,
		mate:      d.Mate,
		frag:      d.Fragment,
	}, nil
}

// ID returns the alignment id, unique within its originating collection.
func (r *Record) ID() string { return r.id }

// Ref returns the name of the reference sequence.
func (r *Record) Ref() string { return r.ref }

// Start returns the 0-based start position on the reference.
func (r *Record) Start() int { return r.pos }

// End returns the position one past the last reference position covered.
func (r *Record) End() int { return r.pos + r.path.RefSpan() }

// Len returns the length of the alignment projected on the reference.
func (r *Record) Len() int { return r.path.RefSpan() }

// MappingQuality returns the mapping confidence score, or ErrUnavailable
// when the source did not compute one.
func (r *Record) MappingQuality() (int, error) {
	if r.mapq == MapQMissing {
		return 0, fmt.Errorf("%s: mapping quality: %w", r.id, ErrUnavailable)
	}
	return r.mapq, nil
}

// Reverse reports whether the alignment orientation is reversed with
// respect to the reference.
func (r *Record) Reverse() bool { return r.rev }

// Category returns the alignment category.
func (r *Record) Category() Category { return r.category }

// IsDuplicate reports whether the record is flagged as a PCR or optical
// duplicate.
func (r *Record) IsDuplicate() bool { return r.duplicate }

// IsQCFail reports whether the record failed platform/vendor quality
// criteria.
func (r *Record) IsQCFail() bool { return r.qcFail }

// Path returns the alignment path.
func (r *Record) Path() cigar.Path { return r.path }

// TemplateLength returns the span implied by the paired fragment, 0 when
// not applicable.
func (r *Record) TemplateLength() int { return r.tlen }

// RNAOrientation returns '+' when the positive strand is transcribed, '-'
// when the negative strand is, and '?' when unknown. It is a property of
// the transcript, distinct from the alignment orientation flag.
func (r *Record) RNAOrientation() byte {
	switch r.rna {
	case '+', '-':
		return r.rna
	}
	return '?'
}

// SoftClip returns the soft-clip length at the given edge, 0 when absent.
func (r *Record) SoftClip(edge cigar.ClipEdge) int {
	return r.path.SoftClip(edge)
}

// ShortCigar returns the run-length CIGAR text of the alignment.
func (r *Record) ShortCigar(clipped bool) string {
	return r.path.Short(clipped)
}

// LongCigar returns the per-base expanded CIGAR text of the alignment.
func (r *Record) LongCigar(clipped bool) string {
	return r.path.Long(clipped)
}

// Project maps a 0-based reference position onto the read. Read offsets
// are clip-inclusive: coordinate 0 is the first stored base, soft clips
// included.
func (r *Record) Project(refPos int) (cigar.Projection, error) {
	return r.path.Project(r.pos, refPos)
}

// ProjectPacked returns the projection of refPos packed into a single
// 64-bit value, offset in the upper half and extent in the lower half.
func (r *Record) ProjectPacked(refPos int) (uint64, error) {
	pr, err := r.Project(refPos)
	if err != nil {
		return 0, err
	}
	return pr.Pack(), nil
}

// HasMate reports whether the record has a paired mate alignment.
func (r *Record) HasMate() bool { return r.mate != nil }

// MateID returns the id of the mate alignment, or ErrUnavailable when the
// record has no mate.
func (r *Record) MateID() (string, error) {
	if r.mate == nil {
		return "", fmt.Errorf("%s: mate id: %w", r.id, ErrUnavailable)
	}
	return r.mate.ID, nil
}

// MateRef returns the reference spec of the mate alignment, or
// ErrUnavailable when the record has no mate.
func (r *Record) MateRef() (string, error) {
	if r.mate == nil {
		return "", fmt.Errorf("%s: mate reference: %w", r.id, ErrUnavailable)
	}
	return r.mate.Ref, nil
}

// MateReverse reports the mate alignment orientation, or ErrUnavailable
// when the record has no mate.
func (r *Record) MateReverse() (bool, error) {
	if r.mate == nil {
		return false, fmt.Errorf("%s: mate orientation: %w", r.id, ErrUnavailable)
	}
	return r.mate.Reverse, nil
}

// Mate resolves the mate alignment through res. It fails with
// ErrUnavailable when the record has no mate and with ErrNotFound when the
// resolver cannot locate the mate id; callers wanting to branch on
// presence should check HasMate first.
func (r *Record) Mate(res Resolver) (*Record, error) {
	if r.mate == nil {
		return nil, fmt.Errorf("%s: no mate: %w", r.id, ErrUnavailable)
	}
	m, err := res.ResolveMate(r.mate.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: mate %s: %w", r.id, r.mate.ID, err)
	}
	return m, nil
}

// Bases returns the full stored fragment bases.
func (r *Record) Bases() string { return r.frag.Bases }

// Qualities returns the full stored fragment qualities, phred with ASCII
// offset 33.
func (r *Record) Qualities() string { return r.frag.Qualities }

// ReadGroup returns the read group of the fragment.
func (r *Record) ReadGroup() string { return r.frag.ReadGroup }

// ReadID returns the originating read id of the fragment.
func (r *Record) ReadID() string { return r.frag.ReadID }

// ClippedBases returns the stored bases with soft-clip runs removed. The
// result shares the raw data; no copy is made.
func (r *Record) ClippedBases() string {
	return clip(r.frag.Bases, r.path)
}

// ClippedQualities returns the stored qualities with soft-clip runs
// removed.
func (r *Record) ClippedQualities() string {
	return clip(r.frag.Qualities, r.path)
}

func clip(s string, p cigar.Path) string {
	if s == "" {
		return ""
	}
	l := p.SoftClip(cigar.ClipLeft)
	t := p.SoftClip(cigar.ClipRight)
	if l+t > len(s) {
		return ""
	}
	return s[l : len(s)-t]
}

// AlignedBases returns the fragment bases in aligned orientation: the
// reverse complement of the stored bases when the alignment is reversed,
// the stored bases untouched otherwise.
func (r *Record) AlignedBases() string {
	if !r.rev {
		return r.frag.Bases
	}
	return revComp(r.frag.Bases)
}

// AlignedQualities returns the fragment qualities in aligned orientation.
func (r *Record) AlignedQualities() string {
	if !r.rev {
		return r.frag.Qualities
	}
	return reverse(r.frag.Qualities)
}
