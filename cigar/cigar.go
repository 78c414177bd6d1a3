// Package cigar models the alignment path of a read against a reference as
// a sequence of run-length operations, and derives coordinate projections
// and textual CIGAR encodings from it.
package cigar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOp is returned when an operation is constructed with an
	// unknown kind or a non-positive length.
	ErrInvalidOp = errors.New("cigar: invalid operation")
	// ErrMalformedPath is returned when a path violates a structural
	// invariant, such as an interior clip run.
	ErrMalformedPath = errors.New("cigar: malformed path")
	// ErrOutOfRange is returned when a queried reference position falls
	// outside the span covered by the path.
	ErrOutOfRange = errors.New("cigar: position out of range")
)

// OpKind is the kind of a single alignment path operation.
type OpKind byte

const (
	Match OpKind = iota
	Mismatch
	Insertion
	Deletion
	SoftClip
	HardClip
	Skip
	Padding
	lastKind
)

var opCodes = []byte{'M', 'X', 'I', 'D', 'S', 'H', 'N', 'P'}

// String returns the conventional single-letter code for k.
func (k OpKind) String() string {
	if k >= lastKind {
		return "?"
	}
	return string(opCodes[k])
}

// IsClip reports whether k is a soft or hard clip.
func (k OpKind) IsClip() bool {
	return k == SoftClip || k == HardClip
}

// Consume describes how an operation kind consumes read and reference bases.
type Consume struct {
	Read, Reference int
}

var consume = []Consume{
	Match:     {Read: 1, Reference: 1},
	Mismatch:  {Read: 1, Reference: 1},
	Insertion: {Read: 1, Reference: 0},
	Deletion:  {Read: 0, Reference: 1},
	SoftClip:  {Read: 1, Reference: 0},
	HardClip:  {Read: 0, Reference: 0},
	Skip:      {Read: 0, Reference: 1},
	Padding:   {Read: 0, Reference: 0},
}

// Consumes returns the read and reference consumption of k.
func (k OpKind) Consumes() Consume {
	return consume[k]
}

// Op is a single alignment path operation, packing the kind into the low
// nibble and the length above it.
type Op uint32

// maxOpLen bounds an operation length to what the packed representation
// can hold.
const maxOpLen = 1 << 28

// NewOp returns an operation of kind k spanning n bases or positions.
// Zero-length runs are never materialized.
func NewOp(k OpKind, n int) (Op, error) {
	if k >= lastKind {
		return 0, fmt.Errorf("unknown kind %d: %w", k, ErrInvalidOp)
	}
	if n <= 0 || n >= maxOpLen {
		return 0, fmt.Errorf("bad length %d for %v: %w", n, k, ErrInvalidOp)
	}
	return Op(k) | Op(n)<<4, nil
}

// Kind returns the operation kind of o.
func (o Op) Kind() OpKind { return OpKind(o & 0xf) }

// Len returns the number of bases or positions spanned by o.
func (o Op) Len() int { return int(o >> 4) }

// String returns the short-form representation of o.
func (o Op) String() string { return fmt.Sprintf("%d%v", o.Len(), o.Kind()) }
