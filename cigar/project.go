package cigar

import "fmt"

// Projection is the image of a reference position on the read. Offset is a
// 0-based read coordinate counted over the full stored read, soft-clip runs
// included. Extent is 1 for a plain match or mismatch, 0 when the position
// falls in a run deleted or skipped on the read, and 1+n when the matching
// unit sits at the boundary of an n-base insertion, in which case the
// ambiguous region spans [Offset, Offset+Extent).
type Projection struct {
	Offset, Extent uint32
}

// Pack encodes the projection as a single 64-bit value with the offset in
// the upper 32 bits and the extent in the lower 32 bits.
func (pr Projection) Pack() uint64 {
	return uint64(pr.Offset)<<32 | uint64(pr.Extent)
}

// Unpack decodes a value produced by Pack.
func Unpack(v uint64) Projection {
	return Projection{Offset: uint32(v >> 32), Extent: uint32(v)}
}

// Project maps the 0-based reference position refPos onto the read for a
// path aligned at reference position start. Positions outside
// [start, start+RefSpan()) fail with ErrOutOfRange.
func (p Path) Project(start, refPos int) (Projection, error) {
	if refPos < start || refPos >= start+p.RefSpan() {
		return Projection{}, fmt.Errorf("position %d outside [%d, %d): %w",
			refPos, start, start+p.RefSpan(), ErrOutOfRange)
	}
	ref, read := start, 0
	for _, op := range p {
		n := op.Len()
		switch op.Kind() {
		case Match, Mismatch:
			if refPos < ref+n {
				return Projection{Offset: uint32(read + refPos - ref), Extent: 1}, nil
			}
			ref += n
			read += n
		case Deletion, Skip:
			if refPos < ref+n {
				// The position is absent from the read; the offset
				// names the read coordinate following the deleted run.
				return Projection{Offset: uint32(read), Extent: 0}, nil
			}
			ref += n
		case Insertion:
			if refPos == ref {
				// The matching unit at ref is co-located with the
				// inserted run, so fold the run into the extent.
				return Projection{Offset: uint32(read), Extent: uint32(1 + n)}, nil
			}
			read += n
		case SoftClip:
			read += n
		}
	}
	return Projection{}, fmt.Errorf("position %d not covered: %w", refPos, ErrOutOfRange)
}
