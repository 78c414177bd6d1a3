package cigar

import "fmt"

// Path is an ordered sequence of operations describing how a read aligns
// against a reference, read left to right in the read's stored orientation.
// A Path is immutable once constructed.
type Path []Op

// NewPath builds a Path from ops after validating structural invariants:
// every operation has positive length and clip operations occur only as a
// prefix and/or suffix run.
func NewPath(ops ...Op) (Path, error) {
	const (
		prefix = iota
		interior
		suffix
	)
	state := prefix
	for i, op := range ops {
		if op.Len() <= 0 {
			return nil, fmt.Errorf("zero-length op at %d: %w", i, ErrInvalidOp)
		}
		clip := op.Kind().IsClip()
		switch state {
		case prefix:
			if !clip {
				state = interior
			}
		case interior:
			if clip {
				state = suffix
			}
		case suffix:
			if !clip {
				return nil, fmt.Errorf("interior clip before op %d: %w", i, ErrMalformedPath)
			}
		}
	}
	p := make(Path, len(ops))
	copy(p, ops)
	return p, nil
}

// RefSpan returns the number of reference positions consumed by the path.
func (p Path) RefSpan() int {
	var n int
	for _, op := range p {
		n += op.Len() * op.Kind().Consumes().Reference
	}
	return n
}

// ReadSpan returns the number of read bases consumed by the path. When
// clips is false, soft-clip runs are excluded from the count.
func (p Path) ReadSpan(clips bool) int {
	var n int
	for _, op := range p {
		if !clips && op.Kind().IsClip() {
			continue
		}
		n += op.Len() * op.Kind().Consumes().Read
	}
	return n
}

// Valid reports whether the path covers exactly readLen stored read bases.
func (p Path) Valid(readLen int) bool {
	return p.ReadSpan(true) == readLen
}

// ClipEdge selects the leading or trailing end of a path.
type ClipEdge int

const (
	ClipLeft ClipEdge = iota
	ClipRight
)

// SoftClip returns the length of the soft-clip run at the given edge, or 0
// when the edge carries no soft clip.
func (p Path) SoftClip(edge ClipEdge) int {
	if edge == ClipRight {
		for i := len(p) - 1; i >= 0; i-- {
			switch p[i].Kind() {
			case SoftClip:
				return p[i].Len()
			case HardClip:
				continue
			default:
				return 0
			}
		}
		return 0
	}
	for _, op := range p {
		switch op.Kind() {
		case SoftClip:
			return op.Len()
		case HardClip:
			continue
		default:
			return 0
		}
	}
	return 0
}

// String returns the full short-form CIGAR of the path.
func (p Path) String() string {
	return p.Short(true)
}
