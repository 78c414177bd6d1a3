package cigar

import (
	"bytes"
	"fmt"
)

// Short returns the run-length CIGAR encoding of the path, each operation
// rendered as its length followed by its code. When clipped is false, clip
// runs are omitted and the remaining operations are not renumbered. An
// empty path renders as the empty string.
func (p Path) Short(clipped bool) string {
	var b bytes.Buffer
	for _, op := range p {
		if !clipped && op.Kind().IsClip() {
			continue
		}
		fmt.Fprintf(&b, "%d%v", op.Len(), op.Kind())
	}
	return b.String()
}

// Long returns the fully expanded CIGAR encoding of the path, one code
// character per unit of operation length, with the same clip-inclusion rule
// as Short.
func (p Path) Long(clipped bool) string {
	var b bytes.Buffer
	for _, op := range p {
		if !clipped && op.Kind().IsClip() {
			continue
		}
		b.Write(bytes.Repeat(opCodes[op.Kind():op.Kind()+1], op.Len()))
	}
	return b.String()
}

var kindLookup [256]OpKind

func init() {
	for i := range kindLookup {
		kindLookup[i] = lastKind
	}
	for k, c := range opCodes {
		kindLookup[c] = OpKind(k)
	}
	// Plain SAM does not distinguish match from mismatch.
	kindLookup['='] = Match
}

// Parse reads a short-form CIGAR string back into a Path.
func Parse(s string) (Path, error) {
	var ops []Op
	n := 0
	digits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if '0' <= c && c <= '9' {
			n = n*10 + int(c-'0')
			digits++
			if n >= maxOpLen {
				return nil, fmt.Errorf("operation count overflow at %d in %q: %w", i, s, ErrInvalidOp)
			}
			continue
		}
		k := kindLookup[c]
		if k == lastKind {
			return nil, fmt.Errorf("unknown operation %q at %d in %q: %w", c, i, s, ErrInvalidOp)
		}
		if digits == 0 {
			return nil, fmt.Errorf("missing operation count at %d in %q: %w", i, s, ErrInvalidOp)
		}
		op, err := NewOp(k, n)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		n, digits = 0, 0
	}
	if digits != 0 {
		return nil, fmt.Errorf("trailing operation count in %q: %w", s, ErrInvalidOp)
	}
	return NewPath(ops...)
}
