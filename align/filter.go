package align

// FilterBits select which alignments a slice query lets through. The
// numeric values are fixed for compatibility with existing callers and
// must not be reordered.
type FilterBits uint32

const (
	// PassFailed drops alignments rejected by platform/vendor quality
	// criteria.
	PassFailed FilterBits = 1 << iota
	// PassDuplicates drops PCR or optical duplicates.
	PassDuplicates
	// MinMapQuality passes alignments with mapping quality >= the
	// filter's minimum parameter.
	MinMapQuality
	// MaxMapQuality passes alignments with mapping quality <= the
	// filter's maximum parameter.
	MaxMapQuality
	// NoWraparound excludes leading wrapped-around alignments on
	// circular references.
	NoWraparound
	// StartWithinSlice requires the alignment start position to fall
	// within the queried slice instead of any overlap.
	StartWithinSlice
)

// Category classifies an alignment as primary or secondary.
type Category int

const (
	Primary   Category = 1
	Secondary Category = 2
	All       Category = Primary | Secondary
)

// String returns a human readable category name.
func (c Category) String() string {
	switch c {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case All:
		return "all"
	}
	return "unknown"
}
