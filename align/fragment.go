package align

// Fragment is the read-side data of an alignment: the stored bases and
// qualities of the sequenced fragment, independent of how it aligned, plus
// its provenance identifiers. An alignment record composes a Fragment
// rather than extending it.
type Fragment struct {
	Bases     string // stored bases, 5'->3' as sequenced
	Qualities string // phred quality values, ASCII offset 33
	ReadGroup string
	ReadID    string
}

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	for _, p := range [][2]byte{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'},
		{'a', 't'}, {'c', 'g'}, {'g', 'c'}, {'t', 'a'},
		{'N', 'N'}, {'n', 'n'},
	} {
		complement[p[0]] = p[1]
	}
}

func revComp(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = complement[s[i]]
	}
	return string(b)
}

func reverse(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = s[i]
	}
	return string(b)
}
