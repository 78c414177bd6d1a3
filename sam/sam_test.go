package sam

import (
	"bytes"
	"errors"
	"testing"

	"github.com/biogo/hts/sam"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/cigar"
	"github.com/ngskit/alnview/collection"
)

func checkTest(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Error(err)
	}
}

func parseRecord(line []byte, t *testing.T) *sam.Record {
	t.Helper()
	sr, err := sam.NewReader(bytes.NewReader(line))
	checkTest(err, t)
	r, err := sr.Read()
	checkTest(err, t)
	return r
}

func TestNewRecord(t *testing.T) {
	for i, s := range []struct {
		line            []byte
		id, ref         string
		start, end      int
		cigar           string
		reverse         bool
		category        align.Category
		mateID, mateRef string
		mateReverse     bool
	}{
		{
			[]byte("r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*\n"),
			"r001/1", "ref", 6, 22, "8M2I4M1D3M", false, align.Primary, "r001/2", "ref", true,
		},
		{
			[]byte("r002	0	ref	9	30	3S6M1N1I4M	*	0	0	AAAAGATAAGGATA	*\n"),
			"r002", "ref", 8, 19, "3S6M1N1I4M", false, align.Primary, "", "", false,
		},
		{
			[]byte("r004	256	ref	16	30	6M14N5M	*	0	0	ATAGCTTCAGC	*\n"),
			"r004@ref:15", "ref", 15, 40, "6M14N5M", false, align.Secondary, "", "", false,
		},
		{
			[]byte("r001	147	ref	37	30	9M	=	7	-39	CAGCGGCAT	*	NM:i:1\n"),
			"r001/2", "ref", 36, 45, "9M", true, align.Primary, "r001/1", "ref", false,
		},
	} {
		rec, err := NewRecord(parseRecord(s.line, t))
		checkTest(err, t)
		if rec.ID() != s.id {
			t.Errorf("[%d] expected id %s, got %s", i, s.id, rec.ID())
		}
		if rec.Ref() != s.ref {
			t.Errorf("[%d] expected ref %s, got %s", i, s.ref, rec.Ref())
		}
		if rec.Start() != s.start || rec.End() != s.end {
			t.Errorf("[%d] expected span [%d, %d), got [%d, %d)", i, s.start, s.end, rec.Start(), rec.End())
		}
		if v := rec.ShortCigar(true); v != s.cigar {
			t.Errorf("[%d] expected cigar %s, got %s", i, s.cigar, v)
		}
		if rec.Reverse() != s.reverse {
			t.Errorf("[%d] expected reverse %v, got %v", i, s.reverse, rec.Reverse())
		}
		if rec.Category() != s.category {
			t.Errorf("[%d] expected category %v, got %v", i, s.category, rec.Category())
		}
		if rec.HasMate() != (s.mateID != "") {
			t.Errorf("[%d] expected hasMate %v, got %v", i, s.mateID != "", rec.HasMate())
		}
		if s.mateID == "" {
			continue
		}
		id, err := rec.MateID()
		checkTest(err, t)
		if id != s.mateID {
			t.Errorf("[%d] expected mate id %s, got %s", i, s.mateID, id)
		}
		ref, err := rec.MateRef()
		checkTest(err, t)
		if ref != s.mateRef {
			t.Errorf("[%d] expected mate ref %s, got %s", i, s.mateRef, ref)
		}
		rev, err := rec.MateReverse()
		checkTest(err, t)
		if rev != s.mateReverse {
			t.Errorf("[%d] expected mate reverse %v, got %v", i, s.mateReverse, rev)
		}
	}
}

func TestProjections(t *testing.T) {
	rec, err := NewRecord(parseRecord([]byte("r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*\n"), t))
	checkTest(err, t)
	for i, s := range []struct {
		refPos         int
		offset, extent uint32
	}{
		{6, 0, 1},
		{13, 7, 1},
		{14, 8, 3}, // insertion boundary
		{18, 14, 0},
		{21, 16, 1},
	} {
		pr, err := rec.Project(s.refPos)
		checkTest(err, t)
		if pr.Offset != s.offset || pr.Extent != s.extent {
			t.Errorf("[%d] project(%d): expected (%d, %d), got (%d, %d)",
				i, s.refPos, s.offset, s.extent, pr.Offset, pr.Extent)
		}
	}
	if _, err := rec.Project(22); !errors.Is(err, cigar.ErrOutOfRange) {
		t.Errorf("project(22): expected out of range, got %v", err)
	}
}

func TestFragmentFields(t *testing.T) {
	line := []byte("r005	16	ref	5	40	2S6M	*	0	0	AACGTACG	IIHHGGFF	RG:Z:grp1	XS:A:-\n")
	rec, err := NewRecord(parseRecord(line, t))
	checkTest(err, t)
	if rec.Bases() != "AACGTACG" {
		t.Errorf("expected bases AACGTACG, got %s", rec.Bases())
	}
	if rec.Qualities() != "IIHHGGFF" {
		t.Errorf("expected qualities IIHHGGFF, got %s", rec.Qualities())
	}
	if rec.ClippedBases() != "CGTACG" {
		t.Errorf("expected clipped bases CGTACG, got %s", rec.ClippedBases())
	}
	if rec.ReadGroup() != "grp1" {
		t.Errorf("expected read group grp1, got %s", rec.ReadGroup())
	}
	if rec.ReadID() != "r005" {
		t.Errorf("expected read id r005, got %s", rec.ReadID())
	}
	if v := rec.RNAOrientation(); v != '-' {
		t.Errorf("expected RNA orientation -, got %c", v)
	}
	if !rec.Reverse() {
		t.Error("expected reversed orientation")
	}
	if rec.AlignedBases() != "CGTACGTT" {
		t.Errorf("expected aligned bases CGTACGTT, got %s", rec.AlignedBases())
	}
}

// A secondary alignment and its primary parse to distinct ids and can be
// loaded into one collection, with the secondary's mate still pointing at
// the primary mate record.
func TestSecondaryRecords(t *testing.T) {
	primary, err := NewRecord(parseRecord([]byte("r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*\n"), t))
	checkTest(err, t)
	secondary, err := NewRecord(parseRecord([]byte("r001	355	ref	60	20	17M	=	37	39	TTAGATAAAGGATACTG	*\n"), t))
	checkTest(err, t)

	if primary.ID() != "r001/1" {
		t.Errorf("expected primary id r001/1, got %s", primary.ID())
	}
	if secondary.ID() != "r001/1@ref:59" {
		t.Errorf("expected secondary id r001/1@ref:59, got %s", secondary.ID())
	}
	if secondary.Category() != align.Secondary {
		t.Errorf("expected secondary category, got %v", secondary.Category())
	}
	id, err := secondary.MateID()
	checkTest(err, t)
	if id != "r001/2" {
		t.Errorf("expected mate id r001/2, got %s", id)
	}

	col := collection.New()
	if err := col.Add(primary); err != nil {
		t.Error(err)
	}
	if err := col.Add(secondary); err != nil {
		t.Error(err)
	}
	if col.Len() != 2 {
		t.Errorf("expected 2 records, got %v", col.Len())
	}
	recs := col.Slice("ref", 0, 100, collection.Filter{Category: align.Secondary})
	if len(recs) != 1 || recs[0].ID() != secondary.ID() {
		t.Errorf("expected secondary slice [%s], got %v", secondary.ID(), recs)
	}
}

func TestUnmapped(t *testing.T) {
	line := []byte("r006	4	*	0	0	*	*	0	0	AAAA	*\n")
	if _, err := NewRecord(parseRecord(line, t)); !errors.Is(err, align.ErrUnavailable) {
		t.Errorf("expected unavailable, got %v", err)
	}
}

func TestMissingMapQ(t *testing.T) {
	line := []byte("r007	0	ref	5	255	4M	*	0	0	ACGT	*\n")
	rec, err := NewRecord(parseRecord(line, t))
	checkTest(err, t)
	if _, err := rec.MappingQuality(); !errors.Is(err, align.ErrUnavailable) {
		t.Errorf("expected unavailable, got %v", err)
	}
}
