package alnview

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/cigar"
)

func newRecord(t *testing.T, d align.Data) *align.Record {
	t.Helper()
	r, err := align.NewRecord(d)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func mustPath(t *testing.T, s string) cigar.Path {
	t.Helper()
	p, err := cigar.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewEntry(t *testing.T) {
	r := newRecord(t, align.Data{
		ID:       "r001/1",
		Ref:      "chr1",
		Pos:      100,
		MapQ:     30,
		Path:     mustPath(t, "3S10M2S"),
		TLen:     39,
		Mate:     &align.Mate{ID: "r001/2", Ref: "chr1"},
		Fragment: align.Fragment{Bases: "TTAGATAAAGGATAC"},
	})
	e := NewEntry(r)
	if e.ID != "r001/1" || e.Ref != "chr1" || e.Start != 100 || e.End != 110 {
		t.Errorf("unexpected entry coordinates: %+v", e)
	}
	if e.Cigar != "3S10M2S" {
		t.Errorf("expected cigar 3S10M2S, got %s", e.Cigar)
	}
	if e.LeftClip != 3 || e.RightClip != 2 {
		t.Errorf("expected clips 3/2, got %d/%d", e.LeftClip, e.RightClip)
	}
	if e.MapQ != 30 {
		t.Errorf("expected mapq 30, got %d", e.MapQ)
	}
	if e.Mate != "r001/2" {
		t.Errorf("expected mate r001/2, got %s", e.Mate)
	}
}

func TestEntryMissingMapQ(t *testing.T) {
	r := newRecord(t, align.Data{ID: "r1", Ref: "chr1", MapQ: align.MapQMissing, Path: mustPath(t, "4M")})
	if e := NewEntry(r); e.MapQ != -1 {
		t.Errorf("expected mapq -1, got %d", e.MapQ)
	}
}

func TestReportCollectMerge(t *testing.T) {
	a := NewReport()
	a.Collect(newRecord(t, align.Data{ID: "a", Ref: "chr1", Pos: 10, Path: mustPath(t, "10M")}))
	a.Collect(newRecord(t, align.Data{
		ID: "b", Ref: "chr1", Pos: 5, Reverse: true, Category: align.Secondary, Path: mustPath(t, "5M"),
	}))

	b := NewReport()
	b.Collect(newRecord(t, align.Data{
		ID: "c", Ref: "chr2", Pos: 1, Path: mustPath(t, "8M"),
		Mate: &align.Mate{ID: "d", Ref: "chr2"},
	}))

	others := make(chan *Report, 1)
	others <- b
	close(others)
	a.Merge(others)
	a.Sort()

	if a.Total != 3 || a.Primary != 2 || a.Secondary != 1 {
		t.Errorf("unexpected counts: %+v", a)
	}
	if a.Forward != 2 || a.Reverse != 1 || a.Paired != 1 {
		t.Errorf("unexpected counts: %+v", a)
	}
	var ids []string
	for _, e := range a.Entries {
		ids = append(ids, e.ID)
	}
	expected := []string{"b", "a", "c"}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("expected order %v, got %v", expected, ids)
			break
		}
	}
}

func TestReportJSON(t *testing.T) {
	rep := NewReport()
	rep.Collect(newRecord(t, align.Data{ID: "a", Ref: "chr1", Pos: 10, Path: mustPath(t, "10M")}))
	var buf bytes.Buffer
	rep.OutputJSON(&buf)
	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Total != 1 || len(decoded.Entries) != 1 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
}
