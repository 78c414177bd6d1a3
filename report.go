package alnview

import (
	"io"
	"sort"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/cigar"
	"github.com/ngskit/alnview/utils"
)

// Entry is the reported view of a single alignment record.
type Entry struct {
	ID        string `json:"id"`
	Ref       string `json:"ref"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Cigar     string `json:"cigar"`
	Reverse   bool   `json:"reverse,omitempty"`
	Category  string `json:"category"`
	MapQ      int    `json:"mapq"`
	LeftClip  int    `json:"leftClip,omitempty"`
	RightClip int    `json:"rightClip,omitempty"`
	TLen      int    `json:"tlen,omitempty"`
	Mate      string `json:"mate,omitempty"`
}

// NewEntry derives a report entry from a record. A missing mapping quality
// is reported as -1.
func NewEntry(r *align.Record) Entry {
	e := Entry{
		ID:        r.ID(),
		Ref:       r.Ref(),
		Start:     r.Start(),
		End:       r.End(),
		Cigar:     r.ShortCigar(true),
		Reverse:   r.Reverse(),
		Category:  r.Category().String(),
		LeftClip:  r.SoftClip(cigar.ClipLeft),
		RightClip: r.SoftClip(cigar.ClipRight),
		TLen:      r.TemplateLength(),
	}
	mapq, err := r.MappingQuality()
	if err != nil {
		mapq = -1
	}
	e.MapQ = mapq
	if id, err := r.MateID(); err == nil {
		e.Mate = id
	}
	return e
}

// Report aggregates per-alignment entries and summary counts.
type Report struct {
	Total     uint64  `json:"total"`
	Primary   uint64  `json:"primary"`
	Secondary uint64  `json:"secondary"`
	Forward   uint64  `json:"forward"`
	Reverse   uint64  `json:"reverse"`
	Paired    uint64  `json:"paired"`
	Entries   []Entry `json:"alignments"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Collect adds a record to the report.
func (rep *Report) Collect(r *align.Record) {
	rep.Total++
	switch r.Category() {
	case align.Secondary:
		rep.Secondary++
	default:
		rep.Primary++
	}
	if r.Reverse() {
		rep.Reverse++
	} else {
		rep.Forward++
	}
	if r.HasMate() {
		rep.Paired++
	}
	rep.Entries = append(rep.Entries, NewEntry(r))
}

// Update adds the counts and entries of another report.
func (rep *Report) Update(other *Report) {
	rep.Total += other.Total
	rep.Primary += other.Primary
	rep.Secondary += other.Secondary
	rep.Forward += other.Forward
	rep.Reverse += other.Reverse
	rep.Paired += other.Paired
	rep.Entries = append(rep.Entries, other.Entries...)
}

// Merge drains a channel of partial reports into rep.
func (rep *Report) Merge(others chan *Report) {
	for other := range others {
		rep.Update(other)
	}
}

// Sort orders entries by reference, start position and id. Worker fan-out
// makes the collected order nondeterministic.
func (rep *Report) Sort() {
	sort.Slice(rep.Entries, func(i, j int) bool {
		a, b := rep.Entries[i], rep.Entries[j]
		if a.Ref != b.Ref {
			return a.Ref < b.Ref
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})
}

// OutputJSON writes the report to w as indented JSON.
func (rep *Report) OutputJSON(w io.Writer) {
	utils.OutputJSON(w, rep)
}
