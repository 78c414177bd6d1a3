// Package collection provides an in-memory alignment collection: id
// lookup, mate resolution and filtered reference-slice queries over a
// per-reference interval index.
package collection

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	log "github.com/sirupsen/logrus"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/utils"
)

type interval struct {
	rect *rtreego.Rect
	rec  *align.Record
}

// Bounds returns the location of the interval. It is used within the Rtree.
func (i *interval) Bounds() *rtreego.Rect {
	return i.rect
}

// Collection indexes alignment records by id and by reference interval.
// Loading is guarded by a mutex; once loaded, concurrent reads are safe.
type Collection struct {
	mu    sync.RWMutex
	byID  map[string]*align.Record
	trees map[string]*rtreego.Rtree
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{
		byID:  make(map[string]*align.Record),
		trees: make(map[string]*rtreego.Rtree),
	}
}

// Add inserts a record into the collection. Record ids must be unique
// within the collection.
func (c *Collection) Add(r *align.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[r.ID()]; ok {
		return fmt.Errorf("collection: duplicate id %s", r.ID())
	}
	c.byID[r.ID()] = r
	// Zero-span paths still need a non-degenerate rect.
	size := float64(utils.Max(r.Len(), 1))
	rect, err := rtreego.NewRect(rtreego.Point{float64(r.Start())}, []float64{size})
	if err != nil {
		return fmt.Errorf("collection: %s: %v", r.ID(), err)
	}
	tree, ok := c.trees[r.Ref()]
	if !ok {
		tree = rtreego.NewTree(1, 25, 50)
		c.trees[r.Ref()] = tree
		log.WithFields(log.Fields{
			"Reference": r.Ref(),
		}).Debug("New reference index")
	}
	tree.Insert(&interval{rect, r})
	return nil
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Refs returns the names of references with at least one indexed record.
func (c *Collection) Refs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs := make([]string, 0, len(c.trees))
	for ref := range c.trees {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Get returns the record with the given id, or align.ErrNotFound.
func (c *Collection) Get(id string) (*align.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("collection: %s: %w", id, align.ErrNotFound)
	}
	return r, nil
}

// ResolveMate implements align.Resolver.
func (c *Collection) ResolveMate(id string) (*align.Record, error) {
	return c.Get(id)
}

// Filter narrows a slice query. Zero value passes everything primary or
// secondary.
type Filter struct {
	Bits     align.FilterBits
	Category align.Category
	MinMapQ  int
	MaxMapQ  int
}

func (f Filter) pass(r *align.Record, start, end int) bool {
	cat := f.Category
	if cat == 0 {
		cat = align.All
	}
	if r.Category()&cat == 0 {
		return false
	}
	if f.Bits&align.PassFailed != 0 && r.IsQCFail() {
		return false
	}
	if f.Bits&align.PassDuplicates != 0 && r.IsDuplicate() {
		return false
	}
	if f.Bits&(align.MinMapQuality|align.MaxMapQuality) != 0 {
		mapq, err := r.MappingQuality()
		if err != nil {
			return false
		}
		if f.Bits&align.MinMapQuality != 0 && mapq < f.MinMapQ {
			return false
		}
		if f.Bits&align.MaxMapQuality != 0 && mapq > f.MaxMapQ {
			return false
		}
	}
	if f.Bits&align.StartWithinSlice != 0 && (r.Start() < start || r.Start() >= end) {
		return false
	}
	return true
}

// Slice returns the records on ref intersecting [start, end) that pass the
// filter, sorted by start position then id.
func (c *Collection) Slice(ref string, start, end int, f Filter) []*align.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tree, ok := c.trees[ref]
	if ok && end > start {
		rect, err := rtreego.NewRect(rtreego.Point{float64(start)}, []float64{float64(end - start)})
		if err != nil {
			log.Panic(err)
		}
		var out []*align.Record
		for _, s := range tree.SearchIntersect(rect) {
			r := s.(*interval).rec
			if r.End() <= start || r.Start() >= end {
				continue
			}
			if f.pass(r, start, end) {
				out = append(out, r)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Start() != out[j].Start() {
				return out[i].Start() < out[j].Start()
			}
			return out[i].ID() < out[j].ID()
		})
		return out
	}
	return nil
}
