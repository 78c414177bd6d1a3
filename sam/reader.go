package sam

import (
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	log "github.com/sirupsen/logrus"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/config"
	"github.com/ngskit/alnview/utils"
)

// Reader streams materialized alignment records from a BAM file, fanning
// them out over a fixed set of worker channels.
type Reader struct {
	*bam.Reader
	FileName string
	Workers  int
	Refs     []*sam.Reference
	Channels []chan *align.Record
	cfg      *config.Config
}

// NewReader opens a BAM file for record streaming.
func NewReader(bamFile string, cfg *config.Config) (*Reader, error) {
	r, err := NewBamReader(bamFile, cfg)
	if err != nil {
		return nil, err
	}
	h := r.Header()
	workers := utils.Max(cfg.Cpu, 1)
	chans := make([]chan *align.Record, workers)
	for i := range chans {
		chans[i] = make(chan *align.Record, cfg.MaxBuf)
	}
	return &Reader{
		r,
		bamFile,
		workers,
		h.Refs(),
		chans,
		cfg,
	}, nil
}

// NewBamReader opens a raw biogo BAM reader over bamFile.
func NewBamReader(bamFile string, cfg *config.Config) (*bam.Reader, error) {
	f, err := os.Open(bamFile)
	if err != nil {
		return nil, err
	}
	r, err := bam.NewReader(f, cfg.Cpu)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Read streams records to the worker channels, closing them when the
// source is exhausted or the configured record limit is reached. Unmapped
// records are skipped; records the adapter rejects are counted and logged.
func (r *Reader) Read() {
	c := 0
	skipped := 0
	reads := r.cfg.Reads
	for {
		if reads > -1 && c == reads {
			break
		}
		rec, err := r.Reader.Read()
		if err != nil {
			if err != io.EOF {
				log.Error(err)
			}
			break
		}
		if rec.Flags&sam.Unmapped != 0 {
			continue
		}
		if !r.cfg.Secondary && rec.Flags&sam.Secondary != 0 {
			continue
		}
		ar, err := NewRecord(rec)
		if err != nil {
			skipped++
			log.WithFields(log.Fields{
				"Record": rec.Name,
			}).Debug(err)
			continue
		}
		r.Channels[c%r.Workers] <- ar
		c++
	}
	if skipped > 0 {
		log.Warnf("Skipped %v records", skipped)
	}
	for i := 0; i < r.Workers; i++ {
		close(r.Channels[i])
	}
}
