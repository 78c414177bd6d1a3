// Package alnview answers coordinate-mapping queries on alignments of
// sequencing reads against a reference genome. It models single alignment
// records, their CIGAR paths and read/reference coordinate projections,
// and provides the plumbing to materialize records from BAM files and
// report their derived values.
package alnview

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ngskit/alnview/align"
	"github.com/ngskit/alnview/collection"
	"github.com/ngskit/alnview/config"
	"github.com/ngskit/alnview/sam"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

func worker(id int, in chan *align.Record, out chan *Report, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := log.WithFields(log.Fields{
		"worker": id,
	})
	logger.Debug("Starting")

	rep := NewReport()
	for record := range in {
		rep.Collect(record)
	}
	logger.Debug("Done")

	out <- rep
}

func process(bamFile string, cfg *config.Config) (chan *Report, error) {
	var wg sync.WaitGroup

	br, err := sam.NewReader(bamFile, cfg)
	if err != nil {
		return nil, err
	}
	defer br.Close()
	out := make(chan *Report, cfg.Cpu)
	for i := 0; i < br.Workers; i++ {
		wg.Add(1)
		go worker(i+1, br.Channels[i], out, &wg)
	}

	br.Read()

	go waitProcess(out, &wg)

	return out, nil
}

func waitProcess(out chan *Report, wg *sync.WaitGroup) {
	wg.Wait()
	close(out)
}

// Process reads the input BAM file and builds a report of per-alignment
// derivations.
func Process(bamFile string, cpu, maxBuf, reads int, secondary bool) (*Report, error) {
	conf := config.NewConfig(cpu, maxBuf, reads, secondary)
	start := time.Now()
	log.Infof("Collecting alignments from %s", bamFile)
	reports, err := process(bamFile, conf)
	if err != nil {
		return nil, err
	}
	rep := <-reports
	rep.Merge(reports)
	rep.Sort()
	log.Infof("Report done in %v", time.Since(start))
	return rep, nil
}

// Load materializes every mapped record of the input BAM file into an
// in-memory collection, usable for slice queries and mate resolution.
func Load(bamFile string, cpu, maxBuf, reads int, secondary bool) (*collection.Collection, error) {
	var wg sync.WaitGroup

	conf := config.NewConfig(cpu, maxBuf, reads, secondary)
	br, err := sam.NewReader(bamFile, conf)
	if err != nil {
		return nil, err
	}
	defer br.Close()
	col := collection.New()
	for i := 0; i < br.Workers; i++ {
		wg.Add(1)
		go func(in chan *align.Record) {
			defer wg.Done()
			for record := range in {
				if err := col.Add(record); err != nil {
					log.Debug(err)
				}
			}
		}(br.Channels[i])
	}
	br.Read()
	wg.Wait()
	log.Infof("Loaded %v alignments on %v references", col.Len(), len(col.Refs()))
	return col, nil
}
