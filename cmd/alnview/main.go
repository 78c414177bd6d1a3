package main

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ngskit/alnview"
	"github.com/ngskit/alnview/utils"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var (
	bam, loglevel, output string
	cpu, maxBuf, reads    int
	secondary             bool
)

func run(cmd *cobra.Command, args []string) (err error) {
	err = nil

	// Set loglevel
	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)

	logger := log.WithFields(log.Fields{
		"version":   version,
		"commit":    commit,
		"buildTime": date,
	})
	logger.Infof("Running %s", cmd.Use)
	log.Infof("Using %v out of %v logical CPUs", cpu, runtime.NumCPU())
	report, err := alnview.Process(bam, cpu, maxBuf, reads, secondary)
	if err != nil {
		return
	}

	w := utils.NewOutput(output)
	report.OutputJSON(w)

	return
}

func setAlnviewFlags(c *cobra.Command) {
	c.PersistentFlags().StringVarP(&bam, "input", "i", "", "input file (required)")
	c.PersistentFlags().StringVarP(&loglevel, "loglevel", "", "warn", "logging level")
	c.PersistentFlags().StringVarP(&output, "output", "o", "-", "output file")
	c.PersistentFlags().IntVarP(&cpu, "cpu", "c", runtime.NumCPU(), "number of cpus to be used")
	c.PersistentFlags().IntVarP(&maxBuf, "max-buf", "", 1000000, "maximum number of buffered records")
	c.PersistentFlags().IntVarP(&reads, "reads", "n", -1, "number of records to process")
	c.PersistentFlags().BoolVarP(&secondary, "secondary", "s", false, "include secondary alignments")
	c.MarkPersistentFlagRequired("input")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func buildVersion(version, commit, date string) string {
	if version == "dev" {
		version = alnview.Version()
	}
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "alnview",
		Short:   "Alignment coordinate views",
		Long:    "alnview - report alignment coordinates, CIGAR forms and projections",
		RunE:    run,
		Version: buildVersion(version, commit, date),
	}

	setAlnviewFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Debug(err)
	}
}
