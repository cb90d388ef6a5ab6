package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/iafilius/InteractiveDashboard/src/dataset"
	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Load the dataset and report records, skipped rows and values outside the chart domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := dataset.LoadFile(cfg.Data.Path)
			if err != nil {
				return fmt.Errorf("load %s: %w", cfg.Data.Path, err)
			}
			printSummary(cmd.OutOrStdout(), cfg.Data.Path, res, cfg.ScaleOptions())
			return nil
		},
	}
}

func printSummary(w io.Writer, path string, res dataset.Result, opts scale.Options) {
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Records: %d\n", len(res.Records))
	fmt.Fprintf(w, "Skipped rows: %d\n", len(res.Skipped))
	for _, re := range res.Skipped {
		fmt.Fprintf(w, "  line %d: %s\n", re.Line, re.Reason)
	}
	if len(res.Records) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	outX, outY := 0, 0
	for _, r := range res.Records {
		minX, maxX = math.Min(minX, r.X), math.Max(maxX, r.X)
		minY, maxY = math.Min(minY, r.Y), math.Max(maxY, r.Y)
		if r.X < opts.XDomain[0] || r.X > opts.XDomain[1] {
			outX++
		}
		if r.Y < opts.YDomain[0] || r.Y > opts.YDomain[1] {
			outY++
		}
	}
	fmt.Fprintf(w, "x: %g..%g (%d outside %g..%g)\n", minX, maxX, outX, opts.XDomain[0], opts.XDomain[1])
	fmt.Fprintf(w, "y: %g..%g (%d outside %g..%g, bars clamp)\n", minY, maxY, outY, opts.YDomain[0], opts.YDomain[1])
}
