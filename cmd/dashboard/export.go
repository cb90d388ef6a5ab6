package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iafilius/InteractiveDashboard/src/dataset"
	"github.com/iafilius/InteractiveDashboard/src/export"
	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

type exportFlags struct {
	out      string
	selected int
	width    int
	caption  bool
}

func newExportCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render both charts to PNG files without opening a window",
		Example: `  dashboard export --data data.csv --out shots
  dashboard export --data data.xlsx --out shots --select 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sel := selection.None()
			if cmd.Flags().Changed("select") {
				sel = selection.Of(types.ID(f.selected))
			}
			opts := export.OptionsFromConfig(cfg, f.width)
			opts.Caption.Show = f.caption
			return RunExportMode(cfg.Data.Path, f.out, sel, opts)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "screenshots", "Output directory")
	cmd.Flags().IntVar(&f.selected, "select", 0, "Record id to highlight")
	cmd.Flags().IntVar(&f.width, "width", 960, "Image width in pixels")
	cmd.Flags().BoolVar(&f.caption, "caption", true, "Draw a summary caption on each image")
	return cmd
}

// RunExportMode loads dataPath and writes scatter.png and bar.png under outDir.
func RunExportMode(dataPath, outDir string, sel selection.Selection, opts export.Options) error {
	res, err := dataset.LoadFile(dataPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", dataPath, err)
	}
	for _, re := range res.Skipped {
		logging.Warnf("skipped line %d: %s", re.Line, re.Reason)
	}
	if id, ok := sel.ID(); ok {
		if _, found := res.Records.Lookup(id); !found {
			logging.Warnf("record %s not in dataset; nothing will be highlighted", id)
		}
	}
	paths, err := export.WritePNGs(outDir, res.Records, sel, opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
