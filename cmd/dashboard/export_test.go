package main

import (
	"bytes"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/InteractiveDashboard/src/export"
	"github.com/iafilius/InteractiveDashboard/src/selection"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func imageWidth(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width
}

func TestRunExportMode_WritesBothCharts(t *testing.T) {
	data := writeCSV(t, "id,x,y\n1,100,200\n2,300,400\n3,500,100\n")
	out := filepath.Join(t.TempDir(), "shots")
	opts := export.DefaultOptions()
	if err := RunExportMode(data, out, selection.Of(2), opts); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{export.ScatterFile, export.BarFile} {
		if w := imageWidth(t, filepath.Join(out, name)); w != opts.Width {
			t.Fatalf("%s width %d want %d", name, w, opts.Width)
		}
	}
}

func TestRunExportMode_MissingFile(t *testing.T) {
	err := RunExportMode(filepath.Join(t.TempDir(), "nope.csv"), t.TempDir(), selection.None(), export.DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error for a missing dataset")
	}
}

func TestExportCommand_Flags(t *testing.T) {
	data := writeCSV(t, "id,x,y\n1,10,20\n")
	out := filepath.Join(t.TempDir(), "cli")
	root := newRootCmd()
	root.SetArgs([]string{"export", "--data", data, "--out", out, "--select", "1", "--width", "600", "--caption=false"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if w := imageWidth(t, filepath.Join(out, export.BarFile)); w != 600 {
		t.Fatalf("bar width %d want 600", w)
	}
}

func TestExportCommand_RejectsBadLogLevel(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"export", "--data", "x.csv", "--log-level", "loud"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestInspectCommand_Summary(t *testing.T) {
	data := writeCSV(t, "id,x,y\n1,10,20\n2,abc,5\n3,1000,600\n")
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"inspect", "--data", data})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Records: 2", "Skipped rows: 1", "line 3:", "(1 outside 0..960)", "(1 outside 0..500, bars clamp)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
