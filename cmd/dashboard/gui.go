package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"github.com/iafilius/InteractiveDashboard/src/config"
	"github.com/iafilius/InteractiveDashboard/src/dataset"
	"github.com/iafilius/InteractiveDashboard/src/export"
	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/metrics"
	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/viz"
)

const prefLastDataPath = "lastDataPath"

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

type uiState struct {
	app     fyne.App
	window  fyne.Window
	cfg     *config.Config
	ctx     context.Context
	source  *dataset.Source
	dash    *viz.Dashboard
	watcher *dataset.Watcher
}

func runGUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a := app.NewWithID("com.interactive.dashboard")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow(cfg.Window.Title)
	w.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	// a remembered dataset only applies when neither flag nor environment names one
	if !cmd.Flags().Changed("data") && os.Getenv(config.EnvDataPath) == "" {
		if last := a.Preferences().String(prefLastDataPath); last != "" {
			if _, err := os.Stat(last); err == nil {
				cfg.Data.Path = last
			}
		}
	}

	m := metrics.NewCollector("dashboard")
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Errorf("metrics server: %v", err)
			}
		}()
		logging.Infof("serving metrics on %s/metrics", cfg.MetricsAddr)
	}

	src := dataset.NewSource(cfg.Data.Path,
		dataset.WithDelay(cfg.Data.LoadDelay),
		dataset.WithPoster(fyne.Do),
		dataset.WithMetrics(m),
	)
	dash := viz.NewDashboard(src, viz.DashboardOptions{
		Chart:   viz.OptionsFromConfig(cfg),
		Title:   cfg.Window.Title,
		Tagline: cfg.Window.Tagline,
		Metrics: m,
	})
	defer dash.Close()

	state := &uiState{app: a, window: w, cfg: cfg, ctx: ctx, source: src, dash: dash}
	w.SetContent(dash.Content())
	buildMenus(state)
	w.SetOnClosed(func() {
		state.stopWatch()
		dash.Close()
		cancel()
	})

	src.Load(ctx)
	state.watch()
	w.ShowAndRun()
	state.stopWatch()
	return nil
}

// watch reloads the dataset whenever its file changes on disk.
func (s *uiState) watch() {
	s.stopWatch()
	if !s.cfg.Data.Watch {
		return
	}
	w, err := dataset.Watch(s.source.Path(), s.cfg.Data.Debounce, func() {
		fyne.Do(func() { s.source.Load(s.ctx) })
	}, logging.L())
	if err != nil {
		logging.Warnf("dataset watch disabled: %v", err)
		return
	}
	s.watcher = w
}

func (s *uiState) stopWatch() {
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
}

// menus and dialogs
func buildMenus(s *uiState) {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open dataset…", func() { openDataset(s) }),
		fyne.NewMenuItem("Reload", func() { s.source.Load(s.ctx) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export charts…", func() { exportCharts(s) }),
	)
	selMenu := fyne.NewMenu("Selection",
		fyne.NewMenuItem("Clear", func() { s.dash.Store().Dispatch(selection.Clear()) }),
	)
	s.window.SetMainMenu(fyne.NewMainMenu(fileMenu, selMenu))

	canv := s.window.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openDataset(s) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { s.source.Load(s.ctx) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { s.window.Close() })
	}
}

// file open dialog
func openDataset(s *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		path := rc.URI().Path()
		s.app.Preferences().SetString(prefLastDataPath, path)
		s.window.SetTitle(fmt.Sprintf("%s - %s", s.cfg.Window.Title, filepath.Base(path)))
		s.source.SetPath(s.ctx, path)
		s.watch()
	}, s.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xlsm"}))
	d.Show()
}

// exportCharts writes both charts, with the current selection, into a chosen folder.
func exportCharts(s *uiState) {
	snap := s.source.Current()
	if snap.Status != dataset.StatusReady {
		dialog.ShowInformation("Export", "No chart to export.", s.window)
		return
	}
	sel := s.dash.Store().Current()
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		width := int(s.window.Canvas().Size().Width / 2)
		paths, err := export.WritePNGs(dir.Path(), snap.Data, sel, export.OptionsFromConfig(s.cfg, width))
		if err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		names := make([]string, len(paths))
		for i, p := range paths {
			names[i] = filepath.Base(p)
		}
		dialog.ShowInformation("Export", "Wrote "+strings.Join(names, ", "), s.window)
	}, s.window)
	d.Show()
}
