// Package config loads dashboard settings from defaults, an optional YAML file and
// environment overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

// Environment overrides, highest priority.
const (
	EnvDataPath = "DASHBOARD_DATA"
	EnvLogLevel = "DASHBOARD_LOG_LEVEL"
)

type Config struct {
	LogLevel    string       `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	MetricsAddr string       `yaml:"metrics_addr"`
	Data        DataConfig   `yaml:"data"`
	Window      WindowConfig `yaml:"window"`
	Chart       ChartConfig  `yaml:"chart"`

	// LoadedFrom lists the sources applied, lowest priority first.
	LoadedFrom []string `yaml:"-"`
}

type DataConfig struct {
	Path      string        `yaml:"path" validate:"required"`
	LoadDelay time.Duration `yaml:"load_delay" validate:"gte=0"`
	Watch     bool          `yaml:"watch"`
	Debounce  time.Duration `yaml:"debounce" validate:"gte=0"`
}

type WindowConfig struct {
	Title   string  `yaml:"title"`
	Tagline string  `yaml:"tagline"`
	Width   float32 `yaml:"width" validate:"gt=0"`
	Height  float32 `yaml:"height" validate:"gt=0"`
}

type MarginConfig struct {
	Top    float64 `yaml:"top" validate:"gte=0"`
	Right  float64 `yaml:"right" validate:"gte=0"`
	Bottom float64 `yaml:"bottom" validate:"gte=0"`
	Left   float64 `yaml:"left" validate:"gte=0"`
}

type ColorConfig struct {
	Primary        string `yaml:"primary" validate:"hexcolor"`
	Selected       string `yaml:"selected" validate:"hexcolor"`
	SelectedStroke string `yaml:"selected_stroke" validate:"hexcolor"`
	Stroke         string `yaml:"stroke" validate:"hexcolor"`
}

type HoverConfig struct {
	Duration   time.Duration `yaml:"duration" validate:"gt=0"`
	Brightness float32       `yaml:"brightness" validate:"gte=1"`
}

type ChartConfig struct {
	Margin              MarginConfig  `yaml:"margin"`
	XDomain             []float64     `yaml:"x_domain" validate:"len=2"`
	YDomain             []float64     `yaml:"y_domain" validate:"len=2"`
	Radius              float64       `yaml:"radius" validate:"gt=0"`
	BandPadding         float64       `yaml:"band_padding" validate:"gte=0,lt=1"`
	Colors              ColorConfig   `yaml:"colors"`
	StrokeWidth         float32       `yaml:"stroke_width" validate:"gt=0"`
	SelectedStrokeWidth float32       `yaml:"selected_stroke_width" validate:"gt=0"`
	Transition          time.Duration `yaml:"transition" validate:"gt=0"`
	Hover               HoverConfig   `yaml:"hover"`
}

// Default mirrors the values the dashboard was designed around.
func Default() Config {
	return Config{
		LogLevel: "info",
		Data: DataConfig{
			Path:      "data.csv",
			LoadDelay: 800 * time.Millisecond,
			Watch:     true,
			Debounce:  500 * time.Millisecond,
		},
		Window: WindowConfig{
			Title:   "Interactive Dashboard",
			Tagline: "This dashboard explains why circles and bars are best friends",
			Width:   1100,
			Height:  800,
		},
		Chart: ChartConfig{
			Margin:      MarginConfig{Top: 20, Right: 20, Bottom: 20, Left: 20},
			XDomain:     []float64{0, 960},
			YDomain:     []float64{0, 500},
			Radius:      30,
			BandPadding: 0.3,
			Colors: ColorConfig{
				Primary:        "#666666",
				Selected:       "#ffffff",
				SelectedStroke: "#cccccc",
				Stroke:         "#999999",
			},
			StrokeWidth:         1,
			SelectedStrokeWidth: 2,
			Transition:          300 * time.Millisecond,
			Hover:               HoverConfig{Duration: 200 * time.Millisecond, Brightness: 1.3},
		},
	}
}

// Load applies defaults, then path (when non-empty), then environment variables,
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = []string{"defaults"}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.LoadedFrom = append(cfg.LoadedFrom, path)
	}
	if applyEnv(&cfg) {
		cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) bool {
	applied := false
	if v := strings.TrimSpace(os.Getenv(EnvDataPath)); v != "" {
		cfg.Data.Path = v
		applied = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
		applied = true
	}
	return applied
}

var validate = validator.New()

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Chart.XDomain[0] >= c.Chart.XDomain[1] {
		return errors.New("chart.x_domain must be increasing")
	}
	if c.Chart.YDomain[0] >= c.Chart.YDomain[1] {
		return errors.New("chart.y_domain must be increasing")
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		field = strings.TrimPrefix(field, "config.")
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "hexcolor":
			msgs = append(msgs, fmt.Sprintf("%s must be a hex color like #666666", field))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must have %s values", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", field, e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ScaleOptions converts chart settings into layout options.
func (c *Config) ScaleOptions() scale.Options {
	m := c.Chart.Margin
	return scale.Options{
		Margin:      scale.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		XDomain:     [2]float64{c.Chart.XDomain[0], c.Chart.XDomain[1]},
		YDomain:     [2]float64{c.Chart.YDomain[0], c.Chart.YDomain[1]},
		Radius:      c.Chart.Radius,
		BandPadding: c.Chart.BandPadding,
	}
}

// Palette is the parsed color set.
type Palette struct {
	Primary        color.NRGBA
	Selected       color.NRGBA
	SelectedStroke color.NRGBA
	Stroke         color.NRGBA
}

// Palette parses the configured hex colors. Validate has already checked them.
func (c *Config) Palette() Palette {
	cc := c.Chart.Colors
	return Palette{
		Primary:        ParseHex(cc.Primary),
		Selected:       ParseHex(cc.Selected),
		SelectedStroke: ParseHex(cc.SelectedStroke),
		Stroke:         ParseHex(cc.Stroke),
	}
}

// ParseHex converts "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(hex string) color.NRGBA {
	c := drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
