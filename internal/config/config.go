package config

import (
	"time"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// Config holds all application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Views  []ViewConfig `mapstructure:"views" yaml:"views"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File receives logs while the terminal UI owns the screen. Empty
	// discards them in the UI and uses stderr elsewhere.
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// LayoutConfig configures the split container.
type LayoutConfig struct {
	Direction    string        `mapstructure:"direction" yaml:"direction"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	WarnDelay    time.Duration `mapstructure:"warn_delay" yaml:"warn_delay"`
	HandleSize   int           `mapstructure:"handle_size" yaml:"handle_size"`
}

// ViewConfig describes one pane.
type ViewConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	// Min and Max keep the engine defaults when absent. An explicit 0 is
	// a real bound; min and max both 0 is a fixed zero-size view.
	Min *float64 `mapstructure:"min" yaml:"min,omitempty"`
	Max *float64 `mapstructure:"max" yaml:"max,omitempty"`
	// Size is applied with SetSize after the first layout; 0 skips it.
	Size    float64 `mapstructure:"size" yaml:"size,omitempty"`
	Content string  `mapstructure:"content" yaml:"content,omitempty"`
	// File is a markdown file rendered into the pane. It wins over Content.
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// ServerConfig configures the HTTP control API.
type ServerConfig struct {
	// Addr enables the API when non-empty, e.g. "127.0.0.1:7070".
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	Mouse    bool   `mapstructure:"mouse" yaml:"mouse"`
	Theme    string `mapstructure:"theme" yaml:"theme"`
	ShowHelp bool   `mapstructure:"show_help" yaml:"show_help"`
}

// Options converts the view bounds into engine options.
func (v ViewConfig) Options() []splitview.ViewOption {
	opts := []splitview.ViewOption{splitview.WithName(v.Name)}
	if v.Min != nil {
		opts = append(opts, splitview.WithMin(*v.Min))
	}
	if v.Max != nil {
		opts = append(opts, splitview.WithMax(*v.Max))
	}
	return opts
}

// ContainerOptions converts the layout section into engine options.
func (l LayoutConfig) ContainerOptions() []splitview.Option {
	opts := []splitview.Option{
		splitview.WithWarnDelay(l.WarnDelay),
		splitview.WithHandleSize(l.HandleSize),
		splitview.WithScheduler(splitview.TickerScheduler{Interval: l.PollInterval}),
	}
	if d, err := splitview.ParseDirection(l.Direction); err == nil {
		opts = append(opts, splitview.WithDirection(d))
	}
	return opts
}
