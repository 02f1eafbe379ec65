package config

import (
	"time"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// DefaultConfigYAML is written by `splitview config init`.
const DefaultConfigYAML = `# splitview configuration
#
# Values not specified here use built-in defaults.

log:
  level: info
  # auto picks a colored console format on terminals and JSON otherwise
  format: auto
  # file: splitview.log

layout:
  # row places views side by side, column stacks them
  direction: row
  # how often the terminal size is polled
  poll_interval: 16ms
  # how long a layout must overflow before a warning is logged
  warn_delay: 1s
  handle_size: 1

# Sizes are terminal cells. Omit max for an unbounded view; min and
# max both 0 make a fixed zero-size view.
views:
  - name: left
    min: 20
    content: |
      # Left

      Drag the handle with the mouse, or focus a pane with **tab**
      and resize it with the arrow keys.
  - name: right
    min: 20
    content: |
      # Right

      Press **:** for the command bar and **?** for help.

server:
  # addr: 127.0.0.1:7070
  allowed_origins: []

ui:
  mouse: true
  # auto, dark, light or notty
  theme: auto
  show_help: true
`

const (
	defaultPollInterval = splitview.DefaultFrameInterval
	defaultWarnDelay    = time.Second
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "auto"},
		Layout: LayoutConfig{
			Direction:    splitview.Row.String(),
			PollInterval: defaultPollInterval,
			WarnDelay:    defaultWarnDelay,
			HandleSize:   splitview.DefaultHandleSize,
		},
		Views: []ViewConfig{
			{Name: "left", Min: Bound(20)},
			{Name: "right", Min: Bound(20)},
		},
		Server: ServerConfig{AllowedOrigins: []string{}},
		UI:     UIConfig{Mouse: true, Theme: "auto", ShowHelp: true},
	}
}

// Bound returns a pointer to v for ViewConfig.Min and ViewConfig.Max.
func Bound(v float64) *float64 {
	return &v
}
