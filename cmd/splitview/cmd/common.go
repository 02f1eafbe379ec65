package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/splitview/internal/config"
	"github.com/hugo-lorenzo-mato/splitview/internal/logging"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// loadConfig reads the configuration with flags bound to the global viper
// taking precedence. It returns the loader so callers can find the file
// that was used.
func loadConfig() (*config.Config, *config.Loader, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// newLogger builds the process logger. With toFile set, logs go to
// cfg.Log.File (or nowhere) because the terminal belongs to the UI. The
// returned function closes the log file.
func newLogger(cfg *config.Config, toFile bool) (*logging.Logger, func() error, error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format

	noop := func() error { return nil }
	if !toFile {
		return logging.New(lc), noop, nil
	}
	if cfg.Log.File == "" {
		return logging.NewNop(), noop, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Output = f
	if lc.Format == "auto" {
		lc.Format = "text"
	}
	return logging.New(lc), f.Close, nil
}

// buildContainer creates a container with every configured view appended.
// extra options are applied after the configured ones.
func buildContainer(cfg *config.Config, logger *logging.Logger, extra ...splitview.Option) (*splitview.Container, error) {
	opts := append(cfg.Layout.ContainerOptions(), splitview.WithLogger(logger.Slog()))
	opts = append(opts, extra...)
	c := splitview.New(opts...)

	for _, vc := range cfg.Views {
		v, err := c.CreateView(vc.Options()...)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", vc.Name, err)
		}
		if _, err := c.AppendView(v); err != nil {
			return nil, fmt.Errorf("view %s: %w", vc.Name, err)
		}
	}
	return c, nil
}

// paneContent returns the markdown for each view, reading files where set.
func paneContent(cfg *config.Config) (map[string]string, error) {
	content := make(map[string]string, len(cfg.Views))
	for _, vc := range cfg.Views {
		if vc.File == "" {
			if vc.Content != "" {
				content[vc.Name] = vc.Content
			}
			continue
		}
		data, err := os.ReadFile(vc.File)
		if err != nil {
			return nil, fmt.Errorf("view %s: reading content: %w", vc.Name, err)
		}
		content[vc.Name] = string(data)
	}
	return content, nil
}

// initialSizes returns the configured sizes keyed by view name.
func initialSizes(cfg *config.Config) map[string]float64 {
	sizes := make(map[string]float64)
	for _, vc := range cfg.Views {
		if vc.Size > 0 {
			sizes[vc.Name] = vc.Size
		}
	}
	return sizes
}
