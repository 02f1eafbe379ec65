package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/splitview/internal/api"
	"github.com/hugo-lorenzo-mato/splitview/internal/config"
	"github.com/hugo-lorenzo-mato/splitview/internal/events"
	"github.com/hugo-lorenzo-mato/splitview/internal/logging"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
	"github.com/hugo-lorenzo-mato/splitview/internal/tui"
)

var (
	runServe     string
	runDirection string
	runOutput    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the layout in the terminal",
	Long: `Lay the configured views out and hand them to the terminal UI. Drag a
handle with the mouse, double-click it to equalize, or press ':' for the
command bar.

Without a terminal the layout is printed once (plain or JSON). With
--serve the HTTP control API keeps running until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(c *cobra.Command) {
	c.Flags().StringVar(&runServe, "serve", "",
		"serve the HTTP control API on addr (e.g. 127.0.0.1:7070)")
	c.Flags().StringVar(&runDirection, "direction", "",
		"layout direction (row, column)")
	c.Flags().StringVar(&runOutput, "output", "",
		"output mode (tui, plain, json); detected when empty")
}

func runLayout(cmd *cobra.Command, _ []string) error {
	cfg, loader, err := loadConfig()
	if err != nil {
		return err
	}
	if runServe != "" {
		cfg.Server.Addr = runServe
	}
	if runDirection != "" {
		cfg.Layout.Direction = runDirection
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	detector := tui.NewDetector()
	if runOutput != "" {
		detector.ForceMode(tui.ParseOutputMode(runOutput))
	}
	mode := detector.Detect()

	logger, closeLog, err := newLogger(cfg, mode == tui.ModeTUI)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	var logHandler *tui.LogHandler
	if mode == tui.ModeTUI && cfg.Log.File == "" {
		// Warnings surface in the status bar instead of a file.
		logHandler = tui.NewLogHandler(slog.LevelWarn)
		logger = &logging.Logger{Logger: slog.New(logging.NewStrippingHandler(logHandler, logging.NewStripper()))}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.New(100)
	defer bus.Close()

	configPath := loader.ConfigFile()
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			configPath = abs
		}
	}

	if mode == tui.ModeTUI {
		return runInteractive(ctx, cfg, configPath, logger, logHandler, bus)
	}
	return runHeadless(ctx, cmd.OutOrStdout(), mode, cfg, configPath, logger, bus)
}

func runInteractive(ctx context.Context, cfg *config.Config, configPath string,
	logger *logging.Logger, logHandler *tui.LogHandler, bus *events.EventBus) error {
	sched := splitview.NewManualScheduler()
	c, err := buildContainer(cfg, logger, splitview.WithScheduler(sched))
	if err != nil {
		return err
	}
	defer c.Destroy()

	stopForward := events.Forward(c, bus)
	defer stopForward()

	content, err := paneContent(cfg)
	if err != nil {
		return err
	}

	model := tui.New(c, sched,
		tui.WithEventBus(bus),
		tui.WithLogHandler(logHandler),
		tui.WithContent(content),
		tui.WithInitialSizes(initialSizes(cfg)),
		tui.WithTheme(resolveTheme(cfg.UI.Theme)),
		tui.WithShowHelp(cfg.UI.ShowHelp),
		tui.WithFrameInterval(cfg.Layout.PollInterval),
		tui.WithLogger(logger),
	)
	defer model.Close()

	g, gctx := errgroup.WithContext(ctx)
	uiCtx, cancel := context.WithCancel(gctx)
	defer cancel()
	startServices(uiCtx, g, cfg, configPath, c, bus, logger)

	g.Go(func() error {
		// Quitting the UI stops the other services.
		defer cancel()

		opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(uiCtx)}
		if cfg.UI.Mouse {
			opts = append(opts, tea.WithMouseAllMotion())
		}
		if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && uiCtx.Err() != nil {
				return nil
			}
			return fmt.Errorf("running terminal UI: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func runHeadless(ctx context.Context, out io.Writer, mode tui.OutputMode, cfg *config.Config,
	configPath string, logger *logging.Logger, bus *events.EventBus) error {
	c, err := buildContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Destroy()

	stopForward := events.Forward(c, bus)
	defer stopForward()

	// Nothing else answers reset requests without the UI.
	unsubscribe := c.Subscribe(func(splitview.Event) { c.Equalize() }, splitview.EventRequestReset)
	defer unsubscribe()

	if err := c.Mount(tui.NewHost(tui.TerminalSize())); err != nil {
		return err
	}
	for _, v := range c.Views() {
		if size, ok := initialSizes(cfg)[v.Name()]; ok {
			if _, err := v.SetSize(size); err != nil {
				return err
			}
		}
	}

	if err := printLayout(out, mode, c); err != nil {
		return err
	}
	if cfg.Server.Addr == "" {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	startServices(gctx, g, cfg, configPath, c, bus, logger)
	return g.Wait()
}

// startServices runs the HTTP API and the config watcher when configured.
func startServices(ctx context.Context, g *errgroup.Group, cfg *config.Config, configPath string,
	c *splitview.Container, bus *events.EventBus, logger *logging.Logger) {
	if addr := cfg.Server.Addr; addr != "" {
		server := api.NewServer(c, bus,
			api.WithLogger(logger.WithComponent("api").Slog()),
			api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		)
		g.Go(func() error {
			return server.ListenAndServe(ctx, addr)
		})
	}

	if configPath != "" {
		watcher := config.NewWatcher(configPath, nil, func(next *config.Config) {
			applyReload(c, bus, configPath, next, logger)
		}, logger.WithComponent("config").Slog())
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}
}

// applyReload applies the parts of a reloaded config that can change at
// runtime. View bounds are fixed once views exist.
func applyReload(c *splitview.Container, bus *events.EventBus, path string, next *config.Config, logger *logging.Logger) {
	if d, err := splitview.ParseDirection(next.Layout.Direction); err == nil && d != c.Direction() {
		if err := c.SetDirection(d); err != nil {
			logger.Warn("applying direction", "error", err)
		} else {
			bus.Publish(events.NewDirectionChangedEvent(c.ID(), d.String()))
		}
	}
	bus.Publish(events.NewConfigReloadedEvent(c.ID(), path, next.Layout.Direction, len(next.Views)))
}

func resolveTheme(theme string) string {
	if theme != "auto" {
		return theme
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

type layoutRow struct {
	Name   string `json:"name"`
	ID     string `json:"id"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

func printLayout(out io.Writer, mode tui.OutputMode, c *splitview.Container) error {
	snap := c.Snapshot()
	var rows []layoutRow
	for _, p := range snap.Placements {
		rows = append(rows, layoutRow{
			Name:   p.View.Name(),
			ID:     p.View.ID(),
			Offset: p.Offset,
			Size:   p.Size,
			Min:    p.View.Min(),
			Max:    p.View.Max(),
		})
	}

	if mode == tui.ModeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"direction": snap.Direction.String(),
			"size":      snap.Size,
			"free":      snap.FreeSize,
			"views":     rows,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("VIEW", "OFFSET", "SIZE", "MIN", "MAX")
	for _, r := range rows {
		t.Row(r.Name, strconv.Itoa(r.Offset), strconv.Itoa(r.Size), strconv.Itoa(r.Min), strconv.Itoa(r.Max))
	}
	_, err := fmt.Fprintf(out, "%s\n%s · %d cells · free %d\n",
		t.Render(), snap.Direction, snap.Size, snap.FreeSize)
	return err
}
