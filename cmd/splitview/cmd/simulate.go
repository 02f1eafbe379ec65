package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/splitview/internal/script"
)

var simulateFormat string

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a resize scenario without a terminal",
	Long: `Replay the steps of a scenario file against a headless container and
print the view sizes after every step. Expect steps fail the run when a
size does not match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateFormat, "format", "f", "table",
		"output format (table, json, yaml)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, runErr := script.NewRunner(logger.Slog()).Run(ctx, sc)
	if report != nil {
		if err := printReport(cmd.OutOrStdout(), simulateFormat, report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("simulating %s: %w", args[0], runErr)
	}
	return nil
}

func printReport(out io.Writer, format string, report *script.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(report)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	header := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		}).
		Headers("STEP", "OP", "DETAIL", "SIZES", "FREE", "REMAINING", "CHANGES")

	steps := append([]script.StepResult{report.Initial}, report.Steps...)
	for _, s := range steps {
		t.Row(strconv.Itoa(s.Index), s.Op, s.Detail, s.Format(),
			strconv.Itoa(s.Free), strconv.Itoa(s.Remaining), strconv.Itoa(s.Changes))
	}

	title := report.Scenario
	if title == "" {
		title = "scenario"
	}
	_, err := fmt.Fprintf(out, "%s\n%s\n", header.Render(title), t.Render())
	return err
}
