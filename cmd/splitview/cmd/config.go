package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/splitview/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage splitview configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".splitview.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.WriteDefault(path, configForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loader, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.NewValidator().Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path := loader.ConfigFile(); path != "" {
			fmt.Fprintf(out, "# source: %s\n", path)
		} else {
			fmt.Fprintln(out, "# source: defaults")
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
