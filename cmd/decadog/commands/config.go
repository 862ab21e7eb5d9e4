package commands

import (
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/config"
	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/spf13/cobra"
)

func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "Display and edit the decadog configuration file",
	}

	cmd.AddCommand(newConfigShowCommand(s))
	cmd.AddCommand(newConfigSetCommand(s))

	return cmd
}

func newConfigShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Show the configuration resolved from defaults, file, environment and flags. Tokens are masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.settings()
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			masked := cfg.Masked()

			view := table{headers: []string{"property", "value"}}
			for _, kv := range masked.Values() {
				value := kv[1]
				if value == "" {
					value = constants.NotAvailable
				}

				view.rows = append(view.rows, []string{kv[0], value})
			}

			file := cfg.ConfigFileUsed
			if file == "" {
				file = constants.None
			}

			view.rows = append(view.rows, []string{"config file", file})

			return p.print(masked, view)
		},
	}
}

func newConfigSetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: fmt.Sprintf("Write a value to the configuration file. Valid keys: %v",
			config.Keys),
		Args: cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.configPath
			if path == "" {
				defaultPath, err := config.DefaultPath()
				if err != nil {
					return err
				}

				path = defaultPath
			}

			if err := config.Set(path, args[0], args[1]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)

			return nil
		},
	}
}
