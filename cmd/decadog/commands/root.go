// Package commands implements the decadog command line interface.
package commands

import (
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/config"
	"github.com/fivetwenty-io/decadog/internal/logging"
	"github.com/fivetwenty-io/decadog/pkg/decadog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session carries the state shared by every command of one invocation.
type session struct {
	configPath string
	loader     *config.Loader
	factory    *logging.LoggerFactory
}

// NewRootCommand creates the decadog command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	s := &session{
		loader:  config.NewLoader(),
		factory: logging.NewLoggerFactory(),
	}

	rootCmd := &cobra.Command{
		Use:   "decadog",
		Short: "Sprint management over GitHub and ZenHub",
		Long: `decadog manages sprints for a single GitHub repository.

Sprints are GitHub milestones titled "Sprint N" with a ZenHub start date.
Issues can be searched, estimated, assigned and moved between pipelines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&s.configPath, "config", "c", "", "config file (default is $HOME/.decadog/config.yml)")
	flags.StringP("output", "o", "", "output format (table, json, yaml)")
	flags.String("owner", "", "repository owner")
	flags.String("repo", "", "repository name")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, structured)")

	s.loader.BindFlag(config.KeyOutput, flags.Lookup("output"))
	s.loader.BindFlag(config.KeyOwner, flags.Lookup("owner"))
	s.loader.BindFlag(config.KeyRepo, flags.Lookup("repo"))
	s.loader.BindFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	s.loader.BindFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(newVersionCommand(s, version, commit, date))
	rootCmd.AddCommand(newConfigCommand(s))
	rootCmd.AddCommand(newSprintCommand(s))
	rootCmd.AddCommand(newIssuesCommand(s))
	rootCmd.AddCommand(newMilestonesCommand(s))
	rootCmd.AddCommand(newMembersCommand(s))

	return rootCmd
}

// settings loads the effective configuration without validating it.
func (s *session) settings() (*config.Config, error) {
	return s.loader.Load(s.configPath)
}

func (s *session) logger(cfg *config.Config) (*zap.Logger, error) {
	level, err := logging.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	format, err := logging.ParseLogFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return s.factory.CreateLogger(level, format)
}

// client loads and validates the configuration and builds a client from it.
func (s *session) client(cmd *cobra.Command) (*decadog.Client, *config.Config, error) {
	cfg, err := s.settings()
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := s.logger(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := decadog.New(cmd.Context(), cfg.ToAPIConfig(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Debug("using configuration", zap.String("file", cfg.ConfigFileUsed), zap.Stringer("client", client.ID()))

	return client, cfg, nil
}
