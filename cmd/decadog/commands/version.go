package commands

import (
	"github.com/spf13/cobra"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
}

// newVersionCommand creates the version command.
func newVersionCommand(s *session, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the decadog CLI",
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

			info := VersionInfo{Version: version, Commit: commit, Built: date}

			return p.print(info, table{
				headers: []string{"property", "value"},
				rows: [][]string{
					{"Version", version},
					{"Commit", commit},
					{"Built", date},
				},
			})
		},
	}
}
