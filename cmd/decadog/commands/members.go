package commands

import (
	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/spf13/cobra"
)

func newMembersCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Inspect organization members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List members",
		Long:  "List the members of the organization owning the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			members, err := client.GetMembers(cmd.Context())
			if err != nil {
				return err
			}

			if members == nil {
				members = []api.OrganizationMember{}
			}

			return p.print(members, membersTable(members))
		},
	})

	return cmd
}
