package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/decadog/internal/config"
	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/fivetwenty-io/decadog/pkg/decadog"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = "  "

// table is the tabular rendering of a value.
type table struct {
	headers []string
	rows    [][]string
}

// printer writes values in the configured output format.
type printer struct {
	out    io.Writer
	format string
}

// newPrinter resolves the output format. An unset format is table on a
// terminal and json otherwise.
func newPrinter(cmd *cobra.Command, cfg *config.Config) (*printer, error) {
	if err := config.ValidateOutput(cfg.Output); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()

	format := cfg.Output
	if format == "" {
		format = detectFormat(out)
	}

	return &printer{out: out, format: format}, nil
}

func detectFormat(out io.Writer) string {
	if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return constants.FormatTable
	}

	return constants.FormatJSON
}

// print renders value as json or yaml, or view as a table.
func (p *printer) print(value any, view table) error {
	switch p.format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", defaultJSONIndent)

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(p.out)
		defer func() { _ = encoder.Close() }()

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		return p.table(view)
	}

	return nil
}

func (p *printer) table(view table) error {
	caser := cases.Title(language.English)

	headers := make([]any, len(view.headers))
	for i, header := range view.headers {
		headers[i] = caser.String(header)
	}

	writer := tablewriter.NewWriter(p.out)
	writer.Header(headers...)

	for _, row := range view.rows {
		if err := writer.Append(row); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	if err := writer.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// message prints a line of text in table mode and value otherwise.
func (p *printer) message(value any, text string) error {
	if p.format == constants.FormatTable {
		_, err := fmt.Fprintln(p.out, text)

		return err
	}

	return p.print(value, table{})
}

// warnIncomplete tells the user a search may have missed results.
func warnIncomplete(cmd *cobra.Command, sequence *api.SearchSequence[api.Issue]) {
	if !sequence.Incomplete() {
		return
	}

	pages := make([]string, 0, len(sequence.Warnings()))
	for _, warning := range sequence.Warnings() {
		pages = append(pages, strconv.Itoa(warning.Page))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: GitHub returned incomplete search results (page %s); some issues may be missing\n",
		strings.Join(pages, ", "))
}

func dueOn(milestone *api.Milestone) string {
	if milestone == nil || milestone.DueOn == nil {
		return constants.None
	}

	return milestone.DueOn.Format(constants.DateLayout)
}

func milestoneTitle(milestone *api.Milestone) string {
	if milestone == nil {
		return constants.None
	}

	return milestone.Title
}

func assigneeLogins(members []api.OrganizationMember) string {
	if len(members) == 0 {
		return constants.None
	}

	logins := make([]string, len(members))
	for i, member := range members {
		logins[i] = member.Login
	}

	return strings.Join(logins, ", ")
}

func issuesTable(issues []api.Issue) table {
	view := table{headers: []string{"number", "title", "state", "milestone", "assignees"}}

	for _, issue := range issues {
		view.rows = append(view.rows, []string{
			strconv.Itoa(issue.Number),
			issue.Title,
			string(issue.State),
			milestoneTitle(issue.Milestone),
			assigneeLogins(issue.Assignees),
		})
	}

	return view
}

func milestonesTable(milestones []api.Milestone) table {
	view := table{headers: []string{"number", "title", "state", "due on"}}

	for i := range milestones {
		view.rows = append(view.rows, []string{
			strconv.Itoa(milestones[i].Number),
			milestones[i].Title,
			string(milestones[i].State),
			dueOn(&milestones[i]),
		})
	}

	return view
}

func membersTable(members []api.OrganizationMember) table {
	view := table{headers: []string{"login", "id"}}

	for _, member := range members {
		view.rows = append(view.rows, []string{member.Login, strconv.FormatInt(member.ID, 10)})
	}

	return view
}

func sprintTable(sprint *decadog.Sprint) table {
	return table{
		headers: []string{"property", "value"},
		rows: [][]string{
			{"Number", strconv.Itoa(sprint.Milestone.Number)},
			{"Title", sprint.Milestone.Title},
			{"State", string(sprint.Milestone.State)},
			{"Start Date", sprint.StartDate.StartDate.Format(constants.DateLayout)},
			{"Due On", dueOn(&sprint.Milestone)},
		},
	}
}
