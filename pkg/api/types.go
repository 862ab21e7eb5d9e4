package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// State is the open/closed state of an issue or milestone.
type State string

// Issue and milestone states.
const (
	StateOpen   State = "open"
	StateClosed State = "closed"
	StateAll    State = "all"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// NoContent is the success type for endpoints that may answer with an empty
// body.
type NoContent struct{}

// Repository is a GitHub repository.
type Repository struct {
	ID       int64  `json:"id"        yaml:"id"`
	Name     string `json:"name"      yaml:"name"`
	FullName string `json:"full_name" yaml:"full_name"`
}

// OrganizationMember is a member reference in an organization.
type OrganizationMember struct {
	Login string `json:"login" yaml:"login"`
	ID    int64  `json:"id"    yaml:"id"`
}

// User is a GitHub user.
type User struct {
	Login string `json:"login" yaml:"login"`
	ID    int64  `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
}

// Milestone is a GitHub milestone.
type Milestone struct {
	ID     int64      `json:"id"               yaml:"id"`
	Number int        `json:"number"           yaml:"number"`
	Title  string     `json:"title"            yaml:"title"`
	State  State      `json:"state"            yaml:"state"`
	DueOn  *time.Time `json:"due_on,omitempty" yaml:"due_on,omitempty"`
}

// String renders the milestone as "title (state)".
func (m Milestone) String() string {
	return fmt.Sprintf("%s (%s)", m.Title, m.State)
}

// Issue is a GitHub issue.
type Issue struct {
	ID        int64                `json:"id"                  yaml:"id"`
	Number    int                  `json:"number"              yaml:"number"`
	State     State                `json:"state"               yaml:"state"`
	Title     string               `json:"title"               yaml:"title"`
	Milestone *Milestone           `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Assignees []OrganizationMember `json:"assignees"           yaml:"assignees"`
	CreatedAt time.Time            `json:"created_at"          yaml:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"          yaml:"updated_at"`
	ClosedAt  *time.Time           `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// String renders the issue as "number: title".
func (i Issue) String() string {
	return fmt.Sprintf("%d: %s", i.Number, i.Title)
}

// IssueUpdate is the PATCH payload for an issue. Unset fields are left
// unchanged by the backend; a cleared Milestone removes the milestone.
type IssueUpdate struct {
	Title     Optional[string]   `json:"title,omitzero"`
	State     Optional[State]    `json:"state,omitzero"`
	Milestone Optional[int]      `json:"milestone,omitzero"`
	Assignees Optional[[]string] `json:"assignees,omitzero"`
}

// MilestoneUpdate is the payload for creating or patching a milestone.
type MilestoneUpdate struct {
	Title       Optional[string]    `json:"title,omitzero"`
	State       Optional[State]     `json:"state,omitzero"`
	Description Optional[string]    `json:"description,omitzero"`
	DueOn       Optional[time.Time] `json:"due_on,omitzero"`
}

// MilestoneListOptions filters a milestone listing.
type MilestoneListOptions struct {
	State     State
	Sort      string
	Direction Direction
	PerPage   int
}

// ToValues converts the options to query values, omitting unset fields.
func (o *MilestoneListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.State != "" {
		values.Set("state", string(o.State))
	}

	if o.Sort != "" {
		values.Set("sort", o.Sort)
	}

	if o.Direction != "" {
		values.Set("direction", string(o.Direction))
	}

	if o.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(o.PerPage))
	}

	return values
}

// MemberListOptions filters an organization member listing.
type MemberListOptions struct {
	Role    string
	PerPage int
}

// ToValues converts the options to query values, omitting unset fields.
func (o *MemberListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Role != "" {
		values.Set("role", o.Role)
	}

	if o.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(o.PerPage))
	}

	return values
}

// StartDate is the ZenHub start date of a milestone.
type StartDate struct {
	StartDate time.Time `json:"start_date" yaml:"start_date"`
}

// Workspace is a ZenHub workspace.
type Workspace struct {
	ID           string  `json:"id"           yaml:"id"`
	Name         string  `json:"name"         yaml:"name"`
	Description  string  `json:"description"  yaml:"description"`
	Repositories []int64 `json:"repositories" yaml:"repositories"`
}

// Estimate is a ZenHub story point estimate.
type Estimate struct {
	Value int `json:"value" yaml:"value"`
}

// BoardIssue is an issue as placed on a ZenHub board.
type BoardIssue struct {
	IssueNumber int       `json:"issue_number"       yaml:"issue_number"`
	Estimate    *Estimate `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	Position    int       `json:"position"           yaml:"position"`
	IsEpic      bool      `json:"is_epic"            yaml:"is_epic"`
}

// Pipeline is a column on a ZenHub board.
type Pipeline struct {
	ID     string       `json:"id"     yaml:"id"`
	Name   string       `json:"name"   yaml:"name"`
	Issues []BoardIssue `json:"issues" yaml:"issues"`
}

// Board is a ZenHub board for one repository in one workspace.
type Board struct {
	Pipelines []Pipeline `json:"pipelines" yaml:"pipelines"`
}

// PipelineRef identifies the pipeline an issue sits in.
type PipelineRef struct {
	Name        string `json:"name"         yaml:"name"`
	PipelineID  string `json:"pipeline_id"  yaml:"pipeline_id"`
	WorkspaceID string `json:"workspace_id" yaml:"workspace_id"`
}

// ZenHubIssue is the ZenHub metadata attached to a GitHub issue.
type ZenHubIssue struct {
	Estimate  *Estimate     `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	Pipeline  *PipelineRef  `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
	Pipelines []PipelineRef `json:"pipelines"          yaml:"pipelines"`
	IsEpic    bool          `json:"is_epic"            yaml:"is_epic"`
}

// Pipeline positions understood by ZenHub in addition to numeric indexes.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// PipelinePosition is the payload for moving an issue between pipelines.
// Position is "top", "bottom" or a numeric index; empty means top.
type PipelinePosition struct {
	PipelineID string
	Position   string
}

// MarshalJSON encodes numeric positions as JSON numbers.
func (p PipelinePosition) MarshalJSON() ([]byte, error) {
	var position any = p.Position

	if p.Position == "" {
		position = PositionTop
	} else if index, err := strconv.Atoi(p.Position); err == nil {
		position = index
	}

	return json.Marshal(struct {
		PipelineID string `json:"pipeline_id"`
		Position   any    `json:"position"`
	}{
		PipelineID: p.PipelineID,
		Position:   position,
	})
}

// EstimateUpdate is the payload for setting an issue estimate.
type EstimateUpdate struct {
	Estimate int `json:"estimate"`
}
