package decadog

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/client"
	"github.com/fivetwenty-io/decadog/pkg/api"
)

// New creates an orchestration client from config, building the GitHub and
// ZenHub clients it composes. No request is made.
func New(_ context.Context, config *api.Config) (*Client, error) {
	if config == nil {
		return nil, api.ErrConfigRequired
	}

	if config.Owner == "" {
		return nil, api.ErrOwnerRequired
	}

	if config.Repo == "" {
		return nil, api.ErrRepoRequired
	}

	github, err := client.NewGitHub(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}

	zenhub, err := client.NewZenHub(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create zenhub client: %w", err)
	}

	var options []Option
	if config.Logger != nil {
		options = append(options, WithLogger(config.Logger))
	}

	options = append(options, WithPageSize(config.PageSize))

	return NewClient(config.Owner, config.Repo, github, zenhub, options...)
}
