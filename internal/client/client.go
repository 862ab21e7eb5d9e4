package client

import (
	"errors"
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/internal/http"
	"github.com/fivetwenty-io/decadog/pkg/api"
)

// Static errors for err113 compliance.
var (
	ErrGitHubTokenRequired = errors.New("github token is required")
	ErrZenHubTokenRequired = errors.New("zenhub token is required")
)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *api.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// NewGitHub creates a GitHub client from config. An empty GitHubURL selects
// the public API.
func NewGitHub(config *api.Config) (*GitHubClient, error) {
	if config == nil {
		return nil, api.ErrConfigRequired
	}

	if config.GitHubToken == "" {
		return nil, ErrGitHubTokenRequired
	}

	baseURL := config.GitHubURL
	if baseURL == "" {
		baseURL = constants.DefaultGitHubURL
	}

	httpOpts := append(createHTTPClientOptions(config), http.WithAccept(GitHubMediaType))

	httpClient, err := http.NewClient(baseURL, config.GitHubToken, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}

	return NewGitHubClient(httpClient), nil
}

// NewZenHub creates a ZenHub client from config. An empty ZenHubURL selects
// the public API.
func NewZenHub(config *api.Config) (*ZenHubClient, error) {
	if config == nil {
		return nil, api.ErrConfigRequired
	}

	if config.ZenHubToken == "" {
		return nil, ErrZenHubTokenRequired
	}

	baseURL := config.ZenHubURL
	if baseURL == "" {
		baseURL = constants.DefaultZenHubURL
	}

	httpClient, err := http.NewClient(baseURL, config.ZenHubToken, createHTTPClientOptions(config)...)
	if err != nil {
		return nil, fmt.Errorf("creating zenhub client: %w", err)
	}

	return NewZenHubClient(httpClient), nil
}
