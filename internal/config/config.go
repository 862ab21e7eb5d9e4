// Package config loads decadog settings from defaults, a YAML file,
// environment variables and command line flags.
package config

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"go.uber.org/zap"
)

// Configuration keys.
const (
	KeyGitHubURL   = "github.url"
	KeyGitHubToken = "github.token"
	KeyZenHubURL   = "zenhub.url"
	KeyZenHubToken = "zenhub.token"
	KeyOwner       = "owner"
	KeyRepo        = "repo"
	KeyHTTPTimeout = "http_timeout"
	KeyUserAgent   = "user_agent"
	KeyPageSize    = "page_size"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyOutput      = "output"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyGitHubURL,
	KeyGitHubToken,
	KeyZenHubURL,
	KeyZenHubToken,
	KeyOwner,
	KeyRepo,
	KeyHTTPTimeout,
	KeyUserAgent,
	KeyPageSize,
	KeyLogLevel,
	KeyLogFormat,
	KeyOutput,
}

// ServiceConfig addresses one remote API.
type ServiceConfig struct {
	URL   string `json:"url"   mapstructure:"url"   yaml:"url"`
	Token string `json:"token" mapstructure:"token" yaml:"token"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `json:"level"  mapstructure:"level"  yaml:"level"`
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// Config is the effective decadog configuration.
type Config struct {
	GitHub      ServiceConfig `json:"github"       mapstructure:"github"       yaml:"github"`
	ZenHub      ServiceConfig `json:"zenhub"       mapstructure:"zenhub"       yaml:"zenhub"`
	Owner       string        `json:"owner"        mapstructure:"owner"        yaml:"owner"`
	Repo        string        `json:"repo"         mapstructure:"repo"         yaml:"repo"`
	HTTPTimeout time.Duration `json:"http_timeout" mapstructure:"http_timeout" yaml:"http_timeout"`
	UserAgent   string        `json:"user_agent"   mapstructure:"user_agent"   yaml:"user_agent"`
	PageSize    int           `json:"page_size"    mapstructure:"page_size"    yaml:"page_size"`
	Log         LogConfig     `json:"log"          mapstructure:"log"          yaml:"log"`
	Output      string        `json:"output"       mapstructure:"output"       yaml:"output"`

	// ConfigFileUsed is the file the values were read from, if any.
	ConfigFileUsed string `json:"-" mapstructure:"-" yaml:"-"`
}

// Defaults returns the default value of every key.
func Defaults() map[string]any {
	return map[string]any{
		KeyGitHubURL:   constants.DefaultGitHubURL,
		KeyGitHubToken: "",
		KeyZenHubURL:   constants.DefaultZenHubURL,
		KeyZenHubToken: "",
		KeyOwner:       "",
		KeyRepo:        "",
		KeyHTTPTimeout: constants.DefaultHTTPTimeout,
		KeyUserAgent:   constants.DefaultUserAgent,
		KeyPageSize:    constants.SearchPageSize,
		KeyLogLevel:    "warn",
		KeyLogFormat:   "console",
		KeyOutput:      "",
	}
}

// Validate checks the settings needed to talk to both APIs.
func (c *Config) Validate() error {
	switch {
	case c.GitHub.Token == "":
		return constants.ErrGitHubTokenRequired
	case c.ZenHub.Token == "":
		return constants.ErrZenHubTokenRequired
	case c.Owner == "":
		return constants.ErrOwnerRequired
	case c.Repo == "":
		return constants.ErrRepoRequired
	}

	return ValidateOutput(c.Output)
}

// ValidateOutput accepts an empty format or one of table, json and yaml.
func ValidateOutput(output string) error {
	switch output {
	case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, output)
	}
}

// ToAPIConfig converts the configuration to client settings.
func (c *Config) ToAPIConfig(logger *zap.Logger) *api.Config {
	return &api.Config{
		GitHubURL:   c.GitHub.URL,
		GitHubToken: c.GitHub.Token,
		ZenHubURL:   c.ZenHub.URL,
		ZenHubToken: c.ZenHub.Token,
		Owner:       c.Owner,
		Repo:        c.Repo,
		HTTPTimeout: c.HTTPTimeout,
		UserAgent:   c.UserAgent,
		PageSize:    c.PageSize,
		Logger:      logger,
	}
}

// Masked returns a copy safe to display, with tokens hidden.
func (c *Config) Masked() Config {
	masked := *c
	masked.GitHub.Token = mask(c.GitHub.Token)
	masked.ZenHub.Token = mask(c.ZenHub.Token)

	return masked
}

// Values returns the display value of every key, in Keys order.
func (c *Config) Values() [][2]string {
	return [][2]string{
		{KeyGitHubURL, c.GitHub.URL},
		{KeyGitHubToken, c.GitHub.Token},
		{KeyZenHubURL, c.ZenHub.URL},
		{KeyZenHubToken, c.ZenHub.Token},
		{KeyOwner, c.Owner},
		{KeyRepo, c.Repo},
		{KeyHTTPTimeout, c.HTTPTimeout.String()},
		{KeyUserAgent, c.UserAgent},
		{KeyPageSize, fmt.Sprint(c.PageSize)},
		{KeyLogLevel, c.Log.Level},
		{KeyLogFormat, c.Log.Format},
		{KeyOutput, c.Output},
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}
