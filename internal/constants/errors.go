package constants

import "errors"

// Configuration errors.
var (
	ErrGitHubTokenRequired = errors.New("github token is required, set github.token or DECADOG_GITHUB_TOKEN")
	ErrZenHubTokenRequired = errors.New("zenhub token is required, set zenhub.token or DECADOG_ZENHUB_TOKEN")
	ErrOwnerRequired       = errors.New("repository owner is required, set owner or DECADOG_OWNER")
	ErrRepoRequired        = errors.New("repository name is required, set repo or DECADOG_REPO")
)

// Validation errors.
var (
	ErrInvalidIssueNumber  = errors.New("invalid issue number")
	ErrInvalidSprintNumber = errors.New("invalid sprint number")
	ErrInvalidEstimate     = errors.New("invalid estimate")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrMilestoneArgument   = errors.New("either a sprint number or --none is required, not both")
)
