package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Backend endpoints.
const (
	// DefaultGitHubURL is the public GitHub REST API.
	DefaultGitHubURL = "https://api.github.com/"

	// DefaultZenHubURL is the public ZenHub REST API.
	DefaultZenHubURL = "https://api.zenhub.com/"
)

// HTTP headers and values.
const (
	// HeaderAuthorization carries the access token.
	HeaderAuthorization = "Authorization"

	// HeaderAccept is the accepted response media type header.
	HeaderAccept = "Accept"

	// HeaderContentType is the request body media type header.
	HeaderContentType = "Content-Type"

	// HeaderUserAgent identifies the client.
	HeaderUserAgent = "User-Agent"

	// TokenScheme prefixes the token in the Authorization header.
	TokenScheme = "token "

	// MediaTypeJSON is the JSON media type.
	MediaTypeJSON = "application/json"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "decadog"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Pagination and search.
const (
	// SearchPageSize is the page size used for issue searches.
	SearchPageSize = 100

	// MembersPageSize is the page size used when listing organization members.
	MembersPageSize = 100

	// MilestonesPageSize is the page size used when listing milestones.
	MilestonesPageSize = 100

	// SearchSortUpdated sorts search results by last update.
	SearchSortUpdated = "updated"
)

// Sprint naming.
const (
	// SprintTitlePrefix prefixes the sprint number in milestone titles.
	SprintTitlePrefix = "Sprint "
)

// Validation and limits.
const (
	// ExactlyOneArgument is used by commands that take a single positional argument.
	ExactlyOneArgument = 1

	// TwoArguments is used by commands that take two positional arguments.
	TwoArguments = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Date layouts.
const (
	// DateLayout is the layout accepted for dates on the command line.
	DateLayout = time.DateOnly
)
