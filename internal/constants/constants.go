package constants

import "time"

// API addressing.
const (
	// DefaultAPIEndpoint is the base address of the personal wallet API.
	DefaultAPIEndpoint = "https://edge.qiwi.com"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "qiwi-client/go"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration file location.
const (
	// ConfigDirName is the directory under the user's home holding the config.
	ConfigDirName = ".qiwi"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format understood by viper.
	ConfigFileType = "yml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "QIWI"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The core never retries on its own; these only apply when a
// retry budget is configured on the transport.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination.
const (
	// HistoryPageSize is the number of rows requested per history page.
	HistoryPageSize = 50
)

// Output formats.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Command line arguments.
const (
	// QuoteArgumentCount is the number of arguments of the quote command.
	QuoteArgumentCount = 3
)

// Transfer ids.
const (
	// TransferIDMultiplier turns a unix timestamp in seconds into a
	// transfer id.
	TransferIDMultiplier = 1000
)
