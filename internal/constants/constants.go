package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "polylint"

	// ConfigFileName is the default config file name
	ConfigFileName = "polylint.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "POLYLINT"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatCSV  = "csv"
)

// Exit codes
const (
	ExitCodePass  = 0
	ExitCodeFail  = 1
	ExitCodeError = 2
)
