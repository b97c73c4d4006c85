package config

// Application constants
const (
	// Application Info
	AppName   = "HMI Report Generator"
	EnvPrefix = "HMIREPORT"

	// Config file locations searched when no --config flag is given
	ConfigFileName = "hmireport.yaml"

	// File Paths (relative to the working directory)
	DefaultDataDir  = "data"
	DefaultLogoPath = "data/logo.png"
	DefaultLogFile  = "logs/hmireport.log"

	// Output naming
	DefaultReportSuffix = "_report"
	DefaultChartSuffix  = "_chart"
	DefaultExportSuffix = "_normalized"

	// Page geometry, millimetres
	DefaultPageSize       = "A4"
	DefaultMarginMM       = 15.0
	DefaultLogoHeightMM   = 25.0
	DefaultCellPaddingMM  = 1.2
	DefaultMinColumnMM    = 14.0
	DefaultMaxColumnMM    = 90.0
	DefaultWidthSampleRow = 500

	// Fonts, points
	DefaultFontSize       = 8.0
	DefaultHeaderFontSize = 8.5
	DefaultTitleFontSize  = 15.0

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"

	// Delimiter detection
	DelimiterSampleLines = 20
	HeaderScanLines      = 50
)
