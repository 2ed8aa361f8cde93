package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of console/table output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run ledger.
	DatabaseBackend string

	// AlignPolicy decides how series shorter than the quarter labels are handled.
	AlignPolicy string

	// SeriesKey identifies one of the extracted activity series.
	SeriesKey string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All ledger backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All alignment policies supported.
const (
	AlignStrict   AlignPolicy = "strict" // default
	AlignPad      AlignPolicy = "pad"
	AlignTruncate AlignPolicy = "truncate"
)

// Series keys.
const (
	QuarterAgoKey SeriesKey = "vs_quarter_ago"
	YearAgoKey    SeriesKey = "vs_year_ago"
)

// Column headers of the exported table.
const (
	QuarterColumn    = "Quarter"
	QuarterAgoColumn = "Vs Quarter Ago"
	YearAgoColumn    = "Vs Year Ago"
)

// Trace names shown in chart legends.
const (
	QuarterAgoTrace = "Vs. a quarter ago"
	YearAgoTrace    = "Vs. a year ago"
)

// Fixed run-time paths, relative to the project root.
const (
	DefaultInputPath     = "data/raw/Designer Developer Assessment General.xlsx"
	DefaultTablePath     = "data/processed/oil_gas_activity.csv"
	DefaultLineChartPath = "web/plotly_chart.html"
	DefaultBarChartPath  = "web/plotly_bar_chart.html"
)

// Table shape.
const (
	DefaultHorizon    = 20 // quarterly data points expected per series
	DefaultRecentRows = 8  // rows in RecentTable
)

// DefaultPlotlySrc is the plotly.js bundle referenced by generated documents.
// It matches the plotly schema version the figures are built against.
const DefaultPlotlySrc = "https://cdn.plot.ly/plotly-2.34.0.min.js"

// TableHeader is the header row of the delimited table file.
var TableHeader = []string{QuarterColumn, QuarterAgoColumn, YearAgoColumn}

// QuarterLabels is the fixed quarterly horizon. It is not derived from input data.
var QuarterLabels = []string{
	"2021 Q1", "2021 Q2", "2021 Q3", "2021 Q4",
	"2022 Q1", "2022 Q2", "2022 Q3", "2022 Q4",
	"2023 Q1", "2023 Q2", "2023 Q3", "2023 Q4",
	"2024 Q1", "2024 Q2", "2024 Q3", "2024 Q4",
	"2025 Q1", "2025 Q2", "2025 Q3", "2025 Q4",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid ledger backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidAlignPolicies lists all valid alignment policies.
var ValidAlignPolicies = map[AlignPolicy]struct{}{
	AlignStrict:   {},
	AlignPad:      {},
	AlignTruncate: {},
}
