package domain

// CheckerName identifies one of the supported external checkers
type CheckerName string

const (
	CheckerBandit  CheckerName = "bandit"
	CheckerDodgy   CheckerName = "dodgy"
	CheckerFlakes  CheckerName = "flakes"
	CheckerMccabe  CheckerName = "mccabe"
	CheckerMypy    CheckerName = "mypy"
	CheckerPep8    CheckerName = "pep8"
	CheckerPep257  CheckerName = "pep257"
	CheckerPylint  CheckerName = "pylint"
	CheckerPyroma  CheckerName = "pyroma"
	CheckerVulture CheckerName = "vulture"
)

// SupportedCheckers returns the closed set of checker names in stable order
func SupportedCheckers() []CheckerName {
	return []CheckerName{
		CheckerBandit,
		CheckerDodgy,
		CheckerFlakes,
		CheckerMccabe,
		CheckerMypy,
		CheckerPep8,
		CheckerPep257,
		CheckerPylint,
		CheckerPyroma,
		CheckerVulture,
	}
}

// IsSupportedChecker reports whether name is in the closed checker set
func IsSupportedChecker(name CheckerName) bool {
	for _, c := range SupportedCheckers() {
		if c == name {
			return true
		}
	}
	return false
}

// Severity represents the normalized severity of a finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Target describes what a checker adapter is invoked against.
// Root is the analyzed tree's root directory; Files is the discovered
// candidate set, relative paths under Root in lexical order.
type Target struct {
	Root  string
	Files []string
}

// RawFinding is one diagnostic as parsed from a checker's native output,
// before suppression filtering and severity normalization
type RawFinding struct {
	File    string
	Line    int
	Column  int // 0 when the checker does not report a column
	Code    string
	Message string

	// Severity is the checker's native vocabulary (e.g. bandit "HIGH",
	// pylint "convention"), empty when the tool has no severity concept.
	// Mapping onto the common enum happens during normalization.
	Severity string
}

// Finding is one normalized diagnostic in the final report
type Finding struct {
	File     string      `json:"file" yaml:"file"`
	Line     int         `json:"line" yaml:"line"`
	Column   int         `json:"column,omitempty" yaml:"column,omitempty"`
	Code     string      `json:"code" yaml:"code"`
	Message  string      `json:"message" yaml:"message"`
	Checker  CheckerName `json:"checker" yaml:"checker"`
	Severity Severity    `json:"severity" yaml:"severity"`
}

// CheckerErrorKind classifies a per-checker failure
type CheckerErrorKind string

const (
	// CheckerErrorAdapter covers tool-not-found, crashes and unparseable output
	CheckerErrorAdapter CheckerErrorKind = "adapter"

	// CheckerErrorTimeout marks an adapter still outstanding when the run deadline fired
	CheckerErrorTimeout CheckerErrorKind = "timeout"
)

// CheckerError records a non-fatal per-checker failure. The run continues;
// the error is surfaced in the report instead of aborting other checkers.
type CheckerError struct {
	Checker CheckerName      `json:"checker" yaml:"checker"`
	Kind    CheckerErrorKind `json:"kind" yaml:"kind"`
	Message string           `json:"message" yaml:"message"`
}
