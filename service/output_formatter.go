package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/polylint/polylint/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Write writes the run report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.RunReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(report, writer)
	case domain.OutputFormatText:
		return f.writeText(report, writer)
	case domain.OutputFormatCSV:
		return f.writeCSV(report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *OutputFormatterImpl) writeJSON(report *domain.RunReport, writer io.Writer) error {
	if err := WriteJSON(writer, report); err != nil {
		return domain.NewOutputError("failed to encode report", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeText(report *domain.RunReport, writer io.Writer) error {
	var b strings.Builder

	// Findings grouped by file; they arrive sorted, so files come out
	// in lexical order.
	currentFile := ""
	for _, finding := range report.Findings {
		if finding.File != currentFile {
			if currentFile != "" {
				b.WriteString("\n")
			}
			currentFile = finding.File
			b.WriteString(fileStyle.Render(finding.File) + "\n")
		}
		location := fmt.Sprintf("%d", finding.Line)
		if finding.Column > 0 {
			location += ":" + strconv.Itoa(finding.Column)
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%6s", location)),
			severityStyle(finding.Severity).Render(fmt.Sprintf("%-7s", finding.Severity)),
			finding.Message,
			dimStyle.Render(fmt.Sprintf("[%s:%s]", finding.Checker, finding.Code)),
		))
	}

	if len(report.CheckerErrors) > 0 {
		if len(report.Findings) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render("Checker errors") + "\n")
		for _, name := range sortedErrorKeys(report.CheckerErrors) {
			ce := report.CheckerErrors[name]
			b.WriteString(fmt.Sprintf("  %s %s: %s\n",
				errorStyle.Render("✗"), name, ce.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(f.renderSummary(report))

	_, err := io.WriteString(writer, b.String())
	if err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

func (f *OutputFormatterImpl) renderSummary(report *domain.RunReport) string {
	var b strings.Builder

	s := report.Summary
	b.WriteString(fmt.Sprintf("Checked %d files with %d checkers: %d findings",
		s.FilesDiscovered, s.CheckersRun, s.TotalFindings))
	if s.TotalFindings > 0 {
		b.WriteString(fmt.Sprintf(" (%s, %s, %s)",
			errorStyle.Render(fmt.Sprintf("%d errors", s.ErrorFindings)),
			warningStyle.Render(fmt.Sprintf("%d warnings", s.WarningFindings)),
			infoStyle.Render(fmt.Sprintf("%d info", s.InfoFindings))))
	}
	if s.Suppressed > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(", %d suppressed", s.Suppressed)))
	}
	b.WriteString("\n")

	if report.ExitStatus == domain.ExitStatusPass {
		b.WriteString(passStyle.Render("PASS") + "\n")
	} else {
		b.WriteString(failStyle.Render("FAIL") + "\n")
	}

	return b.String()
}

func (f *OutputFormatterImpl) writeCSV(report *domain.RunReport, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{"file", "line", "column", "checker", "code", "severity", "message"}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write csv header", err)
	}

	for _, finding := range report.Findings {
		record := []string{
			finding.File,
			strconv.Itoa(finding.Line),
			strconv.Itoa(finding.Column),
			string(finding.Checker),
			finding.Code,
			string(finding.Severity),
			finding.Message,
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write csv record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush csv output", err)
	}
	return nil
}

func severityStyle(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityError:
		return errorStyle
	case domain.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

func sortedErrorKeys(m map[domain.CheckerName]domain.CheckerError) []domain.CheckerName {
	keys := make([]domain.CheckerName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
