package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/polylint/polylint/domain"
)

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		Findings: []domain.Finding{
			{File: "pkg/app.py", Line: 3, Column: 1, Code: "F401", Message: "'os' imported but unused", Checker: domain.CheckerFlakes, Severity: domain.SeverityError},
			{File: "pkg/app.py", Line: 10, Code: "C901", Message: "'load' is too complex (12 > 10)", Checker: domain.CheckerMccabe, Severity: domain.SeverityWarning},
			{File: "pkg/util.py", Line: 1, Code: "D100", Message: "Missing docstring in public module", Checker: domain.CheckerPep257, Severity: domain.SeverityInfo},
		},
		CheckerErrors: map[domain.CheckerName]domain.CheckerError{
			domain.CheckerPylint: {
				Checker: domain.CheckerPylint,
				Kind:    domain.CheckerErrorAdapter,
				Message: "executable not found",
			},
		},
		ExitStatus: domain.ExitStatusFail,
		Summary: domain.RunSummary{
			FilesDiscovered: 2,
			CheckersRun:     3,
			TotalFindings:   3,
			ErrorFindings:   1,
			WarningFindings: 1,
			InfoFindings:    1,
		},
		GeneratedAt: "2026-01-15T10:00:00Z",
		Version:     "dev",
	}
}

func TestOutputFormatter_Text(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	err := formatter.Write(sampleReport(), domain.OutputFormatText, &buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"pkg/app.py",
		"pkg/util.py",
		"'os' imported but unused",
		"flakes:F401",
		"executable not found",
		"3 findings",
		"FAIL",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("text output should contain %q\n%s", want, output)
		}
	}
}

func TestOutputFormatter_TextPass(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	report := &domain.RunReport{
		Findings:      []domain.Finding{},
		CheckerErrors: map[domain.CheckerName]domain.CheckerError{},
		ExitStatus:    domain.ExitStatusPass,
		Summary:       domain.RunSummary{FilesDiscovered: 5, CheckersRun: 2},
	}

	if err := formatter.Write(report, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !strings.Contains(buf.String(), "PASS") {
		t.Errorf("expected PASS in output:\n%s", buf.String())
	}
}

func TestOutputFormatter_JSON(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	if err := formatter.Write(sampleReport(), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded domain.RunReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Findings) != 3 {
		t.Errorf("expected 3 findings, got %d", len(decoded.Findings))
	}
	if decoded.ExitStatus != domain.ExitStatusFail {
		t.Errorf("expected fail status, got %s", decoded.ExitStatus)
	}
	if decoded.Version != "dev" {
		t.Errorf("expected version metadata, got %q", decoded.Version)
	}
	if _, ok := decoded.CheckerErrors[domain.CheckerPylint]; !ok {
		t.Error("checker errors should round-trip")
	}
}

func TestOutputFormatter_CSV(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	if err := formatter.Write(sampleReport(), domain.OutputFormatCSV, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// header + 3 findings
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0][0] != "file" || records[0][6] != "message" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "pkg/app.py" || records[1][4] != "F401" {
		t.Errorf("unexpected first record: %v", records[1])
	}
}

func TestOutputFormatter_UnsupportedFormat(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	err := formatter.Write(sampleReport(), domain.OutputFormat("xml"), &buf)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
