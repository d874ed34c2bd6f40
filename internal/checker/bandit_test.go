package checker

import "testing"

func TestParseBanditOutput(t *testing.T) {
	out := []byte(`{
  "results": [
    {
      "filename": "src/app.py",
      "line_number": 12,
      "col_offset": 4,
      "test_id": "B602",
      "issue_text": "subprocess call with shell=True identified",
      "issue_severity": "HIGH"
    },
    {
      "filename": "src/util.py",
      "line_number": 3,
      "col_offset": 0,
      "test_id": "B404",
      "issue_text": "Consider possible security implications",
      "issue_severity": "LOW"
    }
  ]
}`)

	findings, err := parseBanditOutput(out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	first := findings[0]
	if first.File != "src/app.py" || first.Line != 12 || first.Column != 4 {
		t.Errorf("Unexpected location: %+v", first)
	}
	if first.Code != "B602" || first.Severity != "HIGH" {
		t.Errorf("Unexpected code/severity: %+v", first)
	}
}

func TestParseBanditOutput_Empty(t *testing.T) {
	findings, err := parseBanditOutput([]byte(`{"results": []}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %d", len(findings))
	}
}

func TestParseBanditOutput_Malformed(t *testing.T) {
	if _, err := parseBanditOutput([]byte("Traceback (most recent call last):")); err == nil {
		t.Error("Malformed output should produce an adapter error")
	}
}
