package checker

import "testing"

func TestParseDodgyOutput(t *testing.T) {
	out := []byte(`{
  "warnings": [
    {
      "path": "./settings.py",
      "line": 8,
      "code": "aws_secret_key",
      "message": "Amazon Web Services secret key"
    }
  ]
}`)

	findings, err := parseDodgyOutput(out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}

	f := findings[0]
	if f.File != "settings.py" {
		t.Errorf("Leading ./ should be stripped, got %s", f.File)
	}
	if f.Line != 8 || f.Code != "aws_secret_key" {
		t.Errorf("Unexpected finding: %+v", f)
	}
}

func TestParseDodgyOutput_Malformed(t *testing.T) {
	if _, err := parseDodgyOutput([]byte("not json")); err == nil {
		t.Error("Malformed output should produce an adapter error")
	}
}
