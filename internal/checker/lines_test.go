package checker

import "testing"

func TestParsePep8Output(t *testing.T) {
	out := []byte(`src/app.py:3:80: E501 line too long (92 > 79 characters)
src/app.py:7:1: W391 blank line at end of file
garbage line that matches nothing
`)

	findings := parsePep8Output(out)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	f := findings[0]
	if f.File != "src/app.py" || f.Line != 3 || f.Column != 80 {
		t.Errorf("Unexpected location: %+v", f)
	}
	if f.Code != "E501" || f.Message != "line too long (92 > 79 characters)" {
		t.Errorf("Unexpected code/message: %+v", f)
	}
	if findings[1].Code != "W391" {
		t.Errorf("Unexpected second code: %s", findings[1].Code)
	}
}

func TestParseFlakesOutput(t *testing.T) {
	out := []byte(`src/app.py:1:1: 'os' imported but unused
src/app.py:2:1: 'from x import *' used; unable to detect undefined names
src/app.py:9:5: undefined name 'bar'
src/legacy.py:4: local variable 'tmp' is assigned to but never used
`)

	findings := parseFlakesOutput(out)
	if len(findings) != 4 {
		t.Fatalf("Expected 4 findings, got %d", len(findings))
	}

	expected := []string{"F401", "F403", "F821", "F841"}
	for i, code := range expected {
		if findings[i].Code != code {
			t.Errorf("Expected findings[%d].Code=%s, got %s", i, code, findings[i].Code)
		}
	}

	// Two-field form has no column
	if findings[3].Column != 0 || findings[3].Line != 4 {
		t.Errorf("Unexpected location for column-less form: %+v", findings[3])
	}
}

func TestFlakesCode_Unclassified(t *testing.T) {
	if code := flakesCode("something pyflakes never says"); code != "F999" {
		t.Errorf("Expected fallback code F999, got %s", code)
	}
}

func TestParseMypyOutput(t *testing.T) {
	out := []byte(`src/app.py:14:9: error: Argument 1 to "run" has incompatible type "str"  [arg-type]
src/app.py:20: note: Revealed type is "builtins.int"
src/app.py:31:1: error: Name "x" is not defined
`)

	findings := parseMypyOutput(out)
	if len(findings) != 3 {
		t.Fatalf("Expected 3 findings, got %d", len(findings))
	}

	if findings[0].Code != "arg-type" || findings[0].Severity != "error" || findings[0].Column != 9 {
		t.Errorf("Unexpected first finding: %+v", findings[0])
	}
	// Without a bracketed code the severity doubles as the code
	if findings[1].Code != "note" || findings[1].Severity != "note" {
		t.Errorf("Unexpected second finding: %+v", findings[1])
	}
	if findings[2].Code != "error" {
		t.Errorf("Unexpected third finding: %+v", findings[2])
	}
}

func TestParseMccabeOutput(t *testing.T) {
	out := []byte(`185:1: 'PlanRunner.run' 13
202:5: 'helper' 11
`)

	findings := parseMccabeOutput(out, "src/runner.py", 10)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	f := findings[0]
	if f.File != "src/runner.py" || f.Line != 185 || f.Column != 1 {
		t.Errorf("Unexpected location: %+v", f)
	}
	if f.Code != "C901" {
		t.Errorf("Expected code C901, got %s", f.Code)
	}
	if f.Message != "'PlanRunner.run' is too complex (13 > 10)" {
		t.Errorf("Unexpected message: %s", f.Message)
	}
}

func TestParsePep257Output(t *testing.T) {
	out := []byte(`src/app.py:1 at module level:
        D100: Missing docstring in public module
src/app.py:24 in public function ` + "`run`" + `:
        D103: Missing docstring in public function
`)

	findings := parsePep257Output(out)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	if findings[0].File != "src/app.py" || findings[0].Line != 1 || findings[0].Code != "D100" {
		t.Errorf("Unexpected first finding: %+v", findings[0])
	}
	if findings[1].Line != 24 || findings[1].Code != "D103" {
		t.Errorf("Unexpected second finding: %+v", findings[1])
	}
}

func TestParseVultureOutput(t *testing.T) {
	out := []byte(`src/app.py:10: unused function 'legacy_handler' (60% confidence)
src/app.py:2: unused import 'os' (90% confidence)
`)

	findings := parseVultureOutput(out)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	if findings[0].Code != "unused-function" || findings[0].Severity != "60" {
		t.Errorf("Unexpected first finding: %+v", findings[0])
	}
	if findings[1].Code != "unused-import" || findings[1].Severity != "90" {
		t.Errorf("Unexpected second finding: %+v", findings[1])
	}
}

func TestParsePyromaOutput(t *testing.T) {
	out := []byte(`------------------------------
Checking .
Found polylint-demo
------------------------------
Your package does not have keywords data.
Your package does not have classifiers data.
------------------------------
Final rating: 8/10
Cottage Cheese
------------------------------
`)

	findings := parsePyromaOutput(out)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if f.File != "setup.py" || f.Code != "PYR001" {
			t.Errorf("Unexpected finding: %+v", f)
		}
	}
	if findings[0].Message != "Your package does not have keywords data." {
		t.Errorf("Unexpected message: %s", findings[0].Message)
	}
}
