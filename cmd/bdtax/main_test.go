package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testdata = "../../test/testdata"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "bdtax" {
		t.Errorf("Expected root command use to be 'bdtax', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}

	want := []string{"calculate", "compare", "breakeven", "slabs", "validate", "export", "import", "serve", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected subcommand %s", name)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("Expected no error for --help, got %v", err)
	}
	if !strings.Contains(out, "FY2024-25") {
		t.Errorf("Expected help to describe the fiscal years, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "bdtax dev") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestCalculateCommand(t *testing.T) {
	out, err := run(t, "calculate", filepath.Join(testdata, "taxpayer.yaml"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, want := range []string{"BANGLADESH INCOME TAX COMPARISON", "Tk 2,000", "Tk 9,250", "+Tk 7,250"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCalculateCommand_SingleYearJSON(t *testing.T) {
	out, err := run(t, "calculate", filepath.Join(testdata, "taxpayer.yaml"), "--fy", "FY2025-26")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !strings.Contains(out, `"fiscalYear": "2025-26"`) || !strings.Contains(out, `"payable": "9250"`) {
		t.Errorf("Unexpected JSON output:\n%s", out)
	}
}

func TestCalculateCommand_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "calculate", filepath.Join(testdata, "taxpayer.yaml"), "--format", "csv", "--output-dir", dir)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "tax_report_*.csv"))
	if len(matches) != 1 {
		t.Fatalf("Expected one CSV report in %s, got %v (output %s)", dir, matches, out)
	}
}

func TestCalculateCommand_Errors(t *testing.T) {
	if _, err := run(t, "calculate", filepath.Join(testdata, "invalid_taxpayer.yaml")); err == nil || !strings.Contains(err.Error(), "cannot be negative") {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := run(t, "calculate", filepath.Join(testdata, "taxpayer.yaml"), "--format", "pdf"); err == nil {
		t.Error("Expected unsupported format error")
	}
	if _, err := run(t, "calculate", filepath.Join(testdata, "taxpayer.yaml"), "--fy", "2030"); err == nil {
		t.Error("Expected unsupported fiscal year error")
	}
}

func TestCalculateCommand_RulesOverride(t *testing.T) {
	out, err := run(t, "slabs", "--income", "1200000", "--rules", filepath.Join(testdata, "rules_override.yaml"))
	if err != nil {
		t.Fatalf("slabs failed: %v", err)
	}
	if !strings.Contains(out, "threshold Tk 4,00,000") || !strings.Contains(out, "Tk 1,10,000") {
		t.Errorf("Expected overridden threshold and tax, got:\n%s", out)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", filepath.Join(testdata, "taxpayer.yaml"), "--template", "raise_10pct,max_dps")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"FISCAL YEAR COMPARISON", "raise_10pct", "max_dps", "NOTES"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	if _, err := run(t, "compare", filepath.Join(testdata, "taxpayer.yaml"), "--template", "nope"); err == nil {
		t.Error("Expected unknown template error")
	}
}

func TestCompareCommand_JSONSummary(t *testing.T) {
	out, err := run(t, "compare", filepath.Join(testdata, "taxpayer.yaml"), "--format", "json-summary")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, `"metrics"`) || strings.Contains(out, `"brackets"`) {
		t.Errorf("Expected metric rows without slab rows, got:\n%s", out)
	}
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	if err != nil {
		t.Fatalf("compare --list-templates failed: %v", err)
	}
	for _, want := range []string{"invest_1lakh", "turn_65", "set_investment"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in template list", want)
		}
	}
}

func TestSlabsCommand(t *testing.T) {
	out, err := run(t, "slabs", "--fy", "2025-26", "--threshold", "375000", "--income", "1200000")
	if err != nil {
		t.Fatalf("slabs failed: %v", err)
	}
	if !strings.Contains(out, "Tk 1,15,000") {
		t.Errorf("Expected total tax Tk 1,15,000, got:\n%s", out)
	}

	out, err = run(t, "slabs", "--fy", "2024-25", "--category", "female")
	if err != nil {
		t.Fatalf("slabs failed: %v", err)
	}
	if !strings.Contains(out, "threshold Tk 4,00,000") {
		t.Errorf("Expected the female threshold, got:\n%s", out)
	}

	if _, err := run(t, "slabs", "--category", "wizard"); err == nil {
		t.Error("Expected unknown category error")
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", filepath.Join(testdata, "taxpayer.yaml"), "--rules", filepath.Join(testdata, "rules_override.yaml"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("Unexpected validate output: %s", out)
	}

	if _, err := run(t, "validate"); err == nil {
		t.Error("Expected error when there is nothing to validate")
	}
}

func TestImportExportCommands(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.json")

	if _, err := run(t, "import", filepath.Join(testdata, "taxpayer.json"), "--state", state); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := run(t, "calculate", "--state", state)
	if err != nil {
		t.Fatalf("calculate from state failed: %v", err)
	}
	if !strings.Contains(out, "Tk 4,000") || !strings.Contains(out, "Tk 5,500") {
		t.Errorf("Expected results of the imported state, got:\n%s", out)
	}

	exported := filepath.Join(dir, "export.json")
	if _, err := run(t, "export", exported, "--state", state); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"category": "female"`) {
		t.Errorf("Expected exported profile, got:\n%s", data)
	}

	if _, err := run(t, "import", filepath.Join(testdata, "invalid_taxpayer.yaml"), "--state", state); err == nil {
		t.Error("Expected import of an invalid file to fail")
	}
}

func TestCalculateCommand_CorruptStateFallsBack(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(state, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "calculate", "--state", state)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !strings.Contains(out, "Warning:") || !strings.Contains(out, "Tk 5,000") {
		t.Errorf("Expected a warning and default results, got:\n%s", out)
	}
}

func TestBreakevenCommand(t *testing.T) {
	out, err := run(t, "breakeven", filepath.Join(testdata, "taxpayer.yaml"))
	if err != nil {
		t.Fatalf("breakeven failed: %v\n%s", err, out)
	}
	for _, want := range []string{"BREAK-EVEN RESULTS", "FY2025-26", "Tk 59,996", "Tk 9,250"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	state := filepath.Join(t.TempDir(), "state.json")
	out, err = run(t, "breakeven", "--target", "salary", "--state", state, "--format", "json")
	if err != nil {
		t.Fatalf("breakeven --target salary failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"optimal_amount": "31250"`) || !strings.Contains(out, `"goal": "tax_free"`) {
		t.Errorf("Unexpected JSON output:\n%s", out)
	}

	out, err = run(t, "breakeven", "--all", "--state", state)
	if err != nil {
		t.Fatalf("breakeven --all failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "BREAK-EVEN SUMMARY") || !strings.Contains(out, "Tk 29,167") {
		t.Errorf("Unexpected summary:\n%s", out)
	}

	if _, err := run(t, "breakeven", "--state", state, "--goal", "target_payable"); err == nil {
		t.Error("Expected error without --target-payable")
	}
	if _, err := run(t, "breakeven", "--state", state, "--format", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
