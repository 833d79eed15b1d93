package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"surveylex/internal/testutil"
)

// TestValidateCommandSuccess verifies validate command success path.
func TestValidateCommandSuccess(t *testing.T) {
	configPath := writeProject(t, "")

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Survey sample OK: 2 pages, 4 questions") {
		t.Fatalf("expected success message, got %q", out.String())
	}
}

// TestValidateCommandReportsSurveyIssues verifies definition errors are listed.
func TestValidateCommandReportsSurveyIssues(t *testing.T) {
	configPath := writeProject(t, "")
	surveyPath := testutil.WriteFile(t, t.TempDir(), "broken.yml", "version: 1\nfragments:\n  - questions:\n      - type: consent\n")

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath, "--survey", surveyPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "consent_text") {
		t.Fatalf("expected consent_text issue, got %q", err.String())
	}
}

// TestValidateCommandMissingConfig verifies an explicit missing config fails.
func TestValidateCommandMissingConfig(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", filepath.Join(t.TempDir(), "missing.yml")}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Validation failed") {
		t.Fatalf("expected failure header, got %q", err.String())
	}
}
