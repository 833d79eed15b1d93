package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ConsentAndTextSurvey is a two-page survey: a consent form and a required
// text question, followed by an optional text question and an unsupported
// rating question.
const ConsentAndTextSurvey = `version: 1
id: sample
title: "Sample survey"
fragments:
  - questions:
      - type: consent
        required: true
        consent_text: "We keep your answers private."
      - type: text
        title: "Your name"
        required: true
  - questions:
      - type: text
        title: "Anything else?"
      - type: rating
        title: "Rate us"
`

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
