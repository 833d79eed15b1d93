package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
survey: ".surveylex/survey.yml"

ui:
  mode: auto
  no_color: false

log:
  level: info

upload:
  sink: duckdb
  retries: 2
  backoff_ms: 250
  duckdb:
    path: ".surveylex/responses.duckdb"
`

const defaultSurvey = `version: 1
id: onboarding
title: "Onboarding survey"
fragments:
  - questions:
      - type: consent
        title: "Consent"
        consent_text: |
          Your answers are stored anonymously and used only to improve the product.
        prompt: "I have read and agree to the terms above."
      - type: text
        title: "What is your role?"
        required: true
  - questions:
      - type: text
        title: "What would you like us to improve?"
      - type: rating
        title: "How likely are you to recommend us?"
`

// Scaffold writes a default config and sample survey under root. It refuses
// to overwrite existing files.
func Scaffold(root string) error {
	if root == "" {
		return fmt.Errorf("root directory is required")
	}
	configPath := ConfigPath(root)
	surveyPath := filepath.Join(ConfigDir(root), SurveyFileName)
	for _, path := range []string{configPath, surveyPath} {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return fmt.Errorf("path %q is a directory", path)
			}
			return fmt.Errorf("file already exists at %q", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %q: %w", path, err)
		}
	}

	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(surveyPath, []byte(defaultSurvey), 0o644); err != nil {
		return fmt.Errorf("write survey file: %w", err)
	}
	return nil
}
