package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProject lays out a config and survey file under a temp root.
func writeProject(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()
	dir := ConfigDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SurveyFileName), []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write survey: %v", err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root
}

// TestLoadAppliesDefaults verifies normalization fills unset fields.
func TestLoadAppliesDefaults(t *testing.T) {
	root := writeProject(t, "version: 1\nsurvey: .surveylex/survey.yml\n")
	cfg, err := Load(ConfigPath(root))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.Mode != UIModeAuto {
		t.Fatalf("expected ui mode auto, got %q", cfg.UI.Mode)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected log level info, got %q", cfg.Log.Level)
	}
	if cfg.Upload.Sink != SinkNone {
		t.Fatalf("expected sink none, got %q", cfg.Upload.Sink)
	}
	if cfg.Upload.Retries != DefaultRetries || cfg.Upload.BackoffMs != DefaultBackoffMs {
		t.Fatalf("expected retry defaults, got %d/%d", cfg.Upload.Retries, cfg.Upload.BackoffMs)
	}
}

// TestLoadRejectsUnknownFields verifies strict decoding.
func TestLoadRejectsUnknownFields(t *testing.T) {
	root := writeProject(t, "version: 1\nsurvey: .surveylex/survey.yml\nbogus: true\n")
	if _, err := Load(ConfigPath(root)); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestValidateCollectsIssues verifies every problem is reported at once.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := Config{
		Version: 2,
		UI:      UIConfig{Mode: "fancy"},
		Log:     LogConfig{Level: "trace"},
		Upload:  UploadConfig{Sink: SinkHTTP, HTTP: HTTPConfig{URL: "not a url"}},
	}
	err := Validate(&cfg, t.TempDir())
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"version", "survey", "ui.mode", "log.level", "upload.http.url"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %s issue, got %q", field, err.Error())
		}
	}
}

// TestValidateSinkRequirements verifies per-sink required settings.
func TestValidateSinkRequirements(t *testing.T) {
	cases := map[string]string{
		SinkRedis: "upload.redis.addr",
		SinkMongo: "upload.mongo.uri",
		SinkHTTP:  "upload.http.url",
		"carrier": "upload.sink",
	}
	root := writeProject(t, "version: 1\n")
	for sink, field := range cases {
		cfg := Config{Version: 1, Survey: ".surveylex/survey.yml", Upload: UploadConfig{Sink: sink}}
		Normalize(&cfg)
		err := Validate(&cfg, root)
		if err == nil || !strings.Contains(err.Error(), field) {
			t.Fatalf("sink %s: expected %s issue, got %v", sink, field, err)
		}
	}
}

// TestFindConfigPathWalksUp verifies discovery from a nested directory.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := writeProject(t, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want, _ := filepath.Abs(ConfigPath(root))
	if path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
	if got := RepoRootFromConfigPath(path); got != filepath.Dir(filepath.Dir(want)) {
		t.Fatalf("unexpected repo root %q", got)
	}
}

// TestScaffoldRefusesOverwrite verifies init does not clobber a project.
func TestScaffoldRefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	if err := Scaffold(root); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := Load(ConfigPath(root)); err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if err := Scaffold(root); err == nil {
		t.Fatalf("expected overwrite error")
	}
}
