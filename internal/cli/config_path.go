package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"surveylex/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// project is a loaded config together with the directory its relative
// paths resolve against.
type project struct {
	Config config.Config
	Root   string
}

// SurveyPath returns the absolute survey definition path.
func (p project) SurveyPath() string {
	return config.ResolvePath(p.Root, p.Config.Survey)
}

// loadProject loads the config. When surveyOverride is set and no config
// can be found, defaults are used with the override as the survey.
func loadProject(configPath, surveyOverride string) (project, error) {
	surveyOverride = strings.TrimSpace(surveyOverride)
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		if surveyOverride == "" || strings.TrimSpace(configPath) != "" {
			return project{}, err
		}
		abs, absErr := filepath.Abs(surveyOverride)
		if absErr != nil {
			return project{}, fmt.Errorf("resolve survey path: %w", absErr)
		}
		cfg := config.Config{Version: 1, Survey: abs}
		config.Normalize(&cfg)
		return project{Config: cfg, Root: filepath.Dir(abs)}, nil
	}

	cfg, err := config.Load(resolved)
	if err != nil {
		return project{}, err
	}
	p := project{Config: cfg, Root: config.RepoRootFromConfigPath(resolved)}
	if surveyOverride != "" {
		abs, err := filepath.Abs(surveyOverride)
		if err != nil {
			return project{}, fmt.Errorf("resolve survey path: %w", err)
		}
		p.Config.Survey = abs
	}
	return p, nil
}
