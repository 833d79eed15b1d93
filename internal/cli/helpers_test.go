package cli

import (
	"path/filepath"
	"testing"

	"surveylex/internal/config"
	"surveylex/internal/testutil"
)

// writeProject creates a project with the sample survey and returns the
// config path.
func writeProject(t *testing.T, upload string) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, filepath.Join(config.ConfigDirName, config.SurveyFileName), testutil.ConsentAndTextSurvey)
	body := "version: 1\nsurvey: .surveylex/survey.yml\nui:\n  mode: auto\n" + upload
	return testutil.WriteFile(t, root, filepath.Join(config.ConfigDirName, config.ConfigFileName), body)
}
