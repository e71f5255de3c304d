package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/inovacc/ghuploader/internal/application"
	"github.com/inovacc/ghuploader/internal/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCmd_ResetTokenIgnoresOtherFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config")
	require.NoError(t, credential.NewStore(configPath).Save("old"))

	out, err := executeRoot(t, "--reset-token", "--config", configPath, "--path", "/nonexistent", "--private")
	require.NoError(t, err)
	assert.Contains(t, out, msgTokenReset)

	token, ok := credential.NewStore(configPath).Load()
	assert.True(t, ok)
	assert.Empty(t, token)
}

func TestRootCmd_ConfigFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "from-env")
	t.Setenv(application.ConfigPathEnv, configPath)

	_, err := executeRoot(t, "--reset-token")
	require.NoError(t, err)

	_, ok := credential.NewStore(configPath).Load()
	assert.True(t, ok)
}

func TestRootCmd_InvalidPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config")
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := executeRoot(t, "-p", missing, "--config", configPath, "--token", "unused")
	require.Error(t, err)
	assert.Contains(t, out, "does not exist or is not a directory")
}

func TestRootCmd_PathRequired(t *testing.T) {
	_, err := executeRoot(t, "--config", filepath.Join(t.TempDir(), "config"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"path"`)
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	_, err := executeRoot(t, "extra")
	require.Error(t, err)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"path", "repo", "private", "token", "reset-token", "branch", "exclude", "fail-fast", "dry-run", "scan-secrets", "api-url", "config", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	assert.Equal(t, "p", cmd.Flags().Lookup("path").Shorthand)
	assert.Equal(t, "r", cmd.Flags().Lookup("repo").Shorthand)
}

func TestRootCmd_Version(t *testing.T) {
	out, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, application.Version)
}
