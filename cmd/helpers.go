package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/ghuploader/internal/application"
	"github.com/inovacc/ghuploader/internal/auth"
)

// newLogger creates the diagnostic logger.
// Warnings and errors only, unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// configFilePath picks the token file: --config, then $GITHUB_UPLOADER_CONFIG,
// then ~/.github_uploader_config
func configFilePath(flagValue string) (string, error) {
	if flagValue != "" {
		return expandPath(flagValue)
	}

	if env := auth.EnvOrDefault(application.ConfigPathEnv, ""); env != "" {
		return expandPath(env)
	}

	return application.GetConfigFilePath()
}

// isDir reports whether path exists and is a directory
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
