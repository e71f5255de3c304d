package application

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// AppName is the application name used for the executable and user agent
	AppName = "github-uploader"

	// ConfigFileName is the credential file kept in the user's home directory
	ConfigFileName = ".github_uploader_config"

	// ConfigPathEnv overrides the credential file location
	ConfigPathEnv = "GITHUB_UPLOADER_CONFIG"

	// DefaultHost is the GitHub host used when no API URL is given
	DefaultHost = "github.com"
)

// Version is set at build time via -ldflags.
var Version = "1.0.0"

var (
	once       sync.Once
	configPath string
	errPath    error
)

// GetConfigFilePath returns the default credential file path.
// All platforms: ~/.github_uploader_config (via os.UserHomeDir)
func GetConfigFilePath() (string, error) {
	once.Do(lazyLoad)

	if errPath != nil {
		return "", errPath
	}

	return configPath, nil
}

func lazyLoad() {
	home, err := os.UserHomeDir()
	if err != nil {
		errPath = fmt.Errorf("failed to get home directory: %w", err)
		return
	}

	configPath = filepath.Join(home, ConfigFileName)
}
