package cmd

import (
	"github.com/spf13/pflag"
)

// uploadFlags holds every command-line option of the uploader
type uploadFlags struct {
	Path        string
	Repo        string
	Private     bool
	Token       string
	ResetToken  bool
	Branch      string
	Exclude     []string
	FailFast    bool
	DryRun      bool
	ScanSecrets bool
	APIURL      string
	ConfigPath  string
	Verbose     bool
}

func addUploadFlags(fs *pflag.FlagSet, f *uploadFlags) {
	fs.StringVarP(&f.Path, "path", "p", "", "Path to the project folder (required)")
	fs.StringVarP(&f.Repo, "repo", "r", "", "Name of the repository on GitHub (default: project folder name)")
	fs.BoolVar(&f.Private, "private", false, "Create a private repository")
	fs.StringVar(&f.Token, "token", "", "GitHub access token")
	fs.BoolVar(&f.ResetToken, "reset-token", false, "Reset the saved GitHub token and exit")
	fs.StringVarP(&f.Branch, "branch", "b", "", "Target branch (default: repository default branch)")
	fs.StringArrayVarP(&f.Exclude, "exclude", "e", nil, "Glob of paths to skip, e.g. \"**/*.log\" (repeatable)")
	fs.BoolVar(&f.FailFast, "fail-fast", false, "Stop at the first file that fails to upload")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Show what would be uploaded without writing anything")
	fs.BoolVar(&f.ScanSecrets, "scan-secrets", false, "Scan for secrets before uploading and abort when any are found")
	fs.StringVar(&f.APIURL, "api-url", "", "GitHub Enterprise API base URL")
	fs.StringVar(&f.ConfigPath, "config", "", "Path of the saved token file (default: ~/.github_uploader_config)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug logging")

	fs.SortFlags = false
}
