package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/ghuploader/internal/application"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &uploadFlags{}

	cmd := &cobra.Command{
		Use:   application.AppName + " -p <dir> [flags]",
		Short: "Upload a project directory to GitHub",
		Long: `Upload the contents of a local directory to a GitHub repository.

The repository is created under the authenticated user when it does not
exist. Every file is created or updated through the GitHub API; remote files
that are absent locally are left untouched.

Authentication:
  Uses a GitHub token from (in priority order):
  1. --token flag
  2. Saved token (~/.github_uploader_config)
  3. GITHUB_TOKEN environment variable
  4. GH_TOKEN environment variable
  5. gh CLI authentication
  When none is valid you are prompted and the entered token is saved.

Examples:
  github-uploader -p ./myproj
  github-uploader -p ./myproj -r other-name --private
  github-uploader -p ./myproj -e "node_modules" -e "**/*.log"
  github-uploader -p ./myproj --dry-run
  github-uploader --reset-token`,
		Version:      application.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := newUploadRunner(*flags, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runner.run(cmd.Context())
		},
	}

	addUploadFlags(cmd.Flags(), flags)

	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
