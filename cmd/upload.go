package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/inovacc/ghuploader/internal/auth"
	"github.com/inovacc/ghuploader/internal/core"
	"github.com/inovacc/ghuploader/internal/credential"
	"github.com/inovacc/ghuploader/internal/security"
)

const (
	msgTokenReset     = "Saved GitHub token has been reset."
	msgTokenMissing   = "GitHub access token is missing or invalid."
	msgTokenPrompt    = "Please enter your GitHub access token: "
	msgTokenRetry     = "Invalid token, please try again."
	msgTokenSaved     = "Token saved to %s\n"
	msgInvalidProject = "project path '%s' does not exist or is not a directory"
)

// remoteFactory builds a Remote for a token
type remoteFactory func(ctx context.Context, token, apiURL string) (core.Remote, error)

// secretScanner is satisfied by security.LeakScanner
type secretScanner interface {
	LoadGitleaksIgnore(root string) error
	ScanDirectory(ctx context.Context, root string, skip func(path string) bool) (*security.ScanResult, error)
}

// uploadRunner drives a single invocation: reset, validate/prompt, scan, upload.
type uploadRunner struct {
	flags    uploadFlags
	out      io.Writer
	errOut   io.Writer
	store    *credential.Store
	prompter tokenReader
	logger   *slog.Logger
	plain    bool

	newRemote   remoteFactory
	newResolver func(flagToken string) *auth.Resolver
	newScanner  func() (secretScanner, error)
}

func newUploadRunner(flags uploadFlags, in io.Reader, out, errOut io.Writer) (*uploadRunner, error) {
	path, err := configFilePath(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	r := &uploadRunner{
		flags:    flags,
		out:      out,
		errOut:   errOut,
		store:    credential.NewStore(path),
		prompter: newTokenPrompter(in, out),
		logger:   newLogger(errOut, flags.Verbose),
		newRemote: func(ctx context.Context, token, apiURL string) (core.Remote, error) {
			return core.NewGitHubRemoteForToken(ctx, token, apiURL)
		},
		newScanner: func() (secretScanner, error) {
			return security.NewLeakScanner()
		},
	}

	r.newResolver = r.defaultResolver

	return r, nil
}

func (r *uploadRunner) defaultResolver(flagToken string) *auth.Resolver {
	return auth.NewResolver().
		WithFlagValue(flagToken).
		WithStore(r.store, r.store.Path).
		WithEnvs("GITHUB_TOKEN", "GH_TOKEN").
		WithGHCLI(core.HostFromAPIURL(r.flags.APIURL))
}

func (r *uploadRunner) run(ctx context.Context) error {
	if r.flags.ResetToken {
		if err := r.store.Reset(); err != nil {
			return fmt.Errorf("failed to reset token: %w", err)
		}

		_, _ = fmt.Fprintln(r.out, msgTokenReset)

		return nil
	}

	if r.flags.Path == "" {
		return errors.New(`required flag(s) "path" not set`)
	}

	if !isDir(r.flags.Path) {
		return fmt.Errorf(msgInvalidProject+": %w", r.flags.Path, core.ErrInvalidPath)
	}

	remote, err := r.authenticate(ctx)
	if err != nil {
		return err
	}

	if r.flags.ScanSecrets {
		if err := r.scanSecrets(ctx); err != nil {
			return err
		}
	}

	policy := core.ContinueOnFileError
	if r.flags.FailFast {
		policy = core.AbortOnFileError
	}

	reporter := core.NewReporter(r.out, r.plain)

	result, err := core.Upload(ctx, remote, core.Options{
		Path:     r.flags.Path,
		RepoName: r.flags.Repo,
		Private:  r.flags.Private,
		Branch:   r.flags.Branch,
		Exclude:  r.flags.Exclude,
		Policy:   policy,
		DryRun:   r.flags.DryRun,
		Reporter: reporter,
		Logger:   r.logger,
	})
	if result != nil {
		reporter.Summary(result.Counts())
	}

	return err
}

// authenticate returns a Remote for the first valid token, prompting until
// one is entered. Prompted tokens are saved; tokens from other sources are not.
func (r *uploadRunner) authenticate(ctx context.Context) (core.Remote, error) {
	res, err := r.newResolver(r.flags.Token).Resolve()
	if err != nil && !errors.Is(err, auth.ErrNoToken) {
		return nil, err
	}

	r.logger.Debug("token resolved", slog.String("source", string(res.Source)), slog.String("name", res.Name))

	remote, ok, err := r.tryToken(ctx, res.Token)
	if err != nil {
		return nil, err
	}

	for !ok {
		_, _ = fmt.Fprintln(r.out, msgTokenMissing)

		token, err := r.prompter.ReadToken(msgTokenPrompt)
		if err != nil {
			return nil, err
		}

		remote, ok, err = r.tryToken(ctx, token)
		if err != nil {
			return nil, err
		}

		if ok {
			if err := r.store.Save(token); err != nil {
				return nil, fmt.Errorf("failed to save token: %w", err)
			}

			_, _ = fmt.Fprintf(r.out, msgTokenSaved, r.store.Path)

			break
		}

		_, _ = fmt.Fprintln(r.out, msgTokenRetry)
	}

	return remote, nil
}

func (r *uploadRunner) tryToken(ctx context.Context, token string) (core.Remote, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	remote, err := r.newRemote(ctx, token, r.flags.APIURL)
	if err != nil {
		return nil, false, err
	}

	ok, err := core.IsValidToken(ctx, remote)
	if err != nil {
		return nil, false, err
	}

	return remote, ok, nil
}

func (r *uploadRunner) scanSecrets(ctx context.Context) error {
	_, _ = fmt.Fprintf(r.out, "🔍 Scanning %s for secrets...\n", r.flags.Path)

	scanner, err := r.newScanner()
	if err != nil {
		return fmt.Errorf("failed to initialize scanner: %w", err)
	}

	if err := scanner.LoadGitleaksIgnore(r.flags.Path); err != nil {
		r.logger.Warn("failed to load .gitleaksignore", slog.String("error", err.Error()))
	}

	entries, err := core.CollectFiles(r.flags.Path, r.flags.Exclude)
	if err != nil {
		return err
	}

	uploaded := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		uploaded[e.Path] = struct{}{}
	}

	skip := func(path string) bool {
		_, ok := uploaded[path]
		return !ok
	}

	result, err := scanner.ScanDirectory(ctx, r.flags.Path, skip)
	if err != nil {
		return err
	}

	if result.HasLeaks() {
		_, _ = fmt.Fprint(r.errOut, security.FormatFindings(result.Findings))
		_, _ = fmt.Fprintln(r.errOut, "❌ Upload aborted: secrets detected!")
		_, _ = fmt.Fprintln(r.errOut, "   Remove them, add them to .gitleaksignore, or exclude the files with --exclude")

		return &security.SecretsFoundError{Count: len(result.Findings)}
	}

	_, _ = fmt.Fprintln(r.out, "✅ No secrets detected")

	return nil
}
