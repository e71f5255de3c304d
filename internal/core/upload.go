package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Action is the terminal state of a single file
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionPlanned Action = "planned"
)

// Options configures an upload
type Options struct {
	Path     string      // Required: local directory to upload
	RepoName string      // Remote repository name (default: base name of Path)
	Private  bool        // Visibility used only when the repository is created
	Branch   string      // Target branch (default: repository default branch)
	Exclude  []string    // Doublestar globs matched against relative paths
	Policy   ErrorPolicy // How per-file failures are handled
	DryRun   bool        // Report what would happen without writing
	Reporter *Reporter
	Logger   *slog.Logger
}

// FileResult is the outcome for a single file
type FileResult struct {
	Path   string
	Action Action
	Err    error
}

// Result summarizes an upload
type Result struct {
	Repository *Repository
	Created    bool
	Files      []FileResult
}

// Counts tallies file outcomes
type Counts struct {
	Created int
	Updated int
	Skipped int
	Planned int
}

// Counts returns per-action totals
func (r *Result) Counts() Counts {
	var c Counts

	for _, f := range r.Files {
		switch f.Action {
		case ActionCreated:
			c.Created++
		case ActionUpdated:
			c.Updated++
		case ActionSkipped:
			c.Skipped++
		case ActionPlanned:
			c.Planned++
		}
	}

	return c
}

// ResolveRepoName returns name, or the base name of the absolute form of path
func ResolveRepoName(path, name string) (string, error) {
	if name != "" {
		return name, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return filepath.Base(abs), nil
}

// Upload ensures the repository exists and mirrors every local file into it.
// Repository resolution failures are fatal. Per-file failures are recorded
// in the result and, with AbortOnFileError, stop the walk.
func Upload(ctx context.Context, remote Remote, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := opts.Reporter
	if report == nil {
		report = NewReporter(nil, true)
	}

	name, err := ResolveRepoName(opts.Path, opts.RepoName)
	if err != nil {
		return nil, err
	}

	entries, err := CollectFiles(opts.Path, opts.Exclude)
	if err != nil {
		return nil, err
	}

	logger.Debug("collected files",
		slog.String("path", opts.Path),
		slog.Int("count", len(entries)),
		slog.String("policy", opts.Policy.String()),
	)

	repo, created, err := ensureRepository(ctx, remote, name, opts, report)
	if err != nil {
		return nil, err
	}

	result := &Result{Repository: repo, Created: created}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fr := uploadFile(ctx, remote, repo, entry, opts, created && opts.DryRun)
		result.Files = append(result.Files, fr)

		switch fr.Action {
		case ActionCreated:
			report.Success("Created file '%s'.", fr.Path)
		case ActionUpdated:
			report.Success("Updated file '%s'.", fr.Path)
		case ActionPlanned:
			report.Plan("Would upload file '%s'.", fr.Path)
		case ActionSkipped:
			report.Failure("Error uploading file '%s': %v", fr.Path, fr.Err)
			logger.Warn("file upload failed",
				slog.String("path", fr.Path),
				slog.String("error", fr.Err.Error()),
			)

			if opts.Policy == AbortOnFileError {
				return result, &FileUploadError{Path: fr.Path, Err: fr.Err}
			}
		}
	}

	report.Info("Upload completed.")

	return result, nil
}

func ensureRepository(ctx context.Context, remote Remote, name string, opts Options, report *Reporter) (*Repository, bool, error) {
	login, err := remote.AuthenticatedUser(ctx)
	if err != nil {
		return nil, false, &RepositoryAccessError{Name: name, Err: err}
	}

	repo, err := remote.GetRepository(ctx, login, name)
	if err == nil {
		report.Info("Repository '%s' already exists.", name)
		return repo, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, &RepositoryAccessError{Name: name, Err: err}
	}

	if opts.DryRun {
		report.Plan("Would create repository '%s' (private: %t).", name, opts.Private)
		return &Repository{Owner: login, Name: name, Private: opts.Private}, true, nil
	}

	repo, err = remote.CreateRepository(ctx, name, opts.Private)
	if err != nil {
		return nil, false, &RepositoryAccessError{Name: name, Err: err}
	}

	report.Success("Created repository '%s'.", name)

	return repo, true, nil
}

// uploadFile runs the per-file state machine:
// fetch metadata, then update when present, create when absent, skip otherwise.
func uploadFile(ctx context.Context, remote Remote, repo *Repository, entry FileEntry, opts Options, repoPlanned bool) FileResult {
	fr := FileResult{Path: entry.Path}

	content, err := os.ReadFile(entry.LocalPath)
	if err != nil {
		fr.Action = ActionSkipped
		fr.Err = err

		return fr
	}

	if repoPlanned {
		fr.Action = ActionPlanned
		return fr
	}

	existing, err := remote.GetFile(ctx, repo, entry.Path, opts.Branch)

	switch {
	case err == nil:
		if opts.DryRun {
			fr.Action = ActionPlanned
			return fr
		}

		err = remote.UpdateFile(ctx, repo, entry.Path, opts.Branch, "Update "+entry.Path, content, existing.SHA)
		fr.Action = ActionUpdated
	case errors.Is(err, ErrNotFound):
		if opts.DryRun {
			fr.Action = ActionPlanned
			return fr
		}

		err = remote.CreateFile(ctx, repo, entry.Path, opts.Branch, "Add "+entry.Path, content)
		fr.Action = ActionCreated
	}

	if err != nil {
		fr.Action = ActionSkipped
		fr.Err = err
	}

	return fr
}
