package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v82/github"
)

// Repository identifies a remote repository under a user's namespace
type Repository struct {
	Owner         string
	Name          string
	DefaultBranch string
	Private       bool
	URL           string
}

// FullName returns "owner/name"
func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// RemoteFile is the content metadata of an existing remote file
type RemoteFile struct {
	Path string
	SHA  string
}

// Remote is the hosted-repository API used by the validator and the uploader.
// Implementations return errors wrapping ErrNotFound for missing resources
// and ErrUnauthorized for rejected credentials.
type Remote interface {
	AuthenticatedUser(ctx context.Context) (string, error)
	GetRepository(ctx context.Context, owner, name string) (*Repository, error)
	CreateRepository(ctx context.Context, name string, private bool) (*Repository, error)
	GetFile(ctx context.Context, repo *Repository, path, branch string) (*RemoteFile, error)
	CreateFile(ctx context.Context, repo *Repository, path, branch, message string, content []byte) error
	UpdateFile(ctx context.Context, repo *Repository, path, branch, message string, content []byte, sha string) error
}

// GitHubRemote implements Remote on top of go-github
type GitHubRemote struct {
	client *github.Client
}

var _ Remote = (*GitHubRemote)(nil)

// NewGitHubRemote wraps an existing go-github client
func NewGitHubRemote(client *github.Client) *GitHubRemote {
	return &GitHubRemote{client: client}
}

// NewGitHubRemoteForToken builds the client and wraps it
func NewGitHubRemoteForToken(ctx context.Context, token, apiURL string) (*GitHubRemote, error) {
	client, err := NewGitHubClient(ctx, token, apiURL)
	if err != nil {
		return nil, err
	}

	return NewGitHubRemote(client), nil
}

func (g *GitHubRemote) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", classify(resp, err)
	}

	return user.GetLogin(), nil
}

func (g *GitHubRemote) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	repo, resp, err := g.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify(resp, err)
	}

	return toRepository(repo), nil
}

func (g *GitHubRemote) CreateRepository(ctx context.Context, name string, private bool) (*Repository, error) {
	repo, resp, err := g.client.Repositories.Create(ctx, "", &github.Repository{
		Name:    github.Ptr(name),
		Private: github.Ptr(private),
	})
	if err != nil {
		return nil, classify(resp, err)
	}

	return toRepository(repo), nil
}

func (g *GitHubRemote) GetFile(ctx context.Context, repo *Repository, path, branch string) (*RemoteFile, error) {
	var opts *github.RepositoryContentGetOptions
	if branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: branch}
	}

	file, dir, resp, err := g.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return nil, classify(resp, err)
	}

	if file == nil {
		if dir != nil {
			return nil, ErrIsDirectory
		}

		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	return &RemoteFile{Path: file.GetPath(), SHA: file.GetSHA()}, nil
}

func (g *GitHubRemote) CreateFile(ctx context.Context, repo *Repository, path, branch, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
	}
	if branch != "" {
		opts.Branch = github.Ptr(branch)
	}

	_, resp, err := g.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return classify(resp, err)
	}

	return nil
}

func (g *GitHubRemote) UpdateFile(ctx context.Context, repo *Repository, path, branch, message string, content []byte, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		SHA:     github.Ptr(sha),
	}
	if branch != "" {
		opts.Branch = github.Ptr(branch)
	}

	_, resp, err := g.client.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return classify(resp, err)
	}

	return nil
}

func toRepository(r *github.Repository) *Repository {
	return &Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
		URL:           r.GetHTMLURL(),
	}
}

// classify maps HTTP status codes onto the sentinel errors
func classify(resp *github.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	var ghErr *github.ErrorResponse
	if status == 0 && errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	default:
		return err
	}
}
