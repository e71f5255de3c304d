package cmd

import (
	"context"
	"fmt"

	"github.com/inovacc/ghuploader/internal/core"
)

// MockRemote is a mock implementation of core.Remote for testing.
type MockRemote struct {
	// Token the mock accepts; any other token is rejected with ErrUnauthorized
	ValidToken string
	Token      string
	Login      string

	// Remote state
	Repos map[string]*core.Repository
	Files map[string][]byte

	// Error injection
	UserErr    error
	GetRepoErr error

	// Call tracking
	Calls []string
}

// NewMockRemote creates a MockRemote accepting validToken.
func NewMockRemote(validToken string) *MockRemote {
	return &MockRemote{
		ValidToken: validToken,
		Login:      "octocat",
		Repos:      make(map[string]*core.Repository),
		Files:      make(map[string][]byte),
	}
}

// factory returns a remoteFactory handing out this mock for every token.
func (m *MockRemote) factory(tokens *[]string) remoteFactory {
	return func(_ context.Context, token, _ string) (core.Remote, error) {
		if tokens != nil {
			*tokens = append(*tokens, token)
		}

		m.Token = token

		return m, nil
	}
}

// AuthenticatedUser implements core.Remote.
func (m *MockRemote) AuthenticatedUser(_ context.Context) (string, error) {
	m.Calls = append(m.Calls, "user")

	if m.UserErr != nil {
		return "", m.UserErr
	}

	if m.Token != m.ValidToken {
		return "", fmt.Errorf("%w: 401 Bad credentials", core.ErrUnauthorized)
	}

	return m.Login, nil
}

// GetRepository implements core.Remote.
func (m *MockRemote) GetRepository(_ context.Context, owner, name string) (*core.Repository, error) {
	m.Calls = append(m.Calls, "get-repo "+owner+"/"+name)

	if m.GetRepoErr != nil {
		return nil, m.GetRepoErr
	}

	repo, ok := m.Repos[name]
	if !ok {
		return nil, core.ErrNotFound
	}

	return repo, nil
}

// CreateRepository implements core.Remote.
func (m *MockRemote) CreateRepository(_ context.Context, name string, private bool) (*core.Repository, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("create-repo %s private=%t", name, private))

	repo := &core.Repository{Owner: m.Login, Name: name, Private: private}
	m.Repos[name] = repo

	return repo, nil
}

// GetFile implements core.Remote.
func (m *MockRemote) GetFile(_ context.Context, _ *core.Repository, path, _ string) (*core.RemoteFile, error) {
	m.Calls = append(m.Calls, "get-file "+path)

	if _, ok := m.Files[path]; !ok {
		return nil, core.ErrNotFound
	}

	return &core.RemoteFile{Path: path, SHA: "sha-" + path}, nil
}

// CreateFile implements core.Remote.
func (m *MockRemote) CreateFile(_ context.Context, _ *core.Repository, path, _, _ string, content []byte) error {
	m.Calls = append(m.Calls, "create-file "+path)
	m.Files[path] = content

	return nil
}

// UpdateFile implements core.Remote.
func (m *MockRemote) UpdateFile(_ context.Context, _ *core.Repository, path, _, _ string, content []byte, _ string) error {
	m.Calls = append(m.Calls, "update-file "+path)
	m.Files[path] = content

	return nil
}
