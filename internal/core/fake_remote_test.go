package core

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
)

// fakeRemote is an in-memory Remote used by the uploader tests.
type fakeRemote struct {
	mu sync.Mutex

	login      string
	repos      map[string]*Repository
	files      map[string]map[string][]byte // repo name -> path -> content
	calls      []string
	userErr    error
	getRepoErr error
	createErr  error
	fileErrs   map[string]error // path -> error returned by GetFile
	writeErrs  map[string]error // path -> error returned by Create/UpdateFile
}

func newFakeRemote(login string) *fakeRemote {
	return &fakeRemote{
		login:     login,
		repos:     make(map[string]*Repository),
		files:     make(map[string]map[string][]byte),
		fileErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

func (f *fakeRemote) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRemote) count(prefix string) int {
	n := 0

	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}

	return n
}

func blobSHA(content []byte) string {
	h := sha1.New()
	_, _ = fmt.Fprintf(h, "blob %d\x00", len(content))
	_, _ = h.Write(content)

	return hex.EncodeToString(h.Sum(nil))
}

func (f *fakeRemote) AuthenticatedUser(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("user")

	if f.userErr != nil {
		return "", f.userErr
	}

	return f.login, nil
}

func (f *fakeRemote) GetRepository(_ context.Context, owner, name string) (*Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("get-repo %s/%s", owner, name)

	if f.getRepoErr != nil {
		return nil, f.getRepoErr
	}

	repo, ok := f.repos[name]
	if !ok || owner != f.login {
		return nil, fmt.Errorf("repository %s/%s: %w", owner, name, ErrNotFound)
	}

	return repo, nil
}

func (f *fakeRemote) CreateRepository(_ context.Context, name string, private bool) (*Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("create-repo %s private=%t", name, private)

	if f.createErr != nil {
		return nil, f.createErr
	}

	repo := &Repository{Owner: f.login, Name: name, Private: private, DefaultBranch: "main"}
	f.repos[name] = repo
	f.files[name] = make(map[string][]byte)

	return repo, nil
}

func (f *fakeRemote) GetFile(_ context.Context, repo *Repository, path, _ string) (*RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("get-file %s", path)

	if err, ok := f.fileErrs[path]; ok {
		return nil, err
	}

	content, ok := f.files[repo.Name][path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	return &RemoteFile{Path: path, SHA: blobSHA(content)}, nil
}

func (f *fakeRemote) CreateFile(_ context.Context, repo *Repository, path, _, message string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("create-file %s %q", path, message)

	if err, ok := f.writeErrs[path]; ok {
		return err
	}

	if _, exists := f.files[repo.Name][path]; exists {
		return fmt.Errorf("%s already exists", path)
	}

	f.files[repo.Name][path] = append([]byte(nil), content...)

	return nil
}

func (f *fakeRemote) UpdateFile(_ context.Context, repo *Repository, path, _, message string, content []byte, sha string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("update-file %s %q", path, message)

	if err, ok := f.writeErrs[path]; ok {
		return err
	}

	current, exists := f.files[repo.Name][path]
	if !exists {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	if blobSHA(current) != sha {
		return fmt.Errorf("%s: sha mismatch", path)
	}

	f.files[repo.Name][path] = append([]byte(nil), content...)

	return nil
}
