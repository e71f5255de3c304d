// Package auth resolves the GitHub token from multiple sources.
// Sources are evaluated in the order they were added; the first non-empty
// token wins.
package auth

import (
	"errors"
	"fmt"
	"os"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"
)

// ErrNoToken is returned when no source provides a token
var ErrNoToken = errors.New("no GitHub token available")

// Source indicates where a token was found
type Source string

const (
	SourceFlag   Source = "flag"
	SourceConfig Source = "config"
	SourceEnv    Source = "env"
	SourceCLI    Source = "gh-cli"
	SourcePrompt Source = "prompt"
	SourceNone   Source = "none"
)

// Result contains the resolved token and its source
type Result struct {
	Token  string
	Source Source
	Name   string // e.g. "GITHUB_TOKEN", "~/.github_uploader_config"
}

// TokenProvider attempts to provide a token.
// It returns an empty token when the source has nothing to offer and an
// error only for unexpected failures.
type TokenProvider func() (token string, name string, err error)

// TokenLoader is satisfied by credential.Store.
type TokenLoader interface {
	Load() (string, bool)
}

type provider struct {
	source Source
	fn     TokenProvider
}

// Resolver resolves tokens from multiple sources in priority order
type Resolver struct {
	providers []provider
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// WithFlagValue adds an explicit --token value (highest priority when added first)
func (r *Resolver) WithFlagValue(value string) *Resolver {
	return r.WithProvider(SourceFlag, func() (string, string, error) {
		return value, "--token", nil
	})
}

// WithStore adds the persisted credential file as a source
func (r *Resolver) WithStore(store TokenLoader, name string) *Resolver {
	return r.WithProvider(SourceConfig, func() (string, string, error) {
		token, ok := store.Load()
		if !ok {
			return "", "", nil
		}

		return token, name, nil
	})
}

// WithEnvs adds environment variables as token sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		name := envVar
		r.WithProvider(SourceEnv, func() (string, string, error) {
			return os.Getenv(name), name, nil
		})
	}

	return r
}

// WithGHCLI adds the gh CLI stored credentials for host as a source
func (r *Resolver) WithGHCLI(host string) *Resolver {
	return r.WithProvider(SourceCLI, func() (string, string, error) {
		token, src := ghauth.TokenForHost(host)
		return token, "gh:" + src, nil
	})
}

// WithProvider adds a custom token provider
func (r *Resolver) WithProvider(source Source, fn TokenProvider) *Resolver {
	r.providers = append(r.providers, provider{source: source, fn: fn})
	return r
}

// Resolve returns the first token found. ErrNoToken means no source had one.
func (r *Resolver) Resolve() (*Result, error) {
	for _, p := range r.providers {
		token, name, err := p.fn()
		if err != nil {
			return nil, fmt.Errorf("token provider %s: %w", p.source, err)
		}

		if token != "" {
			return &Result{Token: token, Source: p.source, Name: name}, nil
		}
	}

	return &Result{Source: SourceNone}, ErrNoToken
}

// EnvOrDefault returns the value of an environment variable or a default
func EnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
