package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/ghuploader/internal/application"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a new authenticated GitHub client using the provided token.
// An empty apiURL targets github.com; otherwise the GitHub Enterprise endpoints
// derived from apiURL are used.
func NewGitHubClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	client := github.NewClient(NewOAuth2HTTPClient(ctx, token))
	client.UserAgent = application.AppName + "/" + application.Version

	if apiURL == "" {
		return client, nil
	}

	enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}

	return enterprise, nil
}

// NewOAuth2HTTPClient creates an authenticated HTTP client for the token.
func NewOAuth2HTTPClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}

// HostFromAPIURL returns the GitHub host a token should be looked up for.
func HostFromAPIURL(apiURL string) string {
	if apiURL == "" {
		return application.DefaultHost
	}

	host := apiURL
	if _, rest, ok := strings.Cut(host, "://"); ok {
		host = rest
	}

	host, _, _ = strings.Cut(host, "/")
	host = strings.TrimPrefix(host, "api.")

	if host == "" {
		return application.DefaultHost
	}

	return host
}
