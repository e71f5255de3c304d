package core

import (
	"context"
	"errors"
	"fmt"
)

// ValidateToken checks the client's token against the identity endpoint and
// returns the authenticated login. A rejected token yields ErrUnauthorized;
// transport or server failures are returned as-is.
func ValidateToken(ctx context.Context, remote Remote) (string, error) {
	login, err := remote.AuthenticatedUser(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return "", ErrUnauthorized
		}

		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	if login == "" {
		return "", fmt.Errorf("failed to verify token: empty login returned")
	}

	return login, nil
}

// IsValidToken reports whether the token authenticates. It returns false
// with a nil error only when the service rejected the credential.
func IsValidToken(ctx context.Context, remote Remote) (bool, error) {
	_, err := ValidateToken(ctx, remote)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthorized):
		return false, nil
	default:
		return false, err
	}
}
