package v1

import (
	"context"

	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/service/adherent"
)

// TokenAuthority issues access tokens at login and verifies them for /adherents/me.
type TokenAuthority interface {
	adherent.TokenIssuer
	// Parse verifies a bearer token and returns its claims.
	Parse(token string) (*credential.Claims, error)
}

// ReadyChecker is implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
