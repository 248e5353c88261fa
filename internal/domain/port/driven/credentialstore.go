package driven

import (
	"context"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// CredentialStore defines the driven port for persisted identity state: the
// token pair and the user record. Accessors treat absence as a zero value, not
// an error. Mutations are atomic from the caller's perspective: no reader ever
// observes a half-written token pair.
type CredentialStore interface {
	// GetAccess returns the stored access token, or "" when absent.
	GetAccess(ctx context.Context) (string, error)

	// GetRefresh returns the stored refresh token, or "" when absent.
	GetRefresh(ctx context.Context) (string, error)

	// GetUser returns the stored user record. The second return is false when
	// no user is stored.
	GetUser(ctx context.Context) (model.UserRecord, bool, error)

	// SetAll atomically replaces the token pair and the user record.
	SetAll(ctx context.Context, pair model.CredentialPair, user model.UserRecord) error

	// SetTokens atomically replaces the token pair, leaving the stored user
	// record untouched. Used by the refresh flow, which receives no user.
	SetTokens(ctx context.Context, pair model.CredentialPair) error

	// ClearAll removes the token pair and the user record.
	ClearAll(ctx context.Context) error

	// IsAuthenticated reports whether an access token is present.
	IsAuthenticated(ctx context.Context) bool
}
