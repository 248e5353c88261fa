package produs

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry returns the expiry time embedded in the stored access
// token's JWT claims. The token is decoded without signature verification:
// the client holds no signing key, and the expiry is only used to schedule a
// proactive refresh, never to grant access. Returns false when no token is
// stored, the token is not a JWT, or it carries no exp claim.
func (c *Client) AccessTokenExpiry(ctx context.Context) (time.Time, bool) {
	token, err := c.creds.GetAccess(ctx)
	if err != nil || token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
