package produs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// Refresh exchanges the stored refresh token for a new access token, returning
// whether it succeeded. It never returns an error: a missing refresh token,
// a transport failure, a non-2xx response, or a malformed payload all simply
// yield false. Concurrent callers are collapsed into a single network call
// whose result they all share, so at most one refresh is outstanding at a time.
func (c *Client) Refresh(ctx context.Context) bool {
	v, _, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.refreshOnce(ctx), nil
	})
	ok, _ := v.(bool)
	return ok
}

func (c *Client) refreshOnce(ctx context.Context) bool {
	refresh, err := c.creds.GetRefresh(ctx)
	if err != nil || refresh == "" {
		return false
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return false
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh/", payload, false)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Access == "" {
		return false
	}

	// The backend may rotate only the access token; keep the old refresh
	// token in that case so the pair stays complete.
	newRefresh := out.Refresh
	if newRefresh == "" {
		newRefresh = refresh
	}

	pair := model.CredentialPair{AccessToken: out.Access, RefreshToken: newRefresh}
	return c.creds.SetTokens(ctx, pair) == nil
}
