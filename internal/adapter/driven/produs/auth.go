package produs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// loginResponse mirrors the backend's login payload.
type loginResponse struct {
	Access  string           `json:"access"`
	Refresh string           `json:"refresh"`
	User    model.UserRecord `json:"user"`
}

// Login exchanges credentials for a token pair and user record. On success all
// three values are persisted atomically before the user record is returned.
func (c *Client) Login(ctx context.Context, username, password string) (model.UserRecord, error) {
	body := map[string]string{"username": username, "password": password}
	raw, err := c.do(ctx, http.MethodPost, "/auth/login/", body, false)
	if err != nil {
		return model.UserRecord{}, err
	}

	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.UserRecord{}, fmt.Errorf("decode login response: %w", err)
	}
	if out.Access == "" || out.Refresh == "" {
		return model.UserRecord{}, errors.New("login response missing tokens")
	}

	pair := model.CredentialPair{AccessToken: out.Access, RefreshToken: out.Refresh}
	if err := c.creds.SetAll(ctx, pair, out.User); err != nil {
		return model.UserRecord{}, fmt.Errorf("store login credentials: %w", err)
	}

	return out.User, nil
}

// CheckIP asks the backend whether the client's network origin is allowed.
// The call is unauthenticated and performs no token renewal.
func (c *Client) CheckIP(ctx context.Context) (model.Verdict, error) {
	raw, err := c.do(ctx, http.MethodGet, "/auth/check-ip/", nil, false)
	if err != nil {
		return model.Verdict{}, err
	}

	var out struct {
		Allowed  bool   `json:"allowed"`
		DevMode  bool   `json:"dev_mode"`
		ClientIP string `json:"client_ip"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Verdict{}, fmt.Errorf("decode check-ip response: %w", err)
	}

	return model.Verdict{Allowed: out.Allowed, DevMode: out.DevMode}, nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (model.UserRecord, error) {
	var user model.UserRecord
	if err := c.Get(ctx, "/users/me/", &user); err != nil {
		return model.UserRecord{}, err
	}
	return user, nil
}
