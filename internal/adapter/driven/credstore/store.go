// Package credstore implements the CredentialStore port on top of a durable
// KeyValue store, using the same storage keys as the backend's web client.
package credstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// Storage keys, shared with the original web client so the wire-visible state
// stays recognizable.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
	userKey         = "user"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Store persists the token pair and user record through a KeyValue store.
// It holds no state of its own; atomicity of multi-key writes is delegated to
// the underlying store's SetMany/Delete.
type Store struct {
	kv driven.KeyValue
}

// New creates a Store backed by the given durable KeyValue store.
func New(kv driven.KeyValue) *Store {
	return &Store{kv: kv}
}

// GetAccess returns the stored access token, or "" when absent.
func (s *Store) GetAccess(ctx context.Context) (string, error) {
	v, _, err := s.kv.Get(ctx, accessTokenKey)
	if err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}
	return v, nil
}

// GetRefresh returns the stored refresh token, or "" when absent.
func (s *Store) GetRefresh(ctx context.Context) (string, error) {
	v, _, err := s.kv.Get(ctx, refreshTokenKey)
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return v, nil
}

// GetUser returns the stored user record, with ok=false when absent or unreadable.
func (s *Store) GetUser(ctx context.Context) (model.UserRecord, bool, error) {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return model.UserRecord{}, false, fmt.Errorf("get user: %w", err)
	}
	if !ok || raw == "" {
		return model.UserRecord{}, false, nil
	}

	var user model.UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.UserRecord{}, false, fmt.Errorf("decode user: %w", err)
	}
	return user, true, nil
}

// SetAll atomically replaces the token pair and user record.
func (s *Store) SetAll(ctx context.Context, pair model.CredentialPair, user model.UserRecord) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = s.kv.SetMany(ctx, map[string]string{
		accessTokenKey:  pair.AccessToken,
		refreshTokenKey: pair.RefreshToken,
		userKey:         string(encoded),
	})
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

// SetTokens atomically replaces the token pair, leaving the user record untouched.
func (s *Store) SetTokens(ctx context.Context, pair model.CredentialPair) error {
	err := s.kv.SetMany(ctx, map[string]string{
		accessTokenKey:  pair.AccessToken,
		refreshTokenKey: pair.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

// ClearAll removes the token pair and user record.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, accessTokenKey, refreshTokenKey, userKey); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is present. Storage errors
// count as not authenticated.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, err := s.GetAccess(ctx)
	return err == nil && token != ""
}
