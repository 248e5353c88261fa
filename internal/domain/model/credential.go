// Package model contains the domain types shared across ports and adapters.
package model

// CredentialPair holds the two tokens issued by the backend. Both values are
// opaque to the client. A pair is either fully present or fully absent; the
// credential store never persists one half without the other.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether the pair carries no tokens.
func (p CredentialPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// UserRecord is the backend's view of the logged-in user, replaced wholesale
// on login and cleared wholesale on logout or session expiry.
type UserRecord struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}
