package domain

import "time"

// RefreshToken is one outstanding session credential. The bearer-visible
// value is "tokenID.secret"; only the hash of the secret is persisted.
// A token is invalid once RevokedAt is set or ExpiresAt has passed.
type RefreshToken struct {
	TokenID   string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	UserID    string
	CreatedAt time.Time
}
