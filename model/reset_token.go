package model

import "time"

// ResetToken is a single-use password reset credential. Tokens expire 24
// hours after creation and are deleted once consumed.
type ResetToken struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"user_id" json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

func (t *ResetToken) IsValid() bool {
	return time.Now().UTC().Before(t.ExpiresAt)
}
