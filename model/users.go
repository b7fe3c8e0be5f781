package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Email     string    `bson:"email" json:"email" validate:"required,email"` // stored lower-cased
	Name      string    `bson:"name" json:"name" validate:"required"`
	Password  string    `bson:"password,omitempty" json:"-"` // salt$hash, empty for OAuth accounts
	GoogleID  string    `bson:"google_id,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
