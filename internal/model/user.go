// Package model holds the domain and persistence types.
package model

import "time"

// User is one credential: a unique username and its password digest.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// Session is the per-request authentication context.
type Session struct {
	Username      string
	Authenticated bool
	// TokenID identifies the access token the session came from.
	TokenID string
}

// Anonymous is the unauthenticated session.
var Anonymous = Session{}
