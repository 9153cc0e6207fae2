package domain

import "time"

// AccessToken is the issued bearer credential returned by login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}
