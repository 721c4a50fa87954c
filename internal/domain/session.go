package domain

import "time"

// Session represents an in-flight OAuth install, keyed by its CSRF state.
type Session struct {
	Shop      string    `json:"shop"`
	State     string    `json:"state"`
	Scopes    []string  `json:"scopes"`
	ReturnURL string    `json:"return_url"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
