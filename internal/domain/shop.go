package domain

import "time"

// Shop represents an installed shop. The access token is stored encrypted and
// only decrypted on the way into a Shopify API call.
type Shop struct {
	Domain      string    `json:"domain"`
	AccessToken string    `json:"-"`
	Scopes      []string  `json:"scopes"`
	InstalledAt time.Time `json:"installed_at"`
}
