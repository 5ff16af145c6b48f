// Package models defines the resident profile metadata the REST
// collaborator stores. The governance core never holds this data; it is
// keyed by wallet and joined to the core's resident record on read.
package models

import "condogov/internal/condo/models"

// Record is one resident's contact profile.
type Record struct {
	Wallet models.Address `json:"wallet"`
	Name   string         `json:"name"`
	Phone  string         `json:"phone,omitempty"`
	Email  string         `json:"email,omitempty"`
}
