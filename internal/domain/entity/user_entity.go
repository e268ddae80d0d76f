package entity

import (
	"time"
)

// Principal is the opaque, unforgeable caller identifier handed to us by the
// identity provider. It is only ever compared and used as a map key.
type Principal string

func (p Principal) String() string { return string(p) }

// User is the aggregate root of the user directory.
// Email and Company are optional and left empty when not provided.
type User struct {
	Principal Principal `json:"principal"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Email     string    `json:"email,omitempty"`
	Company   string    `json:"company,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
