package model

import "github.com/google/uuid"

// CachedUser is the identity snapshot fetched from the user service. Role
// is the platform-level role carried by the access token; the per-world
// admin/mod flags live in the world state itself.
type CachedUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}
