package dto

import "github.com/google/uuid"

type CreateWorldResponse struct {
	WorldID uuid.UUID `json:"world_id"`
}
