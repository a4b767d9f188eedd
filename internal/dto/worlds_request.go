package dto

import (
	"github.com/BloggingApp/world-service/internal/world"
	"github.com/google/uuid"
)

type CreateUserRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// EditUserRequest carries only pointer fields so absent keys stay absent in
// the emitted changes. The field set mirrors world.UserFields.
type EditUserRequest struct {
	IsAdmin          *bool      `json:"isAdmin"`
	IsMod            *bool      `json:"isMod"`
	Karma            *int       `json:"karma"`
	ReviewedByUserID *uuid.UUID `json:"reviewedByUserId"`
}

func (r EditUserRequest) Changes() world.Changes {
	changes := world.Changes{}
	if r.IsAdmin != nil {
		changes["isAdmin"] = *r.IsAdmin
	}
	if r.IsMod != nil {
		changes["isMod"] = *r.IsMod
	}
	if r.Karma != nil {
		changes["karma"] = *r.Karma
	}
	if r.ReviewedByUserID != nil {
		changes["reviewedByUserId"] = *r.ReviewedByUserID
	}
	return changes
}

type CreatePostRequest struct {
	PostID int64 `json:"post_id" binding:"required"`
}

// EditPostRequest mirrors world.PostFields, minus authorIsUnreviewed which
// only the review flow may clear.
type EditPostRequest struct {
	Draft                 *bool       `json:"draft"`
	Status                *string     `json:"status"`
	OnlyVisibleToLoggedIn *bool       `json:"onlyVisibleToLoggedIn"`
	Unlisted              *bool       `json:"unlisted"`
	BannedUserIDs         []uuid.UUID `json:"bannedUserIds"`
}

func (r EditPostRequest) Changes() world.Changes {
	changes := world.Changes{}
	if r.Draft != nil {
		changes["draft"] = *r.Draft
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	if r.OnlyVisibleToLoggedIn != nil {
		changes["onlyVisibleToLoggedIn"] = *r.OnlyVisibleToLoggedIn
	}
	if r.Unlisted != nil {
		changes["unlisted"] = *r.Unlisted
	}
	if r.BannedUserIDs != nil {
		changes["bannedUserIds"] = r.BannedUserIDs
	}
	return changes
}
