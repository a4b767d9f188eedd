package world

import (
	"github.com/google/uuid"
)

// MinimumApprovalKarma is the karma threshold at which a new author's posts
// no longer need manual review.
const MinimumApprovalKarma = 10

type PostStatus string

const (
	StatusPending  PostStatus = "PENDING"
	StatusApproved PostStatus = "APPROVED"
	StatusRejected PostStatus = "REJECTED"
)

// UserFields and PostFields are the updatable-field whitelists for
// EditUser/EditPost changes. Callers filter input against these; keys
// outside them are ignored by the fold.
var (
	UserFields = []string{"isAdmin", "isMod", "karma", "reviewedByUserId"}
	PostFields = []string{"draft", "status", "authorIsUnreviewed", "onlyVisibleToLoggedIn", "unlisted", "bannedUserIds"}
)

type User struct {
	ID               uuid.UUID  `json:"id"`
	IsAdmin          bool       `json:"isAdmin"`
	IsMod            bool       `json:"isMod"`
	Karma            int        `json:"karma"`
	ReviewedByUserID *uuid.UUID `json:"reviewedByUserId"`
}

type Post struct {
	ID                    int64                  `json:"id"`
	AuthorID              uuid.UUID              `json:"authorId"`
	Draft                 bool                   `json:"draft"`
	Status                PostStatus             `json:"status"`
	AuthorIsUnreviewed    bool                   `json:"authorIsUnreviewed"`
	OnlyVisibleToLoggedIn bool                   `json:"onlyVisibleToLoggedIn"`
	Unlisted              bool                   `json:"unlisted"`
	BannedUserIDs         map[uuid.UUID]struct{} `json:"bannedUserIds"`
}

// State is a point-in-time snapshot. It is never stored: DeriveState
// recomputes it from the log, so two calls over the same events always
// return structurally equal snapshots.
type State struct {
	Users map[uuid.UUID]*User `json:"users"`
	Posts map[int64]*Post     `json:"posts"`
}

func initialState() State {
	return State{
		Users: make(map[uuid.UUID]*User),
		Posts: make(map[int64]*Post),
	}
}

// DeriveState folds an ordered event sequence into a snapshot. Updates to
// entities that do not exist are silent no-ops: a truncated or reordered
// replay must still fold without faulting.
func DeriveState(events []Event) State {
	state := initialState()

	for _, event := range events {
		switch event.Type {
		case UserCreated:
			if _, exists := state.Users[event.UserID]; exists {
				continue
			}
			state.Users[event.UserID] = &User{ID: event.UserID}
		case UserUpdated:
			user, exists := state.Users[event.UserID]
			if !exists {
				continue
			}
			applyUserChanges(user, event.Changes)
		case PostCreated:
			if _, exists := state.Posts[event.PostID]; exists {
				continue
			}
			state.Posts[event.PostID] = &Post{
				ID:                 event.PostID,
				AuthorID:           event.AuthorID,
				Draft:              true,
				Status:             StatusApproved,
				AuthorIsUnreviewed: event.AuthorIsUnreviewed,
				BannedUserIDs:      make(map[uuid.UUID]struct{}),
			}
		case PostUpdated:
			post, exists := state.Posts[event.PostID]
			if !exists {
				continue
			}
			applyPostChanges(post, event.Changes)
		}
	}

	return state
}

// Change values arrive either as the Go types the commands emit or as the
// generic types a jsonb round-trip through the event store produces
// (float64 numbers, string uuids). Both shapes must merge identically.
func applyUserChanges(user *User, changes Changes) {
	for field, value := range changes {
		switch field {
		case "isAdmin":
			if v, ok := value.(bool); ok {
				user.IsAdmin = v
			}
		case "isMod":
			if v, ok := value.(bool); ok {
				user.IsMod = v
			}
		case "karma":
			switch v := value.(type) {
			case int:
				user.Karma = v
			case int64:
				user.Karma = int(v)
			case float64:
				user.Karma = int(v)
			}
		case "reviewedByUserId":
			if id, ok := asUserID(value); ok {
				user.ReviewedByUserID = &id
			}
		}
	}
}

func applyPostChanges(post *Post, changes Changes) {
	for field, value := range changes {
		switch field {
		case "draft":
			if v, ok := value.(bool); ok {
				post.Draft = v
			}
		case "status":
			switch v := value.(type) {
			case PostStatus:
				post.Status = v
			case string:
				post.Status = PostStatus(v)
			}
		case "authorIsUnreviewed":
			if v, ok := value.(bool); ok {
				post.AuthorIsUnreviewed = v
			}
		case "onlyVisibleToLoggedIn":
			if v, ok := value.(bool); ok {
				post.OnlyVisibleToLoggedIn = v
			}
		case "unlisted":
			if v, ok := value.(bool); ok {
				post.Unlisted = v
			}
		case "bannedUserIds":
			banned := make(map[uuid.UUID]struct{})
			switch v := value.(type) {
			case []uuid.UUID:
				for _, id := range v {
					banned[id] = struct{}{}
				}
			case []string:
				for _, s := range v {
					if id, err := uuid.Parse(s); err == nil {
						banned[id] = struct{}{}
					}
				}
			case []interface{}:
				for _, entry := range v {
					if id, ok := asUserID(entry); ok {
						banned[id] = struct{}{}
					}
				}
			default:
				continue
			}
			post.BannedUserIDs = banned
		}
	}
}

func asUserID(value interface{}) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case *uuid.UUID:
		if v != nil {
			return *v, true
		}
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
