package world

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates every kind of event the log can hold. DeriveState
// switches over all of them; adding a type here means teaching the fold
// about it.
type EventType string

const (
	UserCreated EventType = "USER_CREATED"
	UserUpdated EventType = "USER_UPDATED"
	PostCreated EventType = "POST_CREATED"
	PostUpdated EventType = "POST_UPDATED"
)

func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case UserCreated, UserUpdated, PostCreated, PostUpdated:
		return EventType(s), nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// Changes is a shallow patch keyed by the json field names listed in
// UserFields/PostFields. Unknown keys fold as no-ops.
type Changes map[string]interface{}

// Event is one immutable entry of the log. Exactly one of the id fields is
// meaningful per type; the rest stay zero.
type Event struct {
	Type               EventType `json:"type"`
	UserID             uuid.UUID `json:"user_id,omitempty"`
	PostID             int64     `json:"post_id,omitempty"`
	AuthorID           uuid.UUID `json:"author_id,omitempty"`
	AuthorIsUnreviewed bool      `json:"author_is_unreviewed,omitempty"`
	Changes            Changes   `json:"changes,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

// now stamps freshly emitted events; tests pin it where timestamp equality
// matters.
var now = time.Now

func newUserCreated(userID uuid.UUID) Event {
	return Event{Type: UserCreated, UserID: userID, Timestamp: now()}
}

func newUserUpdated(userID uuid.UUID, changes Changes) Event {
	return Event{Type: UserUpdated, UserID: userID, Changes: changes, Timestamp: now()}
}

func newPostCreated(postID int64, authorID uuid.UUID, authorIsUnreviewed bool) Event {
	return Event{
		Type:               PostCreated,
		PostID:             postID,
		AuthorID:           authorID,
		AuthorIsUnreviewed: authorIsUnreviewed,
		Timestamp:          now(),
	}
}

func newPostUpdated(postID int64, changes Changes) Event {
	return Event{Type: PostUpdated, PostID: postID, Changes: changes, Timestamp: now()}
}
