package world

import (
	"sort"

	"github.com/google/uuid"
)

// Result is the outcome of a command: either the events to append, or a
// human-readable rejection reason. Commands never touch the log themselves;
// the caller hands the result to World.Execute.
type Result struct {
	OK     bool    `json:"ok"`
	Reason string  `json:"reason,omitempty"`
	Events []Event `json:"events,omitempty"`
}

func accept(events ...Event) Result {
	return Result{OK: true, Events: events}
}

func reject(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// CreateUser validates a candidate user id against the given state.
func CreateUser(userID uuid.UUID, state State) Result {
	if _, exists := state.Users[userID]; exists {
		return reject("user already exists")
	}
	return accept(newUserCreated(userID))
}

// EditUser emits the requested changes untouched; merging is the fold's job.
func EditUser(userID uuid.UUID, changes Changes, state State) Result {
	if _, exists := state.Users[userID]; !exists {
		return reject("user not found")
	}
	return accept(newUserUpdated(userID, changes))
}

// CreatePost snapshots the author's trust at creation time. The flag is
// baked into the event on purpose: later karma or review changes must not
// silently rewrite already-created posts.
func CreatePost(postID int64, authorID uuid.UUID, state State) Result {
	author, exists := state.Users[authorID]
	if !exists {
		return reject("author not found")
	}
	authorIsUnreviewed := author.Karma < MinimumApprovalKarma && author.ReviewedByUserID == nil
	return accept(newPostCreated(postID, authorID, authorIsUnreviewed))
}

// EditPost performs no field-level validation; the effects of odd
// combinations are judged entirely by ViewPost.
func EditPost(postID int64, changes Changes, state State) Result {
	if _, exists := state.Posts[postID]; !exists {
		return reject("post not found")
	}
	return accept(newPostUpdated(postID, changes))
}

// ReviewUser marks a user as reviewed by a moderator and clears the
// unreviewed flag on every post the user authored so far. The returned
// batch is a single atomic unit: World.Execute appends it whole and
// undo/redo never splits it.
func ReviewUser(userID, moderatorID uuid.UUID, state State) Result {
	user, exists := state.Users[userID]
	if !exists {
		return reject("user not found")
	}
	if user.ReviewedByUserID != nil {
		return reject("user already reviewed")
	}

	events := []Event{newUserUpdated(userID, Changes{"reviewedByUserId": moderatorID})}

	postIDs := make([]int64, 0)
	for id, post := range state.Posts {
		if post.AuthorID == userID && post.AuthorIsUnreviewed {
			postIDs = append(postIDs, id)
		}
	}
	sort.Slice(postIDs, func(i, j int) bool { return postIDs[i] < postIDs[j] })
	for _, id := range postIDs {
		events = append(events, newPostUpdated(id, Changes{"authorIsUnreviewed": false}))
	}

	return accept(events...)
}
