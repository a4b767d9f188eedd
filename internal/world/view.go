package world

import (
	"github.com/google/uuid"
)

// Decision is the outcome of a visibility query. A denial is a normal
// result, not an error; Reason is meant for logs and diagnostics.
type Decision struct {
	CanView bool   `json:"canView"`
	Reason  string `json:"reason,omitempty"`
}

func allowView() Decision {
	return Decision{CanView: true}
}

func denyView(reason string) Decision {
	return Decision{CanView: false, Reason: reason}
}

// ViewPost decides whether viewerID may see postID. A nil viewerID means a
// logged-out reader. Rules run in order and the first applicable denial
// wins; the per-post ban is unconditional, while the draft and unreviewed
// rules are bypassed for the author, admins and mods.
func ViewPost(viewerID *uuid.UUID, postID int64, state State) Decision {
	post, exists := state.Posts[postID]
	if !exists {
		return denyView("post does not exist")
	}

	if viewerID != nil {
		if _, banned := post.BannedUserIDs[*viewerID]; banned {
			return denyView("viewer is banned from this post")
		}
	}

	if post.Draft && !isAuthorOrStaff(viewerID, post, state) {
		return denyView("post is a draft")
	}

	if post.AuthorIsUnreviewed && !isAuthorOrStaff(viewerID, post, state) {
		return denyView("post author is unreviewed")
	}

	if post.OnlyVisibleToLoggedIn && viewerID == nil {
		return denyView("post is only visible to logged-in users")
	}

	// Unlisted only hides the post from listings; a direct link still works.
	return allowView()
}

func isAuthorOrStaff(viewerID *uuid.UUID, post *Post, state State) bool {
	if viewerID == nil {
		return false
	}
	if *viewerID == post.AuthorID {
		return true
	}
	viewer, exists := state.Users[*viewerID]
	if !exists {
		return false
	}
	return viewer.IsAdmin || viewer.IsMod
}
