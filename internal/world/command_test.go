package world

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCreateUser_EmitsUserCreated(t *testing.T) {
	stubClock(t)
	alice := uuid.New()

	result := CreateUser(alice, initialState())
	if !result.OK {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}

	event := result.Events[0]
	if event.Type != UserCreated {
		t.Fatalf("event type = %s, want %s", event.Type, UserCreated)
	}
	if event.UserID != alice {
		t.Fatalf("user id = %s, want %s", event.UserID, alice)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("event was not timestamped")
	}
}

func TestCreateUser_RejectsDuplicate(t *testing.T) {
	alice := uuid.New()
	state := DeriveState([]Event{{Type: UserCreated, UserID: alice}})

	result := CreateUser(alice, state)
	if result.OK {
		t.Fatal("expected rejection for duplicate user")
	}
	if !strings.Contains(result.Reason, "already exists") {
		t.Fatalf("reason = %q, want it to mention already exists", result.Reason)
	}
	if len(result.Events) != 0 {
		t.Fatalf("rejection carries %d events", len(result.Events))
	}
}

func TestEditUser_RejectsMissingUser(t *testing.T) {
	result := EditUser(uuid.New(), Changes{"karma": 1}, initialState())
	if result.OK {
		t.Fatal("expected rejection for missing user")
	}
	if !strings.Contains(result.Reason, "not found") {
		t.Fatalf("reason = %q, want it to mention not found", result.Reason)
	}
}

func TestEditUser_CarriesChangesUntouched(t *testing.T) {
	stubClock(t)
	alice := uuid.New()
	state := DeriveState([]Event{{Type: UserCreated, UserID: alice}})

	changes := Changes{"karma": 50, "isMod": true}
	result := EditUser(alice, changes, state)
	if !result.OK {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if !reflect.DeepEqual(result.Events[0].Changes, changes) {
		t.Fatalf("changes were rewritten: %#v", result.Events[0].Changes)
	}
}

func TestCreatePost_RejectsMissingAuthor(t *testing.T) {
	result := CreatePost(1, uuid.New(), initialState())
	if result.OK {
		t.Fatal("expected rejection for missing author")
	}
	if !strings.Contains(result.Reason, "not found") {
		t.Fatalf("reason = %q, want it to mention not found", result.Reason)
	}
}

func TestCreatePost_AuthorTrustSnapshot(t *testing.T) {
	stubClock(t)
	mod := uuid.New()

	tests := []struct {
		name           string
		karma          int
		reviewedBy     *uuid.UUID
		wantUnreviewed bool
	}{
		{"fresh author", 0, nil, true},
		{"karma at threshold", MinimumApprovalKarma, nil, false},
		{"manually reviewed", 0, &mod, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author := uuid.New()
			events := []Event{
				{Type: UserCreated, UserID: author},
				{Type: UserUpdated, UserID: author, Changes: Changes{"karma": tt.karma}},
			}
			if tt.reviewedBy != nil {
				events = append(events, Event{Type: UserUpdated, UserID: author, Changes: Changes{"reviewedByUserId": *tt.reviewedBy}})
			}

			result := CreatePost(1, author, DeriveState(events))
			if !result.OK {
				t.Fatalf("expected success, got reason %q", result.Reason)
			}
			event := result.Events[0]
			if event.Type != PostCreated {
				t.Fatalf("event type = %s, want %s", event.Type, PostCreated)
			}
			if event.AuthorIsUnreviewed != tt.wantUnreviewed {
				t.Fatalf("authorIsUnreviewed = %v, want %v", event.AuthorIsUnreviewed, tt.wantUnreviewed)
			}
		})
	}
}

func TestCreatePost_SnapshotDoesNotTrackLaterKarma(t *testing.T) {
	author := uuid.New()
	state := DeriveState([]Event{{Type: UserCreated, UserID: author}})

	result := CreatePost(1, author, state)
	log := append([]Event{{Type: UserCreated, UserID: author}}, result.Events...)
	log = append(log, Event{Type: UserUpdated, UserID: author, Changes: Changes{"karma": MinimumApprovalKarma * 2}})

	post := DeriveState(log).Posts[1]
	if !post.AuthorIsUnreviewed {
		t.Fatal("later karma changes must not rewrite the creation-time snapshot")
	}
}

func TestEditPost_RejectsMissingPost(t *testing.T) {
	result := EditPost(99, Changes{"draft": false}, initialState())
	if result.OK {
		t.Fatal("expected rejection for missing post")
	}
	if !strings.Contains(result.Reason, "not found") {
		t.Fatalf("reason = %q, want it to mention not found", result.Reason)
	}
}

func TestReviewUser_EmitsAtomicBatch(t *testing.T) {
	stubClock(t)
	newbie := uuid.New()
	mod := uuid.New()
	other := uuid.New()

	log := []Event{
		{Type: UserCreated, UserID: newbie},
		{Type: UserCreated, UserID: other},
		{Type: PostCreated, PostID: 1, AuthorID: newbie, AuthorIsUnreviewed: true},
		{Type: PostCreated, PostID: 2, AuthorID: newbie, AuthorIsUnreviewed: true},
		{Type: PostCreated, PostID: 3, AuthorID: other, AuthorIsUnreviewed: true},
		{Type: PostCreated, PostID: 4, AuthorID: newbie, AuthorIsUnreviewed: false},
	}
	state := DeriveState(log)

	result := ReviewUser(newbie, mod, state)
	if !result.OK {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	// One user update plus one post update per unreviewed post of this author.
	if len(result.Events) != 3 {
		t.Fatalf("batch has %d events, want 3", len(result.Events))
	}
	if result.Events[0].Type != UserUpdated {
		t.Fatalf("first event = %s, want %s", result.Events[0].Type, UserUpdated)
	}

	after := DeriveState(append(log, result.Events...))
	reviewed := after.Users[newbie].ReviewedByUserID
	if reviewed == nil || *reviewed != mod {
		t.Fatalf("reviewedByUserId = %v, want %s", reviewed, mod)
	}
	if after.Posts[1].AuthorIsUnreviewed || after.Posts[2].AuthorIsUnreviewed {
		t.Fatal("author's unreviewed posts were not cleared")
	}
	if !after.Posts[3].AuthorIsUnreviewed {
		t.Fatal("another author's post was touched")
	}
}

func TestReviewUser_RejectsAlreadyReviewed(t *testing.T) {
	alice := uuid.New()
	firstMod := uuid.New()
	state := DeriveState([]Event{
		{Type: UserCreated, UserID: alice},
		{Type: UserUpdated, UserID: alice, Changes: Changes{"reviewedByUserId": firstMod}},
	})

	result := ReviewUser(alice, uuid.New(), state)
	if result.OK {
		t.Fatal("expected rejection for a second review")
	}
	if !strings.Contains(result.Reason, "already reviewed") {
		t.Fatalf("reason = %q, want it to mention already reviewed", result.Reason)
	}
}

func TestReviewUser_RejectsMissingUser(t *testing.T) {
	result := ReviewUser(uuid.New(), uuid.New(), initialState())
	if result.OK {
		t.Fatal("expected rejection for missing user")
	}
}
