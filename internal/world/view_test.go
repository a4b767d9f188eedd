package world

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

type viewFixture struct {
	author uuid.UUID
	admin  uuid.UUID
	mod    uuid.UUID
	reader uuid.UUID
	banned uuid.UUID
	log    []Event
}

func newViewFixture() viewFixture {
	f := viewFixture{
		author: uuid.New(),
		admin:  uuid.New(),
		mod:    uuid.New(),
		reader: uuid.New(),
		banned: uuid.New(),
	}
	f.log = []Event{
		{Type: UserCreated, UserID: f.author},
		{Type: UserCreated, UserID: f.admin},
		{Type: UserUpdated, UserID: f.admin, Changes: Changes{"isAdmin": true}},
		{Type: UserCreated, UserID: f.mod},
		{Type: UserUpdated, UserID: f.mod, Changes: Changes{"isMod": true}},
		{Type: UserCreated, UserID: f.reader},
		{Type: UserCreated, UserID: f.banned},
	}
	return f
}

func (f viewFixture) state(postEvents ...Event) State {
	return DeriveState(append(append([]Event(nil), f.log...), postEvents...))
}

func assertDenied(t *testing.T, decision Decision, fragment string) {
	t.Helper()
	if decision.CanView {
		t.Fatal("expected the view to be denied")
	}
	if !strings.Contains(decision.Reason, fragment) {
		t.Fatalf("reason = %q, want it to contain %q", decision.Reason, fragment)
	}
}

func assertAllowed(t *testing.T, decision Decision) {
	t.Helper()
	if !decision.CanView {
		t.Fatalf("expected the view to be allowed, got reason %q", decision.Reason)
	}
}

func TestViewPost_MissingPost(t *testing.T) {
	f := newViewFixture()
	assertDenied(t, ViewPost(&f.reader, 404, f.state()), "does not exist")
}

func TestViewPost_BannedViewer(t *testing.T) {
	f := newViewFixture()
	state := f.state(
		Event{Type: PostCreated, PostID: 1, AuthorID: f.author},
		Event{Type: PostUpdated, PostID: 1, Changes: Changes{"draft": false, "bannedUserIds": []uuid.UUID{f.banned}}},
	)

	assertDenied(t, ViewPost(&f.banned, 1, state), "banned")
	assertAllowed(t, ViewPost(&f.reader, 1, state))
	assertAllowed(t, ViewPost(nil, 1, state))
	assertAllowed(t, ViewPost(&f.author, 1, state))
}

func TestViewPost_BanOverridesEveryRole(t *testing.T) {
	f := newViewFixture()
	state := f.state(
		Event{Type: PostCreated, PostID: 1, AuthorID: f.author},
		Event{Type: PostUpdated, PostID: 1, Changes: Changes{"draft": false, "bannedUserIds": []uuid.UUID{f.admin, f.mod}}},
	)

	assertDenied(t, ViewPost(&f.admin, 1, state), "banned")
	assertDenied(t, ViewPost(&f.mod, 1, state), "banned")
}

func TestViewPost_Draft(t *testing.T) {
	f := newViewFixture()
	state := f.state(Event{Type: PostCreated, PostID: 1, AuthorID: f.author})

	assertAllowed(t, ViewPost(&f.author, 1, state))
	assertAllowed(t, ViewPost(&f.admin, 1, state))
	assertAllowed(t, ViewPost(&f.mod, 1, state))
	assertDenied(t, ViewPost(&f.reader, 1, state), "draft")
	assertDenied(t, ViewPost(nil, 1, state), "draft")
}

func TestViewPost_UnreviewedAuthor(t *testing.T) {
	f := newViewFixture()
	state := f.state(
		Event{Type: PostCreated, PostID: 1, AuthorID: f.author, AuthorIsUnreviewed: true},
		Event{Type: PostUpdated, PostID: 1, Changes: Changes{"draft": false}},
	)

	assertAllowed(t, ViewPost(&f.author, 1, state))
	assertAllowed(t, ViewPost(&f.admin, 1, state))
	assertAllowed(t, ViewPost(&f.mod, 1, state))
	assertDenied(t, ViewPost(&f.reader, 1, state), "unreviewed")
}

func TestViewPost_LoggedInOnly(t *testing.T) {
	f := newViewFixture()
	state := f.state(
		Event{Type: PostCreated, PostID: 1, AuthorID: f.author},
		Event{Type: PostUpdated, PostID: 1, Changes: Changes{"draft": false, "onlyVisibleToLoggedIn": true}},
	)

	assertDenied(t, ViewPost(nil, 1, state), "logged-in")
	assertAllowed(t, ViewPost(&f.reader, 1, state))
}

func TestViewPost_UnlistedDoesNotBlockDirectView(t *testing.T) {
	f := newViewFixture()
	state := f.state(
		Event{Type: PostCreated, PostID: 1, AuthorID: f.author},
		Event{Type: PostUpdated, PostID: 1, Changes: Changes{"draft": false, "unlisted": true}},
	)

	assertAllowed(t, ViewPost(nil, 1, state))
	assertAllowed(t, ViewPost(&f.reader, 1, state))
}

func TestViewPost_DraftDeniedBeforeUnreviewed(t *testing.T) {
	f := newViewFixture()
	state := f.state(Event{Type: PostCreated, PostID: 1, AuthorID: f.author, AuthorIsUnreviewed: true})

	assertDenied(t, ViewPost(&f.reader, 1, state), "draft")
}
