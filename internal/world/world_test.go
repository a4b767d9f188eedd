package world

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExecute_FailedResultIsNoOp(t *testing.T) {
	w := NewWorld()
	alice := uuid.New()

	w.Execute(CreateUser(alice, w.CurrentState()))
	before := w.CurrentState()

	w.Execute(CreateUser(alice, w.CurrentState()))
	if w.LogLen() != 1 {
		t.Fatalf("log length = %d, want 1", w.LogLen())
	}
	if !reflect.DeepEqual(before, w.CurrentState()) {
		t.Fatal("a rejected command changed the state")
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	advance := stubClock(t)
	w := NewWorld()
	alice := uuid.New()

	w.Execute(CreateUser(alice, w.CurrentState()))
	advance(time.Minute)
	w.Execute(CreatePost(1, alice, w.CurrentState()))
	advance(time.Minute)
	w.Execute(EditPost(1, Changes{"draft": false}, w.CurrentState()))

	before := w.CurrentState()
	w.Undo()
	if w.CurrentState().Posts[1] == nil || !w.CurrentState().Posts[1].Draft {
		t.Fatal("undo did not revert the edit")
	}
	w.Redo()
	if !reflect.DeepEqual(before, w.CurrentState()) {
		t.Fatal("redo did not restore the exact pre-undo state")
	}
}

func TestRedo_PreservesTimestamps(t *testing.T) {
	advance := stubClock(t)
	w := NewWorld()
	alice := uuid.New()

	w.Execute(CreateUser(alice, w.CurrentState()))
	stamped := w.Log()[0].Timestamp

	advance(time.Hour)
	w.Undo()
	w.Redo()

	if got := w.Log()[0].Timestamp; !got.Equal(stamped) {
		t.Fatalf("timestamp = %s, want original %s", got, stamped)
	}
}

func TestUndo_AtStartOfHistoryIsNoOp(t *testing.T) {
	w := NewWorld()
	w.Undo()
	if w.LogLen() != 0 || w.CanRedo() {
		t.Fatal("undo on an empty world changed it")
	}
}

func TestRedo_WithoutUndoIsNoOp(t *testing.T) {
	w := NewWorld()
	alice := uuid.New()
	w.Execute(CreateUser(alice, w.CurrentState()))

	w.Redo()
	if w.LogLen() != 1 {
		t.Fatalf("log length = %d, want 1", w.LogLen())
	}
}

func TestExecute_ClearsRedoBuffer(t *testing.T) {
	w := NewWorld()
	alice := uuid.New()
	bob := uuid.New()

	w.Execute(CreateUser(alice, w.CurrentState()))
	w.Execute(CreatePost(1, alice, w.CurrentState()))
	w.Undo()
	w.Execute(CreateUser(bob, w.CurrentState()))

	w.Redo()
	if _, exists := w.CurrentState().Posts[1]; exists {
		t.Fatal("redo replayed a batch that a newer command should have discarded")
	}
}

func TestUndo_ReviewBatchIsAtomic(t *testing.T) {
	w := NewWorld()
	newbie := uuid.New()
	mod := uuid.New()

	w.Execute(CreateUser(newbie, w.CurrentState()))
	w.Execute(CreatePost(1, newbie, w.CurrentState()))
	w.Execute(CreatePost(2, newbie, w.CurrentState()))
	w.Execute(ReviewUser(newbie, mod, w.CurrentState()))

	state := w.CurrentState()
	if state.Users[newbie].ReviewedByUserID == nil {
		t.Fatal("review did not apply")
	}

	w.Undo()
	state = w.CurrentState()
	if state.Users[newbie].ReviewedByUserID != nil {
		t.Fatal("undo left the user reviewed")
	}
	if !state.Posts[1].AuthorIsUnreviewed || !state.Posts[2].AuthorIsUnreviewed {
		t.Fatal("undo split the review batch")
	}

	w.Redo()
	state = w.CurrentState()
	if state.Users[newbie].ReviewedByUserID == nil || state.Posts[1].AuthorIsUnreviewed || state.Posts[2].AuthorIsUnreviewed {
		t.Fatal("redo split the review batch")
	}
}

func TestLoadWorld_RestoresUndoGranularity(t *testing.T) {
	w := NewWorld()
	newbie := uuid.New()
	mod := uuid.New()

	w.Execute(CreateUser(newbie, w.CurrentState()))
	w.Execute(CreatePost(1, newbie, w.CurrentState()))
	w.Execute(ReviewUser(newbie, mod, w.CurrentState()))

	loaded := LoadWorld(w.Log(), []int{1, 1, 2})
	if !reflect.DeepEqual(w.CurrentState(), loaded.CurrentState()) {
		t.Fatal("loaded world derived a different state")
	}

	loaded.Undo()
	state := loaded.CurrentState()
	if _, exists := state.Posts[1]; !exists {
		t.Fatal("loaded world undid more than one batch")
	}
	if state.Users[newbie].ReviewedByUserID != nil || !state.Posts[1].AuthorIsUnreviewed {
		t.Fatal("loaded world undid something other than the review batch")
	}
}
