package world

// World owns the event log and an undo/redo cursor over it. Batches, not
// single events, are the undo unit, so multi-event commands like ReviewUser
// are always applied and reverted whole.
//
// A World is not safe for concurrent mutation; the embedding host must
// serialize Execute/Undo/Redo per instance. DeriveState-based reads are
// safe alongside each other.
type World struct {
	log     []Event
	batches []int
	redo    [][]Event
}

func NewWorld() *World {
	return &World{}
}

// LoadWorld rebuilds a world from a persisted log plus its batch lengths.
// The redo buffer is intentionally not persisted: an undone suffix does not
// survive a restart.
func LoadWorld(events []Event, batches []int) *World {
	w := &World{
		log:     append([]Event(nil), events...),
		batches: append([]int(nil), batches...),
	}
	return w
}

// Execute appends a successful result's events as one batch and discards
// any previously undone suffix. A failed result leaves the log untouched;
// surfacing its reason is the caller's job.
func (w *World) Execute(result Result) {
	if !result.OK || len(result.Events) == 0 {
		return
	}
	w.redo = nil
	w.log = append(w.log, result.Events...)
	w.batches = append(w.batches, len(result.Events))
}

// Undo moves the most recent batch into the redo buffer. A no-op at the
// start of history.
func (w *World) Undo() {
	if len(w.batches) == 0 {
		return
	}
	n := w.batches[len(w.batches)-1]
	w.batches = w.batches[:len(w.batches)-1]

	cut := len(w.log) - n
	batch := append([]Event(nil), w.log[cut:]...)
	w.log = w.log[:cut]
	w.redo = append(w.redo, batch)
}

// Redo re-appends the most recently undone batch. A no-op if nothing was
// undone, or if Execute ran since the last Undo (Execute clears the
// buffer). Events keep their original timestamps: redo restores history,
// it does not restamp it.
func (w *World) Redo() {
	if len(w.redo) == 0 {
		return
	}
	batch := w.redo[len(w.redo)-1]
	w.redo = w.redo[:len(w.redo)-1]
	w.log = append(w.log, batch...)
	w.batches = append(w.batches, len(batch))
}

// CurrentState re-derives the snapshot from the active log.
func (w *World) CurrentState() State {
	return DeriveState(w.log)
}

// Log returns a copy of the active log.
func (w *World) Log() []Event {
	return append([]Event(nil), w.log...)
}

func (w *World) LogLen() int {
	return len(w.log)
}

func (w *World) BatchCount() int {
	return len(w.batches)
}

func (w *World) CanUndo() bool {
	return len(w.batches) > 0
}

func (w *World) CanRedo() bool {
	return len(w.redo) > 0
}
