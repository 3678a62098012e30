package tripbook

// History is a linear undo/redo stack of whole-ledger snapshots with a
// pointer into it. Snapshot zero is the ledger as it was before the first
// recorded mutation, so undoing everything restores the original state.
//
// Full snapshots were kept over a command log: the ledger is small and the
// document model replaces whole values everywhere else.
type History struct {
	Snapshots [][]Expense `json:"snapshots"`
	Pos       int         `json:"pos"`
}

// NewHistory creates a history whose first snapshot is the given ledger.
func NewHistory(expenses []Expense) *History {
	return &History{
		Snapshots: [][]Expense{cloneExpenses(expenses)},
		Pos:       0,
	}
}

// Push records the ledger state after a mutation: any redo branch beyond the
// pointer is truncated, the snapshot appended, and the pointer advanced.
func (h *History) Push(expenses []Expense) {
	h.Snapshots = append(h.Snapshots[:h.Pos+1], cloneExpenses(expenses))
	h.Pos = len(h.Snapshots) - 1
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.Pos > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.Pos < len(h.Snapshots)-1 }

// Undo moves the pointer back one and returns that snapshot. At the boundary
// it is a no-op returning false; the history array is never altered.
func (h *History) Undo() ([]Expense, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.Pos--
	return cloneExpenses(h.Snapshots[h.Pos]), true
}

// Redo moves the pointer forward one and returns that snapshot. At the
// boundary it is a no-op returning false.
func (h *History) Redo() ([]Expense, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.Pos++
	return cloneExpenses(h.Snapshots[h.Pos]), true
}

func (h *History) clone() *History {
	c := &History{Snapshots: make([][]Expense, len(h.Snapshots)), Pos: h.Pos}
	for i, s := range h.Snapshots {
		c.Snapshots[i] = cloneExpenses(s)
	}
	return c
}

func cloneExpenses(expenses []Expense) []Expense {
	return append([]Expense{}, expenses...)
}
