package tripbook

import "testing"

func ledger(labels ...string) []Expense {
	var expenses []Expense
	for _, l := range labels {
		expenses = append(expenses, Expense{ID: NewID(), Label: l})
	}
	return expenses
}

func labels(expenses []Expense) []string {
	var out []string
	for _, e := range expenses {
		out = append(out, e.Label)
	}
	return out
}

func TestHistory_PushTruncatesRedoBranch(t *testing.T) {
	h := NewHistory(nil)
	h.Push(ledger("a"))
	h.Push(ledger("a", "b"))

	if _, ok := h.Undo(); !ok {
		t.Fatalf("Undo() = false")
	}
	h.Push(ledger("a", "c"))

	if h.CanRedo() {
		t.Errorf("CanRedo() after push = true, want the branch truncated")
	}
	if len(h.Snapshots) != 3 {
		t.Errorf("snapshots = %d, want 3", len(h.Snapshots))
	}
	got, ok := h.Undo()
	if !ok {
		t.Fatalf("Undo() = false")
	}
	if len(got) != 1 || got[0].Label != "a" {
		t.Errorf("snapshot below the new branch = %v, want [a]", labels(got))
	}
}

func TestHistory_SnapshotsAreIndependent(t *testing.T) {
	initial := ledger("a")
	h := NewHistory(initial)

	// Mutating the caller's slice must not leak into the stored snapshot.
	initial[0].Label = "mutated"
	snapshot := h.Snapshots[0]
	if snapshot[0].Label != "a" {
		t.Errorf("stored snapshot aliases the caller's slice")
	}

	// Undo results are copies too.
	h.Push(ledger("a", "b"))
	got, _ := h.Undo()
	got[0].Label = "mutated"
	if h.Snapshots[0][0].Label != "a" {
		t.Errorf("Undo() result aliases the stored snapshot")
	}
}

func TestHistory_Clone(t *testing.T) {
	h := NewHistory(nil)
	h.Push(ledger("a"))

	c := h.clone()
	c.Push(ledger("a", "b"))

	if len(h.Snapshots) != 2 {
		t.Errorf("mutating the clone changed the original: %d snapshots", len(h.Snapshots))
	}
	if h.Pos != 1 || c.Pos != 2 {
		t.Errorf("pointers = %d/%d, want 1/2", h.Pos, c.Pos)
	}
}
