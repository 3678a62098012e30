package tripbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dayActivities(trip Trip, day int) []string {
	var names []string
	for _, item := range trip.Itinerary[day].Items {
		names = append(names, item.Activity)
	}
	return names
}

func TestAddItem_SortsDay(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "14:00", Activity: "Senso-ji"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "Tsukiji market"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "11:30", Activity: "Ueno park"})

	want := []string{"Tsukiji market", "Ueno park", "Senso-ji"}
	got := dayActivities(trip, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day order = %v, want %v", got, want)
		}
	}
}

func TestAddItem_Validation(t *testing.T) {
	trip := newTestTrip(t)
	tests := []struct {
		name  string
		day   int
		draft ItemDraft
	}{
		{"missing time", 0, ItemDraft{Activity: "x"}},
		{"blank time", 0, ItemDraft{Time: "   ", Activity: "x"}},
		{"missing activity", 0, ItemDraft{Time: "09:00"}},
		{"day below range", -1, ItemDraft{Time: "09:00", Activity: "x"}},
		{"day past range", 3, ItemDraft{Time: "09:00", Activity: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := trip.AddItem(tt.day, tt.draft)
			if err == nil {
				t.Fatalf("AddItem() expected an error")
			}
			if len(got.Itinerary[0].Items) != 0 {
				t.Errorf("failed AddItem() modified the trip")
			}
		})
	}
}

func TestAddItem_NegativeCostClamped(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "walk", Cost: d("-50")})
	if !trip.Itinerary[0].Items[0].Cost.IsZero() {
		t.Errorf("Cost = %s, want 0", trip.Itinerary[0].Items[0].Cost)
	}
	if len(trip.Expenses) != 0 {
		t.Errorf("a zero-cost item must not create an expense")
	}
}

func TestToggleItem_CompletedSortLast(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "first"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "12:00", Activity: "second"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "18:00", Activity: "third"})

	first := trip.Itinerary[0].Items[0]
	trip, err := trip.ToggleItem(0, first.ID)
	if err != nil {
		t.Fatalf("ToggleItem() error = %v", err)
	}

	want := []string{"second", "third", "first"}
	got := dayActivities(trip, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day order after toggle = %v, want %v", got, want)
		}
	}

	// Toggling back restores the chronological position.
	trip, err = trip.ToggleItem(0, first.ID)
	if err != nil {
		t.Fatalf("ToggleItem() error = %v", err)
	}
	if trip.Itinerary[0].Items[0].Activity != "first" {
		t.Errorf("day order after untoggle = %v", dayActivities(trip, 0))
	}
}

func TestItemExpenseLifecycle(t *testing.T) {
	trip := newTestTrip(t)

	// A positive cost creates a ledger record keyed by the item.
	trip = mustAddItem(t, trip, 1, ItemDraft{
		Time: "10:00", Activity: "Ghibli museum", Category: ItemAttraction, Cost: d("300"),
	})
	if len(trip.Expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(trip.Expenses))
	}
	item := trip.Itinerary[1].Items[0]
	e := trip.Expenses[0]
	if e.ItemID != item.ID {
		t.Errorf("expense.ItemID = %q, want %q", e.ItemID, item.ID)
	}
	if e.Label != "Ghibli museum" || !e.BaseAmount.Equal(d("300")) {
		t.Errorf("expense = %q %s, want Ghibli museum 300", e.Label, e.BaseAmount)
	}
	if e.Category != ExpenseTicket {
		t.Errorf("expense.Category = %q, want %q", e.Category, ExpenseTicket)
	}
	if e.Date != MustParse("2026-04-02") {
		t.Errorf("expense.Date = %s, want 2026-04-02", e.Date)
	}
	if e.Payment != PayCash || e.Split != SplitMe || !e.Rate.Equal(d("1")) {
		t.Errorf("expense defaults = %q/%q/%s, want cash/me/1", e.Payment, e.Split, e.Rate)
	}

	// Editing the cost overwrites the linked record, keeping its identity.
	cost := d("450")
	edited, err := trip.EditItem(1, item.ID, ItemPatch{Cost: &cost})
	if err != nil {
		t.Fatalf("EditItem() error = %v", err)
	}
	if len(edited.Expenses) != 1 {
		t.Fatalf("expenses after edit = %d, want 1", len(edited.Expenses))
	}
	if edited.Expenses[0].ID != e.ID {
		t.Errorf("edit replaced the expense identity")
	}
	if !edited.Expenses[0].BaseAmount.Equal(cost) {
		t.Errorf("expense.BaseAmount = %s, want %s", edited.Expenses[0].BaseAmount, cost)
	}

	// Dropping the cost to zero deletes the linked record.
	zero := decimal.Zero
	cleared, err := edited.EditItem(1, item.ID, ItemPatch{Cost: &zero})
	if err != nil {
		t.Fatalf("EditItem() error = %v", err)
	}
	if len(cleared.Expenses) != 0 {
		t.Errorf("expenses after zeroing cost = %d, want 0", len(cleared.Expenses))
	}
}

func TestDeleteItem_CascadesExpense(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "train", Category: ItemTransport, Cost: d("120")})
	trip, err := trip.AddExpense(ExpenseDraft{Label: "coffee", BaseAmount: d("80")})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	item := trip.Itinerary[0].Items[0]
	trip, err = trip.DeleteItem(0, item.ID)
	if err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if len(trip.Itinerary[0].Items) != 0 {
		t.Errorf("item not deleted")
	}
	if len(trip.Expenses) != 1 || trip.Expenses[0].Label != "coffee" {
		t.Errorf("cascade deleted the wrong records: %v", trip.Expenses)
	}
}

func TestDeleteExpense_KeepsItem(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "train", Cost: d("120")})

	trip, err := trip.DeleteExpense(trip.Expenses[0].ID)
	if err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if len(trip.Expenses) != 0 {
		t.Errorf("expense not deleted")
	}
	if len(trip.Itinerary[0].Items) != 1 {
		t.Errorf("deleting the expense must not touch the item")
	}
}

func TestReorderItems_NoResort(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "a"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "12:00", Activity: "b"})
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "18:00", Activity: "c"})

	trip, err := trip.ReorderItems(0, 2, 0)
	if err != nil {
		t.Fatalf("ReorderItems() error = %v", err)
	}
	want := []string{"c", "a", "b"}
	got := dayActivities(trip, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after move = %v, want %v", got, want)
		}
	}

	if _, err := trip.ReorderItems(0, 0, 3); err == nil {
		t.Errorf("ReorderItems() out of range expected an error")
	}
}

func TestEditItem_PreservesUnsetFields(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{
		Time: "09:00", EndTime: "10:30", Activity: "museum", Location: "Ueno",
	})
	item := trip.Itinerary[0].Items[0]

	where := "Roppongi"
	trip, err := trip.EditItem(0, item.ID, ItemPatch{Location: &where})
	if err != nil {
		t.Fatalf("EditItem() error = %v", err)
	}
	got := trip.Itinerary[0].Items[0]
	if got.Location != "Roppongi" {
		t.Errorf("Location = %q, want Roppongi", got.Location)
	}
	if got.Time != "09:00" || got.EndTime != "10:30" || got.Activity != "museum" {
		t.Errorf("unset fields changed: %+v", got)
	}
}

func TestLegDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
		err        bool
	}{
		{"09:00", "10:30", "1h30m", false},
		{"09:00", "11:00", "2h", false},
		{"09:00", "09:45", "45m", false},
		{"09:00", "09:00", "0m", false},
		{"23:30", "01:15", "1h45m", false}, // wraps past midnight
		{"9am", "10:00", "", true},
		{"25:00", "10:00", "", true},
		{"09:61", "10:00", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got, err := LegDuration(tt.start, tt.end)
			if (err != nil) != tt.err {
				t.Fatalf("LegDuration(%q, %q) error = %v, wantErr %v", tt.start, tt.end, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("LegDuration(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
