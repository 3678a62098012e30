package tripbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTrip_DayAlignment(t *testing.T) {
	trip := newTestTrip(t)
	if got := trip.Duration(); got != 3 {
		t.Fatalf("Duration() = %d, want 3", got)
	}
	if len(trip.Itinerary) != 3 {
		t.Fatalf("itinerary has %d days, want 3", len(trip.Itinerary))
	}
	for i, day := range trip.Itinerary {
		if want := MustParse("2026-04-01").Add(i); day.Date != want {
			t.Errorf("day %d dated %s, want %s", i, day.Date, want)
		}
	}
	if err := trip.CheckItinerary(); err != nil {
		t.Errorf("CheckItinerary() error = %v", err)
	}
}

func TestNewTrip_SwapsReversedDates(t *testing.T) {
	trip, err := NewTrip("Kyoto", MustParse("2026-04-03"), MustParse("2026-04-01"),
		"JPY", "TWD", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("NewTrip() error = %v", err)
	}
	if trip.StartDate != MustParse("2026-04-01") || trip.EndDate != MustParse("2026-04-03") {
		t.Errorf("dates = %s/%s, want swapped into order", trip.StartDate, trip.EndDate)
	}
}

func TestNewTrip_Validation(t *testing.T) {
	if _, err := NewTrip("", MustParse("2026-04-01"), MustParse("2026-04-03"), "JPY", "TWD", decimal.Zero); err == nil {
		t.Errorf("NewTrip() without destination expected an error")
	}
	if _, err := NewTrip("Tokyo", Date{}, MustParse("2026-04-03"), "JPY", "TWD", decimal.Zero); err == nil {
		t.Errorf("NewTrip() without start date expected an error")
	}
}

func TestCheckItinerary_Misaligned(t *testing.T) {
	trip := newTestTrip(t)
	trip.Itinerary[1].Date = MustParse("2026-04-05")
	if err := trip.CheckItinerary(); err == nil {
		t.Errorf("CheckItinerary() expected an error for a misdated day")
	}
	trip = newTestTrip(t)
	trip.Itinerary = trip.Itinerary[:2]
	if err := trip.CheckItinerary(); err == nil {
		t.Errorf("CheckItinerary() expected an error for a missing day")
	}
}

func TestClone_Independence(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{
		Time: "09:00", Activity: "walk", Alternatives: []string{"bus"},
		Booking: &BookingDetails{Airline: "EVA"},
	})
	trip, err := trip.AddExpense(ExpenseDraft{Label: "coffee", BaseAmount: d("80")})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	trip.Weather = &Weather{Summary: "mild", Daily: []string{"sunny"}}

	c := trip.Clone()
	c.Itinerary[0].Items[0].Activity = "mutated"
	c.Itinerary[0].Items[0].Alternatives[0] = "mutated"
	c.Itinerary[0].Items[0].Booking.Airline = "mutated"
	c.Expenses[0].Label = "mutated"
	c.Weather.Summary = "mutated"

	if trip.Itinerary[0].Items[0].Activity != "walk" {
		t.Errorf("clone aliases the itinerary items")
	}
	if trip.Itinerary[0].Items[0].Alternatives[0] != "bus" {
		t.Errorf("clone aliases the alternatives")
	}
	if trip.Itinerary[0].Items[0].Booking.Airline != "EVA" {
		t.Errorf("clone aliases the booking details")
	}
	if trip.Expenses[0].Label != "coffee" {
		t.Errorf("clone aliases the ledger")
	}
	if trip.Weather.Summary != "mild" {
		t.Errorf("clone aliases the weather")
	}
}

func TestFindItem(t *testing.T) {
	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 2, ItemDraft{Time: "09:00", Activity: "last day walk"})
	id := trip.Itinerary[2].Items[0].ID

	day, idx := trip.FindItem(id)
	if day != 2 || idx != 0 {
		t.Errorf("FindItem() = %d, %d, want 2, 0", day, idx)
	}
	day, idx = trip.FindItem("missing")
	if day != -1 || idx != -1 {
		t.Errorf("FindItem(missing) = %d, %d, want -1, -1", day, idx)
	}
}

func TestChecklist(t *testing.T) {
	trip := newTestTrip(t)
	trip, err := trip.AddCheckItem("passport")
	if err != nil {
		t.Fatalf("AddCheckItem() error = %v", err)
	}
	trip, err = trip.AddCheckItem("charger")
	if err != nil {
		t.Fatalf("AddCheckItem() error = %v", err)
	}
	if _, err := trip.AddCheckItem(""); err == nil {
		t.Errorf("AddCheckItem(\"\") expected an error")
	}

	id := trip.Checklist[0].ID
	trip, err = trip.ToggleCheckItem(id)
	if err != nil {
		t.Fatalf("ToggleCheckItem() error = %v", err)
	}
	if !trip.Checklist[0].Done {
		t.Errorf("entry not toggled")
	}

	trip, err = trip.RemoveCheckItem(id)
	if err != nil {
		t.Fatalf("RemoveCheckItem() error = %v", err)
	}
	if len(trip.Checklist) != 1 || trip.Checklist[0].Text != "charger" {
		t.Errorf("checklist after remove = %v", trip.Checklist)
	}

	if _, err := trip.ToggleCheckItem("nope"); err == nil {
		t.Errorf("ToggleCheckItem(nope) expected an error")
	}
	if _, err := trip.RemoveCheckItem("nope"); err == nil {
		t.Errorf("RemoveCheckItem(nope) expected an error")
	}
}

func TestVouchers(t *testing.T) {
	trip := newTestTrip(t)
	trip, err := trip.AddVoucher("hotel", "data:application/pdf;base64,AAAA", "hotel.pdf")
	if err != nil {
		t.Fatalf("AddVoucher() error = %v", err)
	}
	if len(trip.Vouchers) != 1 || trip.Vouchers[0].CreatedAt.IsZero() {
		t.Fatalf("voucher not stored with a timestamp: %+v", trip.Vouchers)
	}

	if _, err := trip.AddVoucher("", "data", ""); err == nil {
		t.Errorf("AddVoucher() without title expected an error")
	}
	if _, err := trip.AddVoucher("x", "", ""); err == nil {
		t.Errorf("AddVoucher() without payload expected an error")
	}

	trip, err = trip.RemoveVoucher(trip.Vouchers[0].ID)
	if err != nil {
		t.Fatalf("RemoveVoucher() error = %v", err)
	}
	if len(trip.Vouchers) != 0 {
		t.Errorf("voucher not removed")
	}
	if _, err := trip.RemoveVoucher("nope"); err == nil {
		t.Errorf("RemoveVoucher(nope) expected an error")
	}
}
