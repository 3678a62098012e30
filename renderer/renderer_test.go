package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tripbook/tripbook"
)

func testTrip(t *testing.T) tripbook.Trip {
	t.Helper()
	trip, err := tripbook.NewTrip("Tokyo",
		tripbook.MustParse("2026-04-01"), tripbook.MustParse("2026-04-03"),
		"JPY", "TWD", decimal.RequireFromString("0.21"))
	if err != nil {
		t.Fatalf("NewTrip() error = %v", err)
	}
	return trip
}

func TestTrips_MarksActive(t *testing.T) {
	first := testTrip(t)
	second := testTrip(t)
	out := Trips([]tripbook.Trip{first, second}, second.ID)
	if !strings.Contains(out, "| Destination |") {
		t.Errorf("missing table header:\n%s", out)
	}
	if !strings.Contains(out, "| * | Tokyo |") {
		t.Errorf("active trip not marked:\n%s", out)
	}
}

func TestDay_RendersItems(t *testing.T) {
	trip := testTrip(t)
	trip, err := trip.AddItem(0, tripbook.ItemDraft{
		Time: "09:00", EndTime: "10:30", Activity: "Tsukiji market",
		Location: "Chuo", Alternatives: []string{"Toyosu market"},
	})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	out := Day(trip, 0)
	for _, want := range []string{
		"## Day 1", "2026-04-01",
		"- [ ] **09:00–10:30 (1h30m)** Tsukiji market",
		"Chuo",
		"backup: Toyosu market",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Day() missing %q:\n%s", want, out)
		}
	}
}

func TestExpenses_Totals(t *testing.T) {
	trip := testTrip(t)
	trip.Budget = decimal.NewFromInt(1000)
	trip, err := trip.AddExpense(tripbook.ExpenseDraft{
		Label: "ramen", BaseAmount: decimal.NewFromInt(250),
		Category: tripbook.ExpenseFood, Split: tripbook.SplitMe,
	})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	out := Expenses(trip)
	for _, want := range []string{"ramen", "**Total spent**", "**Remaining**", "## By split", "## By category"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expenses() missing %q:\n%s", want, out)
		}
	}
}

func TestBookings_PerGuestShare(t *testing.T) {
	trip := testTrip(t)
	trip, _ = trip.SaveBooking(tripbook.MustParse("2026-04-01"), tripbook.ItineraryItem{
		Time: "15:00", Activity: "Shinjuku hotel", Category: tripbook.ItemAccommodation,
		Cost:    decimal.NewFromInt(3000),
		Booking: &tripbook.BookingDetails{CheckIn: "15:00", CheckOut: "11:00", Guests: 2},
	})
	out := Bookings("Accommodations", trip, trip.Accommodations())
	for _, want := range []string{"Shinjuku hotel", "check-in 15:00", "Per guest (2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Bookings() missing %q:\n%s", want, out)
		}
	}
}
