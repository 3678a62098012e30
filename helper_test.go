package tripbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// newTestTrip returns a three-day trip to Tokyo with a JPY ledger converting
// to TWD at 0.21.
func newTestTrip(t *testing.T) Trip {
	t.Helper()
	trip, err := NewTrip("Tokyo", MustParse("2026-04-01"), MustParse("2026-04-03"),
		"JPY", "TWD", decimal.RequireFromString("0.21"))
	if err != nil {
		t.Fatalf("NewTrip() error = %v", err)
	}
	return trip
}

// mustAddItem adds an itinerary item or fails the test.
func mustAddItem(t *testing.T, trip Trip, day int, draft ItemDraft) Trip {
	t.Helper()
	n, err := trip.AddItem(day, draft)
	if err != nil {
		t.Fatalf("AddItem(%d, %q) error = %v", day, draft.Activity, err)
	}
	return n
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
