package tripbook

import (
	"github.com/shopspring/decimal"
)

// The booking projection. Flights and accommodations are not stored
// separately: they are itinerary items of the matching category scattered
// across days, and the owning day is reconstructed by scan, never stored on
// the item.

// BookingCard is a derived view of one flight or accommodation item,
// carrying the date of the day that holds it.
type BookingCard struct {
	Date Date
	Item ItineraryItem
}

// Bookings flat-maps every day's items of the given category into cards.
func (t Trip) Bookings(category ItemCategory) []BookingCard {
	var cards []BookingCard
	for _, day := range t.Itinerary {
		for _, item := range day.Items {
			if item.Category == category {
				cards = append(cards, BookingCard{Date: day.Date, Item: item.clone()})
			}
		}
	}
	return cards
}

// Flights returns the flight booking cards across all days.
func (t Trip) Flights() []BookingCard { return t.Bookings(ItemFlight) }

// Accommodations returns the accommodation booking cards across all days.
func (t Trip) Accommodations() []BookingCard { return t.Bookings(ItemAccommodation) }

// SaveBooking inserts or re-dates a booking-shaped item. Any existing item
// with the same identity is first removed from every day (the editor does
// not track which day held it), then the item is appended to the day
// matching the target date and that day is re-sorted. A target date outside
// the trip's range falls back to day 0; the false return is the caller's cue
// to surface a warning.
func (t Trip) SaveBooking(target Date, item ItineraryItem) (Trip, bool) {
	n := t.Clone()
	if item.ID == "" {
		item.ID = NewID()
	}
	for i := range n.Itinerary {
		items := n.Itinerary[i].Items
		for j, existing := range items {
			if existing.ID == item.ID {
				n.Itinerary[i].Items = append(items[:j], items[j+1:]...)
				break
			}
		}
	}

	day, inRange := 0, false
	for i, d := range n.Itinerary {
		if d.Date == target {
			day, inRange = i, true
			break
		}
	}
	if !inRange {
		Log.Warnw("booking date outside trip range, inserting into first day",
			"trip", n.ID, "date", target.String())
	}

	n.Itinerary[day].Items = append(n.Itinerary[day].Items, item.clone())
	sortDay(&n.Itinerary[day])
	n.syncItemExpense(day, item)
	return n, inRange
}

// PerGuestShare computes the displayed per-guest share of an accommodation
// cost. Guest counts below one are clamped to one. Purely a view
// computation; neither the expense nor the item's cost changes.
func PerGuestShare(total decimal.Decimal, guests int) decimal.Decimal {
	if guests < 1 {
		guests = 1
	}
	return total.Div(decimal.NewFromInt(int64(guests))).Round(0)
}

// DefaultGuests returns the guest count a booking's split calculator starts
// from: the stored guest count, or 2 when the booking has none.
func DefaultGuests(item ItineraryItem) int {
	if item.Booking != nil && item.Booking.Guests > 0 {
		return item.Booking.Guests
	}
	return 2
}
