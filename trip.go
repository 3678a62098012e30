package tripbook

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trip is the root document aggregating all data for one travel plan.
//
// Every mutation takes a Trip by value and returns a new one; nested slices
// are deep-copied first so no caller ever observes a partially applied
// change. The store replaces the whole document on save.
type Trip struct {
	ID           string          `json:"id"`
	Destination  string          `json:"destination"`
	StartDate    Date            `json:"startDate"`
	EndDate      Date            `json:"endDate"`
	Currency     string          `json:"currency"`     // destination (foreign) currency code
	BaseCurrency string          `json:"baseCurrency"` // traveler's home currency, used for all aggregates
	Rate         decimal.Decimal `json:"rate"`         // foreign x rate = base
	Budget       decimal.Decimal `json:"budget"`       // total budget in base currency
	Budgets      []Budget        `json:"budgets,omitempty"`
	Expenses     []Expense       `json:"expenses,omitempty"`
	Itinerary    []DayPlan       `json:"itinerary"`
	Checklist    []ChecklistItem `json:"checklist,omitempty"`
	Weather      *Weather        `json:"weather,omitempty"`
	Emergency    *EmergencyInfo  `json:"emergency,omitempty"`
	Tips         []string        `json:"tips,omitempty"`
	Vouchers     []Voucher       `json:"vouchers,omitempty"`
	Memo         string          `json:"memo,omitempty"`
	Guide        string          `json:"guide,omitempty"` // markdown destination guide

	// History holds the expense undo/redo snapshots. It is auxiliary state:
	// both codecs strip it before serializing for exchange.
	History *History `json:"history,omitempty"`
}

// DayPlan is one calendar day's ordered itinerary.
type DayPlan struct {
	Date  Date            `json:"date"`
	Items []ItineraryItem `json:"items"`
}

// ItineraryItem is a single scheduled activity or booking within a day.
type ItineraryItem struct {
	ID           string          `json:"id"`
	Time         string          `json:"time"` // start time, zero-padded HH:MM
	EndTime      string          `json:"endTime,omitempty"`
	Activity     string          `json:"activity"`
	Location     string          `json:"location,omitempty"`
	Category     ItemCategory    `json:"category,omitempty"`
	Cost         decimal.Decimal `json:"cost"` // base currency, drives the auto-expense
	Important    bool            `json:"important,omitempty"`
	Done         bool            `json:"done,omitempty"`
	Alternatives []string        `json:"alternatives,omitempty"`
	BookingImage string          `json:"bookingImage,omitempty"` // data-URL attachment
	TravelTime   string          `json:"travelTime,omitempty"`   // to the next item
	TravelMode   string          `json:"travelMode,omitempty"`
	Booking      *BookingDetails `json:"booking,omitempty"`
}

// BookingDetails carries the structured fields of a flight or accommodation
// booking. Flight fields and stay fields are never both set.
type BookingDetails struct {
	Airline      string `json:"airline,omitempty"`
	FlightNumber string `json:"flightNumber,omitempty"`
	Terminal     string `json:"terminal,omitempty"`
	Gate         string `json:"gate,omitempty"`
	Seat         string `json:"seat,omitempty"`

	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
	Guests   int    `json:"guests,omitempty"`
}

// Expense is a ledger record of money spent. A non-empty ItemID marks the
// record as derived from an itinerary item; the reference is weak, deleting
// the expense never touches the item.
type Expense struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"itemId,omitempty"`
	Label         string          `json:"label"`
	ForeignAmount decimal.Decimal `json:"foreignAmount"`
	BaseAmount    decimal.Decimal `json:"baseAmount"` // authoritative amount for all aggregates
	Rate          decimal.Decimal `json:"rate"`       // snapshot, foreign x rate = base
	Currency      string          `json:"currency"`
	Category      ExpenseCategory `json:"category"`
	Payment       PaymentMethod   `json:"payment"`
	Split         Split           `json:"split"`
	Photo         string          `json:"photo,omitempty"` // data-URL attachment
	Date          Date            `json:"date"`
}

// Budget allocates a base-currency amount to one expense category.
// A trip holds at most one Budget per category.
type Budget struct {
	ID       string          `json:"id"`
	Category ExpenseCategory `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ChecklistItem is one entry of the trip's packing/preparation checklist.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done,omitempty"`
}

// Voucher stores an opaque attachment (image or PDF data-URL) independent of
// the itinerary and expenses.
type Voucher struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Data      string    `json:"data"`
	Filename  string    `json:"filename,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Weather is the optional destination weather summary.
type Weather struct {
	Summary string   `json:"summary"`
	Daily   []string `json:"daily,omitempty"` // index-aligned to the itinerary days
}

// EmergencyInfo holds the destination's emergency contact numbers.
type EmergencyInfo struct {
	Police    string `json:"police,omitempty"`
	Ambulance string `json:"ambulance,omitempty"`
	Embassy   string `json:"embassy,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// NewTrip creates a trip for the inclusive date range, with one empty DayPlan
// per calendar day. The day count is fixed at creation.
func NewTrip(destination string, from, to Date, currency, baseCurrency string, rate decimal.Decimal) (Trip, error) {
	if destination == "" {
		return Trip{}, fmt.Errorf("destination is required")
	}
	if from.IsZero() || to.IsZero() {
		return Trip{}, fmt.Errorf("start and end dates are required")
	}
	r := NewRange(from, to)
	t := Trip{
		ID:           NewID(),
		Destination:  destination,
		StartDate:    r.From,
		EndDate:      r.To,
		Currency:     currency,
		BaseCurrency: baseCurrency,
		Rate:         rate,
		Itinerary:    make([]DayPlan, 0, r.Duration()),
		History:      NewHistory(nil),
	}
	for d := range r.Days() {
		t.Itinerary = append(t.Itinerary, DayPlan{Date: d, Items: []ItineraryItem{}})
	}
	return t, nil
}

// Range returns the trip's inclusive date range.
func (t Trip) Range() Range { return NewRange(t.StartDate, t.EndDate) }

// Duration returns the inclusive day count of the trip.
func (t Trip) Duration() int { return t.Range().Duration() }

// CheckItinerary verifies the itinerary shape invariant: one DayPlan per
// calendar day, index-aligned to the day offset from StartDate.
func (t Trip) CheckItinerary() error {
	if len(t.Itinerary) != t.Duration() {
		return fmt.Errorf("itinerary has %d days, want %d", len(t.Itinerary), t.Duration())
	}
	for i, day := range t.Itinerary {
		if want := t.StartDate.Add(i); day.Date != want {
			return fmt.Errorf("itinerary day %d is dated %s, want %s", i, day.Date, want)
		}
	}
	return nil
}

// Clone returns a deep copy of the trip. All mutations start from a clone so
// the previous document is never aliased.
func (t Trip) Clone() Trip {
	c := t
	c.Budgets = append([]Budget(nil), t.Budgets...)
	c.Expenses = append([]Expense(nil), t.Expenses...)
	c.Checklist = append([]ChecklistItem(nil), t.Checklist...)
	c.Tips = append([]string(nil), t.Tips...)
	c.Vouchers = append([]Voucher(nil), t.Vouchers...)
	c.Itinerary = make([]DayPlan, len(t.Itinerary))
	for i, day := range t.Itinerary {
		items := make([]ItineraryItem, len(day.Items))
		for j, item := range day.Items {
			items[j] = item.clone()
		}
		c.Itinerary[i] = DayPlan{Date: day.Date, Items: items}
	}
	if t.Weather != nil {
		w := *t.Weather
		w.Daily = append([]string(nil), t.Weather.Daily...)
		c.Weather = &w
	}
	if t.Emergency != nil {
		e := *t.Emergency
		c.Emergency = &e
	}
	if t.History != nil {
		c.History = t.History.clone()
	}
	return c
}

func (it ItineraryItem) clone() ItineraryItem {
	c := it
	c.Alternatives = append([]string(nil), it.Alternatives...)
	if it.Booking != nil {
		b := *it.Booking
		c.Booking = &b
	}
	return c
}

// FindItem searches all days for an item by identity. It returns the day
// index and item index, or -1, -1 when not found.
func (t Trip) FindItem(id string) (day, index int) {
	for i, d := range t.Itinerary {
		for j, item := range d.Items {
			if item.ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

// SetBudget allocates a base-currency amount to a category, replacing any
// existing allocation for the same category (find-or-append).
func (t Trip) SetBudget(category ExpenseCategory, amount decimal.Decimal) Trip {
	n := t.Clone()
	for i, b := range n.Budgets {
		if b.Category == category {
			n.Budgets[i].Amount = amount
			return n
		}
	}
	n.Budgets = append(n.Budgets, Budget{ID: NewID(), Category: category, Amount: amount})
	return n
}

// AddCheckItem appends a checklist entry.
func (t Trip) AddCheckItem(text string) (Trip, error) {
	if text == "" {
		return t, fmt.Errorf("checklist text is required")
	}
	n := t.Clone()
	n.Checklist = append(n.Checklist, ChecklistItem{ID: NewID(), Text: text})
	return n, nil
}

// ToggleCheckItem flips the done flag of a checklist entry.
func (t Trip) ToggleCheckItem(id string) (Trip, error) {
	n := t.Clone()
	for i, c := range n.Checklist {
		if c.ID == id {
			n.Checklist[i].Done = !c.Done
			return n, nil
		}
	}
	return t, fmt.Errorf("checklist item %q not found", id)
}

// RemoveCheckItem deletes a checklist entry by identity.
func (t Trip) RemoveCheckItem(id string) (Trip, error) {
	n := t.Clone()
	for i, c := range n.Checklist {
		if c.ID == id {
			n.Checklist = append(n.Checklist[:i], n.Checklist[i+1:]...)
			return n, nil
		}
	}
	return t, fmt.Errorf("checklist item %q not found", id)
}

// AddVoucher stores an attachment payload with the trip.
func (t Trip) AddVoucher(title, data, filename string) (Trip, error) {
	if title == "" {
		return t, fmt.Errorf("voucher title is required")
	}
	if data == "" {
		return t, fmt.Errorf("voucher payload is required")
	}
	n := t.Clone()
	n.Vouchers = append(n.Vouchers, Voucher{
		ID:        NewID(),
		Title:     title,
		Data:      data,
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	})
	return n, nil
}

// RemoveVoucher deletes a voucher by identity.
func (t Trip) RemoveVoucher(id string) (Trip, error) {
	n := t.Clone()
	for i, v := range n.Vouchers {
		if v.ID == id {
			n.Vouchers = append(n.Vouchers[:i], n.Vouchers[i+1:]...)
			return n, nil
		}
	}
	return t, fmt.Errorf("voucher %q not found", id)
}
