package tripbook

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The itinerary mutation engine. Every operation takes the whole Trip and
// returns a new one; the day's item list is re-sorted after add, edit and
// toggle, but never after a manual reorder.

// ItemDraft carries the user-supplied fields for a new itinerary item.
type ItemDraft struct {
	Time         string
	EndTime      string
	Activity     string
	Location     string
	Category     ItemCategory
	Cost         decimal.Decimal
	Important    bool
	Alternatives []string
	BookingImage string
	TravelTime   string
	TravelMode   string
	Booking      *BookingDetails
}

// ItemPatch holds the fields of an item edit. Nil fields are preserved from
// the existing item (shallow merge).
type ItemPatch struct {
	Time         *string
	EndTime      *string
	Activity     *string
	Location     *string
	Category     *ItemCategory
	Cost         *decimal.Decimal
	Important    *bool
	Alternatives *[]string
	BookingImage *string
	TravelTime   *string
	TravelMode   *string
	Booking      *BookingDetails
}

// AddItem appends a new item to the given day and re-sorts it. The start
// time and activity label are required; a failed validation leaves the trip
// untouched.
func (t Trip) AddItem(day int, draft ItemDraft) (Trip, error) {
	if day < 0 || day >= len(t.Itinerary) {
		return t, fmt.Errorf("day %d out of range [0,%d)", day, len(t.Itinerary))
	}
	if strings.TrimSpace(draft.Time) == "" {
		return t, fmt.Errorf("start time is required")
	}
	if strings.TrimSpace(draft.Activity) == "" {
		return t, fmt.Errorf("activity is required")
	}

	item := ItineraryItem{
		ID:           NewID(),
		Time:         draft.Time,
		EndTime:      draft.EndTime,
		Activity:     draft.Activity,
		Location:     draft.Location,
		Category:     draft.Category,
		Cost:         draft.Cost,
		Important:    draft.Important,
		Alternatives: append([]string{}, draft.Alternatives...),
		BookingImage: draft.BookingImage,
		TravelTime:   draft.TravelTime,
		TravelMode:   draft.TravelMode,
		Booking:      draft.Booking,
	}
	if item.Cost.IsNegative() {
		item.Cost = decimal.Zero
	}

	n := t.Clone()
	n.Itinerary[day].Items = append(n.Itinerary[day].Items, item)
	sortDay(&n.Itinerary[day])
	n.syncItemExpense(day, item)
	Log.Debugw("item added", "trip", n.ID, "day", day, "item", item.ID, "activity", item.Activity)
	return n, nil
}

// EditItem merges the patch over the item found by identity within the given
// day, re-sorts the day, and re-synchronizes the derived expense.
func (t Trip) EditItem(day int, id string, patch ItemPatch) (Trip, error) {
	if day < 0 || day >= len(t.Itinerary) {
		return t, fmt.Errorf("day %d out of range [0,%d)", day, len(t.Itinerary))
	}
	n := t.Clone()
	idx := -1
	for i, item := range n.Itinerary[day].Items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, fmt.Errorf("item %q not found on day %d", id, day)
	}

	item := &n.Itinerary[day].Items[idx]
	if patch.Time != nil {
		if strings.TrimSpace(*patch.Time) == "" {
			return t, fmt.Errorf("start time is required")
		}
		item.Time = *patch.Time
	}
	if patch.Activity != nil {
		if strings.TrimSpace(*patch.Activity) == "" {
			return t, fmt.Errorf("activity is required")
		}
		item.Activity = *patch.Activity
	}
	if patch.EndTime != nil {
		item.EndTime = *patch.EndTime
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Cost != nil {
		item.Cost = *patch.Cost
		if item.Cost.IsNegative() {
			item.Cost = decimal.Zero
		}
	}
	if patch.Important != nil {
		item.Important = *patch.Important
	}
	if patch.Alternatives != nil {
		item.Alternatives = append([]string{}, (*patch.Alternatives)...)
	}
	if patch.BookingImage != nil {
		item.BookingImage = *patch.BookingImage
	}
	if patch.TravelTime != nil {
		item.TravelTime = *patch.TravelTime
	}
	if patch.TravelMode != nil {
		item.TravelMode = *patch.TravelMode
	}
	if patch.Booking != nil {
		b := *patch.Booking
		item.Booking = &b
	}

	edited := *item
	sortDay(&n.Itinerary[day])
	n.syncItemExpense(day, edited)
	Log.Debugw("item edited", "trip", n.ID, "day", day, "item", id)
	return n, nil
}

// DeleteItem removes an item from its day and cascades deletion of any
// expense derived from it. Interactive confirmation is the caller's concern.
func (t Trip) DeleteItem(day int, id string) (Trip, error) {
	if day < 0 || day >= len(t.Itinerary) {
		return t, fmt.Errorf("day %d out of range [0,%d)", day, len(t.Itinerary))
	}
	n := t.Clone()
	items := n.Itinerary[day].Items
	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, fmt.Errorf("item %q not found on day %d", id, day)
	}
	n.Itinerary[day].Items = append(items[:idx], items[idx+1:]...)
	n.deleteLinkedExpense(id)
	Log.Debugw("item deleted", "trip", n.ID, "day", day, "item", id)
	return n, nil
}

// ToggleItem flips the completion flag of an item within the given day and
// re-sorts the day, moving completed items to the end.
func (t Trip) ToggleItem(day int, id string) (Trip, error) {
	if day < 0 || day >= len(t.Itinerary) {
		return t, fmt.Errorf("day %d out of range [0,%d)", day, len(t.Itinerary))
	}
	n := t.Clone()
	for i, item := range n.Itinerary[day].Items {
		if item.ID == id {
			n.Itinerary[day].Items[i].Done = !item.Done
			sortDay(&n.Itinerary[day])
			return n, nil
		}
	}
	return t, fmt.Errorf("item %q not found on day %d", id, day)
}

// ReorderItems moves the item at 'from' to position 'to' within one day,
// preserving the relative order of the rest. The completion/time sort is
// deliberately not re-applied: a manual order may violate it.
func (t Trip) ReorderItems(day, from, to int) (Trip, error) {
	if day < 0 || day >= len(t.Itinerary) {
		return t, fmt.Errorf("day %d out of range [0,%d)", day, len(t.Itinerary))
	}
	items := t.Itinerary[day].Items
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return t, fmt.Errorf("index out of range [0,%d)", len(items))
	}
	n := t.Clone()
	items = n.Itinerary[day].Items
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]ItineraryItem{moved}, items[to:]...)...)
	n.Itinerary[day].Items = items
	return n, nil
}

// sortDay applies the display order rule: completed items after incomplete
// ones, ascending start time within the same completion status. The sort is
// stable so equal items keep their relative order.
func sortDay(day *DayPlan) {
	sort.SliceStable(day.Items, func(i, j int) bool {
		a, b := day.Items[i], day.Items[j]
		if a.Done != b.Done {
			return !a.Done
		}
		// lexicographic compare is chronological for zero-padded HH:MM
		return a.Time < b.Time
	})
}

// syncItemExpense maintains the derived expense of an item, keyed by the
// item identity: cost > 0 finds-or-creates the linked record, cost <= 0
// deletes it. An independently edited expense is only overwritten again when
// the source item changes.
func (t *Trip) syncItemExpense(day int, item ItineraryItem) {
	if !item.Cost.IsPositive() {
		t.deleteLinkedExpense(item.ID)
		return
	}

	category := ExpenseCategoryOf(item.Category)
	date := t.Itinerary[day].Date
	for i, e := range t.Expenses {
		if e.ItemID == item.ID {
			t.Expenses[i].Label = item.Activity
			t.Expenses[i].BaseAmount = item.Cost
			t.Expenses[i].Category = category
			t.Expenses[i].Date = date
			return
		}
	}
	t.Expenses = append(t.Expenses, Expense{
		ID:            NewID(),
		ItemID:        item.ID,
		Label:         item.Activity,
		ForeignAmount: decimal.Zero,
		BaseAmount:    item.Cost,
		Rate:          decimal.NewFromInt(1),
		Currency:      t.BaseCurrency,
		Category:      category,
		Payment:       PayCash,
		Split:         SplitMe,
		Date:          date,
	})
}

func (t *Trip) deleteLinkedExpense(itemID string) {
	for i, e := range t.Expenses {
		if e.ItemID == itemID {
			t.Expenses = append(t.Expenses[:i], t.Expenses[i+1:]...)
			return
		}
	}
}

// LegDuration computes the elapsed time between two HH:MM strings formatted
// as "XhYm" with zero components omitted. An end before the start is treated
// as wrapping past midnight.
func LegDuration(start, end string) (string, error) {
	s, err := parseMinutes(start)
	if err != nil {
		return "", err
	}
	e, err := parseMinutes(end)
	if err != nil {
		return "", err
	}
	minutes := e - s
	if minutes < 0 {
		minutes += 24 * 60
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m), nil
	case m == 0:
		return fmt.Sprintf("%dh", h), nil
	default:
		return fmt.Sprintf("%dh%dm", h, m), nil
	}
}

func parseMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return hours*60 + mins, nil
}
