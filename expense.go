package tripbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// cardSurcharge is the conversion fee multiplier applied when a foreign
// amount is settled by any non-cash payment method.
var cardSurcharge = decimal.RequireFromString("1.015")

// surchargeFor returns the conversion fee multiplier for a payment method.
func surchargeFor(payment PaymentMethod) decimal.Decimal {
	if payment == PayCash {
		return decimal.NewFromInt(1)
	}
	return cardSurcharge
}

// ConvertToBase computes the base-currency total for a typed foreign amount:
// amount x rate x surcharge, rounded to a whole base unit. It is the
// stateless preview used before committing an expense.
func ConvertToBase(foreign, rate decimal.Decimal, payment PaymentMethod) decimal.Decimal {
	return foreign.Mul(rate).Mul(surchargeFor(payment)).Round(0)
}

// ExpenseDraft carries the user-supplied fields of an expense add or edit.
// Photo is a pointer so an edit can distinguish keeping the stored attachment
// (nil) from clearing it (pointer to the empty string).
type ExpenseDraft struct {
	Label         string
	ForeignAmount decimal.Decimal
	BaseAmount    decimal.Decimal
	Rate          decimal.Decimal
	Currency      string
	Category      ExpenseCategory
	Payment       PaymentMethod
	Split         Split
	Photo         *string
	Date          Date
}

func (d ExpenseDraft) validate() error {
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("expense label is required")
	}
	if !d.ForeignAmount.IsPositive() && !d.BaseAmount.IsPositive() {
		return fmt.Errorf("either a foreign or a base amount is required")
	}
	return nil
}

// AddExpense appends a new expense record and pushes the resulting ledger
// onto the undo history. For a new record with a positive foreign amount the
// base amount is recomputed as foreign x rate x surcharge regardless of any
// supplied base amount.
func (t Trip) AddExpense(draft ExpenseDraft) (Trip, error) {
	if err := draft.validate(); err != nil {
		return t, err
	}
	n := t.Clone()

	rate := draft.Rate
	if rate.IsZero() {
		rate = n.Rate
	}
	base := draft.BaseAmount
	if draft.ForeignAmount.IsPositive() {
		base = ConvertToBase(draft.ForeignAmount, rate, draft.Payment)
	}
	currency := draft.Currency
	if currency == "" {
		currency = n.Currency
	}
	date := draft.Date
	if date.IsZero() {
		date = Today()
	}

	var photo string
	if draft.Photo != nil {
		photo = *draft.Photo
	}
	n.Expenses = append(n.Expenses, Expense{
		ID:            NewID(),
		Label:         draft.Label,
		ForeignAmount: draft.ForeignAmount,
		BaseAmount:    base,
		Rate:          rate,
		Currency:      currency,
		Category:      draft.Category,
		Payment:       draft.Payment,
		Split:         draft.Split,
		Photo:         photo,
		Date:          date,
	})
	n.pushExpenseHistory(t.Expenses)
	Log.Debugw("expense added", "trip", n.ID, "label", draft.Label, "base", base)
	return n, nil
}

// EditExpense overwrites the record found by identity with the draft fields,
// preserving the identity and any itinerary-item link. An explicitly
// supplied base amount is kept; without one, a positive foreign amount is
// reconverted at the draft's rate and payment method.
func (t Trip) EditExpense(id string, draft ExpenseDraft) (Trip, error) {
	if err := draft.validate(); err != nil {
		return t, err
	}
	n := t.Clone()
	idx := -1
	for i, e := range n.Expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, fmt.Errorf("expense %q not found", id)
	}

	rate := draft.Rate
	if rate.IsZero() {
		rate = n.Rate
	}
	base := draft.BaseAmount
	if !base.IsPositive() && draft.ForeignAmount.IsPositive() {
		base = ConvertToBase(draft.ForeignAmount, rate, draft.Payment)
	}
	date := draft.Date
	if date.IsZero() {
		date = n.Expenses[idx].Date
	}
	currency := draft.Currency
	if currency == "" {
		currency = n.Expenses[idx].Currency
	}

	e := &n.Expenses[idx]
	e.Label = draft.Label
	e.ForeignAmount = draft.ForeignAmount
	e.BaseAmount = base
	e.Rate = rate
	e.Currency = currency
	e.Category = draft.Category
	e.Payment = draft.Payment
	e.Split = draft.Split
	if draft.Photo != nil {
		e.Photo = *draft.Photo
	}
	e.Date = date

	n.pushExpenseHistory(t.Expenses)
	Log.Debugw("expense edited", "trip", n.ID, "expense", id)
	return n, nil
}

// DeleteExpense removes a record by identity. The source itinerary item of a
// derived expense is never touched. Interactive confirmation is the caller's
// concern.
func (t Trip) DeleteExpense(id string) (Trip, error) {
	n := t.Clone()
	for i, e := range n.Expenses {
		if e.ID == id {
			n.Expenses = append(n.Expenses[:i], n.Expenses[i+1:]...)
			n.pushExpenseHistory(t.Expenses)
			Log.Debugw("expense deleted", "trip", n.ID, "expense", id)
			return n, nil
		}
	}
	return t, fmt.Errorf("expense %q not found", id)
}

// pushExpenseHistory records the post-mutation ledger. A trip created before
// histories were persisted gets one seeded with the pre-mutation ledger.
//
// The itinerary sync changes the ledger without recording snapshots, so the
// snapshot under the pointer can be stale by the time an independent mutation
// comes in. The pre-mutation ledger is pushed first in that case, keeping the
// undo base current.
func (t *Trip) pushExpenseHistory(before []Expense) {
	if t.History == nil {
		t.History = NewHistory(before)
	} else if !expensesEqual(t.History.Snapshots[t.History.Pos], before) {
		t.History.Push(before)
	}
	t.History.Push(t.Expenses)
}

func expensesEqual(a, b []Expense) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.ItemID != y.ItemID || x.Label != y.Label ||
			x.Currency != y.Currency || x.Category != y.Category ||
			x.Payment != y.Payment || x.Split != y.Split ||
			x.Photo != y.Photo || x.Date != y.Date ||
			!x.ForeignAmount.Equal(y.ForeignAmount) ||
			!x.BaseAmount.Equal(y.BaseAmount) ||
			!x.Rate.Equal(y.Rate) {
			return false
		}
	}
	return true
}

// UndoExpenses rolls the ledger back one snapshot. At the boundary it
// returns the trip unchanged and false.
func (t Trip) UndoExpenses() (Trip, bool) {
	if t.History == nil {
		return t, false
	}
	n := t.Clone()
	snapshot, ok := n.History.Undo()
	if !ok {
		return t, false
	}
	n.Expenses = snapshot
	return n, true
}

// RedoExpenses re-applies one undone ledger snapshot. At the boundary it
// returns the trip unchanged and false.
func (t Trip) RedoExpenses() (Trip, bool) {
	if t.History == nil {
		return t, false
	}
	n := t.Clone()
	snapshot, ok := n.History.Redo()
	if !ok {
		return t, false
	}
	n.Expenses = snapshot
	return n, true
}
