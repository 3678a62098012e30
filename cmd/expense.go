package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/renderer"
)

// resolveExpense finds a ledger record by 1-based position, identity prefix
// or case-insensitive label substring.
func resolveExpense(t tripbook.Trip, ref string) (tripbook.Expense, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(t.Expenses) {
			return tripbook.Expense{}, fmt.Errorf("position %d out of range [1,%d]", n, len(t.Expenses))
		}
		return t.Expenses[n-1], nil
	}
	var matches []tripbook.Expense
	q := strings.ToLower(ref)
	for _, e := range t.Expenses {
		if strings.HasPrefix(e.ID, ref) ||
			strings.Contains(strings.ToLower(e.Label), q) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return tripbook.Expense{}, fmt.Errorf("no expense matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return tripbook.Expense{}, fmt.Errorf("multiple expenses match %q", ref)
	}
}

type spendCmd struct {
	foreign  float64
	base     float64
	rate     float64
	currency string
	category string
	payment  string
	split    string
	date     string
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record an expense" }
func (*spendCmd) Usage() string {
	return `tbk spend [-f <foreign amount> | -b <base amount>] [options] <label>

  Records an expense in the active trip's ledger. A foreign amount is
  converted at the trip's rate (or -rate), with a 1.5% surcharge for any
  non-cash payment.
`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.foreign, "f", 0, "Amount in the destination currency.")
	f.Float64Var(&c.base, "b", 0, "Amount in the base currency. Ignored when -f is set.")
	f.Float64Var(&c.rate, "rate", 0, "Conversion rate for this expense. Defaults to the trip's rate.")
	f.StringVar(&c.currency, "c", "", "Currency of the foreign amount. Defaults to the trip's currency.")
	f.StringVar(&c.category, "cat", "", "Category (flight, ticket, food, transport, accommodation, shopping, other).")
	f.StringVar(&c.payment, "pay", "", "Payment method (cash, credit_card, mobile). Defaults to cash.")
	f.StringVar(&c.split, "split", "", "Payer bucket (me, parents, shared). Defaults to me.")
	f.StringVar(&c.date, "d", "", "Date of the expense. Defaults to today.")
}

func (c *spendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: an expense label is required.")
		return subcommands.ExitUsageError
	}
	draft, err := c.draft(strings.Join(f.Args(), " "))
	if err != nil {
		return fail(err)
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	t, err = t.AddExpense(draft)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

// draft assembles an ExpenseDraft from the shared spend/edit flags.
func (c *spendCmd) draft(label string) (tripbook.ExpenseDraft, error) {
	category, err := tripbook.ParseExpenseCategory(c.category)
	if err != nil {
		return tripbook.ExpenseDraft{}, err
	}
	payment, err := tripbook.ParsePaymentMethod(c.payment)
	if err != nil {
		return tripbook.ExpenseDraft{}, err
	}
	split, err := tripbook.ParseSplit(c.split)
	if err != nil {
		return tripbook.ExpenseDraft{}, err
	}
	draft := tripbook.ExpenseDraft{
		Label:         label,
		ForeignAmount: decimal.NewFromFloat(c.foreign),
		BaseAmount:    decimal.NewFromFloat(c.base),
		Rate:          decimal.NewFromFloat(c.rate),
		Currency:      c.currency,
		Category:      category,
		Payment:       payment,
		Split:         split,
	}
	if c.date != "" {
		d, err := tripbook.ParseDate(c.date)
		if err != nil {
			return tripbook.ExpenseDraft{}, err
		}
		draft.Date = d
	}
	return draft, nil
}

type editExpenseCmd struct {
	label    string
	foreign  float64
	base     float64
	rate     float64
	currency string
	category string
	payment  string
	split    string
	date     string
}

func (*editExpenseCmd) Name() string     { return "edit-expense" }
func (*editExpenseCmd) Synopsis() string { return "edit a ledger record" }
func (*editExpenseCmd) Usage() string {
	return `tbk edit-expense [options] <expense>

  Edits a ledger record found by position, identity prefix or label
  substring. Only the given flags change. Setting -b keeps the given base
  amount as-is; otherwise a positive foreign amount is reconverted.
`
}

func (c *editExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Expense label.")
	f.Float64Var(&c.foreign, "f", 0, "Amount in the destination currency.")
	f.Float64Var(&c.base, "b", 0, "Amount in the base currency.")
	f.Float64Var(&c.rate, "rate", 0, "Conversion rate for this expense.")
	f.StringVar(&c.currency, "c", "", "Currency of the foreign amount.")
	f.StringVar(&c.category, "cat", "", "Category.")
	f.StringVar(&c.payment, "pay", "", "Payment method (cash, credit_card, mobile).")
	f.StringVar(&c.split, "split", "", "Payer bucket (me, parents, shared).")
	f.StringVar(&c.date, "d", "", "Date of the expense.")
}

func (c *editExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one expense reference.")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	e, err := resolveExpense(t, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	// Start from the stored record, override with the flags the user set.
	draft := tripbook.ExpenseDraft{
		Label:         e.Label,
		ForeignAmount: e.ForeignAmount,
		BaseAmount:    e.BaseAmount,
		Rate:          e.Rate,
		Currency:      e.Currency,
		Category:      e.Category,
		Payment:       e.Payment,
		Split:         e.Split,
		Date:          e.Date,
	}
	var flagErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "label":
			draft.Label = c.label
		case "f":
			draft.ForeignAmount = decimal.NewFromFloat(c.foreign)
			draft.BaseAmount = decimal.Zero
		case "b":
			draft.BaseAmount = decimal.NewFromFloat(c.base)
		case "rate":
			draft.Rate = decimal.NewFromFloat(c.rate)
		case "c":
			draft.Currency = c.currency
		case "cat":
			if v, err := tripbook.ParseExpenseCategory(c.category); err != nil {
				flagErr = err
			} else {
				draft.Category = v
			}
		case "pay":
			if v, err := tripbook.ParsePaymentMethod(c.payment); err != nil {
				flagErr = err
			} else {
				draft.Payment = v
			}
		case "split":
			if v, err := tripbook.ParseSplit(c.split); err != nil {
				flagErr = err
			} else {
				draft.Split = v
			}
		case "d":
			if v, err := tripbook.ParseDate(c.date); err != nil {
				flagErr = err
			} else {
				draft.Date = v
			}
		}
	})
	if flagErr != nil {
		return fail(flagErr)
	}

	t, err = t.EditExpense(e.ID, draft)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

type expensesCmd struct{}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "show the expense ledger" }
func (*expensesCmd) Usage() string {
	return `tbk expenses

  Shows the active trip's ledger with split and category breakdowns.
`
}
func (*expensesCmd) SetFlags(*flag.FlagSet) {}

func (*expensesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

type rmExpenseCmd struct {
	yes bool
}

func (*rmExpenseCmd) Name() string     { return "rm-expense" }
func (*rmExpenseCmd) Synopsis() string { return "delete an expense" }
func (*rmExpenseCmd) Usage() string {
	return `tbk rm-expense [-y] <expense>

  Deletes a ledger record by position, identity prefix or label substring.
  The itinerary item a derived record points at is left alone.
`
}

func (c *rmExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Skip the confirmation prompt.")
}

func (c *rmExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one expense reference.")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	e, err := resolveExpense(t, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if !confirm(fmt.Sprintf("Delete expense %q?", e.Label), c.yes) {
		fmt.Println("Aborted.")
		return subcommands.ExitSuccess
	}
	t, err = t.DeleteExpense(e.ID)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "undo the last ledger change" }
func (*undoCmd) Usage() string {
	return `tbk undo

  Rolls the expense ledger back one change. Does nothing at the oldest state.
`
}
func (*undoCmd) SetFlags(*flag.FlagSet) {}

func (*undoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	t, ok := t.UndoExpenses()
	if !ok {
		fmt.Println("Nothing to undo.")
		return subcommands.ExitSuccess
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

type redoCmd struct{}

func (*redoCmd) Name() string     { return "redo" }
func (*redoCmd) Synopsis() string { return "re-apply an undone ledger change" }
func (*redoCmd) Usage() string {
	return `tbk redo

  Re-applies the most recently undone ledger change. Does nothing at the
  newest state.
`
}
func (*redoCmd) SetFlags(*flag.FlagSet) {}

func (*redoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	t, ok := t.RedoExpenses()
	if !ok {
		fmt.Println("Nothing to redo.")
		return subcommands.ExitSuccess
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(t))
	return subcommands.ExitSuccess
}

type budgetCmd struct {
	category string
	amount   float64
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "show or set category budgets" }
func (*budgetCmd) Usage() string {
	return `tbk budget [-cat <category> -amount <n>]

  Without flags, shows the budget execution report. With flags, allocates a
  base-currency amount to one category, replacing any previous allocation.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "cat", "", "Expense category to allocate to.")
	f.Float64Var(&c.amount, "amount", 0, "Allocated amount in the base currency.")
}

func (c *budgetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	if c.category != "" {
		category, err := tripbook.ParseExpenseCategory(c.category)
		if err != nil {
			return fail(err)
		}
		t = t.SetBudget(category, decimal.NewFromFloat(c.amount))
		if err := saveTrip(s, t); err != nil {
			return fail(err)
		}
	}
	printMarkdown(renderer.Budgets(t))
	return subcommands.ExitSuccess
}

type convertCmd struct {
	rate    float64
	payment string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "preview a currency conversion" }
func (*convertCmd) Usage() string {
	return `tbk convert [-rate <r>] [-pay <method>] <foreign amount>

  Shows what a foreign amount would cost in the base currency, including the
  1.5% surcharge for non-cash payments. Nothing is recorded.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.rate, "rate", 0, "Conversion rate. Defaults to the trip's rate.")
	f.StringVar(&c.payment, "pay", "", "Payment method (cash, credit_card, mobile). Defaults to cash.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one amount.")
		return subcommands.ExitUsageError
	}
	foreign, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", f.Arg(0), err))
	}
	payment, err := tripbook.ParsePaymentMethod(c.payment)
	if err != nil {
		return fail(err)
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	rate := t.Rate
	if c.rate > 0 {
		rate = decimal.NewFromFloat(c.rate)
	}
	base := tripbook.ConvertToBase(foreign, rate, payment)
	fmt.Printf("%s = %s (%s, rate %s)\n",
		tripbook.M(foreign, t.Currency), tripbook.M(base, t.BaseCurrency), payment, rate)
	return subcommands.ExitSuccess
}
