// Package renderer turns trip documents into markdown reports for terminal
// display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/tripbook/tripbook"
)

// Trips renders the trip collection as a table, flagging the active one.
func Trips(trips []tripbook.Trip, active string) string {
	var b strings.Builder
	b.WriteString("# Trips\n\n")
	if len(trips) == 0 {
		b.WriteString("No trips yet. Create one with `tbk new`.\n")
		return b.String()
	}
	b.WriteString("| | Destination | Dates | Days | Budget |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, t := range trips {
		marker := ""
		if t.ID == active {
			marker = "*"
		}
		fmt.Fprintf(&b, "| %s | %s | %s to %s | %d | %s |\n",
			marker, t.Destination, t.StartDate, t.EndDate, t.Duration(),
			tripbook.M(t.Budget, t.BaseCurrency))
	}
	return b.String()
}

// Day renders one day's itinerary.
func Day(t tripbook.Trip, day int) string {
	var b strings.Builder
	d := t.Itinerary[day]
	fmt.Fprintf(&b, "## Day %d — %s (%s)\n\n", day+1, d.Date, d.Date.Weekday())
	if len(d.Items) == 0 {
		b.WriteString("Nothing planned.\n")
		return b.String()
	}
	for i, item := range d.Items {
		writeItem(&b, t, item)
		if i+1 < len(d.Items) && item.TravelTime != "" {
			fmt.Fprintf(&b, "  · %s %s to the next stop\n", item.TravelTime, item.TravelMode)
		}
	}
	return b.String()
}

func writeItem(b *strings.Builder, t tripbook.Trip, item tripbook.ItineraryItem) {
	check := " "
	if item.Done {
		check = "x"
	}
	when := item.Time
	if item.EndTime != "" {
		when = item.Time + "–" + item.EndTime
		if dur, err := tripbook.LegDuration(item.Time, item.EndTime); err == nil {
			when += " (" + dur + ")"
		}
	}
	fmt.Fprintf(b, "- [%s] **%s** %s", check, when, item.Activity)
	if item.Important {
		b.WriteString(" (!)")
	}
	if item.Location != "" {
		fmt.Fprintf(b, " — %s", item.Location)
	}
	if item.Cost.IsPositive() {
		fmt.Fprintf(b, " — %s", tripbook.M(item.Cost, t.BaseCurrency))
	}
	b.WriteString("\n")
	for _, alt := range item.Alternatives {
		fmt.Fprintf(b, "  · backup: %s\n", alt)
	}
}

// Itinerary renders the whole trip, day by day.
func Itinerary(t tripbook.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s to %s · %d days\n\n",
		t.Destination, t.StartDate, t.EndDate, t.Duration())
	if t.Weather != nil && t.Weather.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", t.Weather.Summary)
	}
	for i := range t.Itinerary {
		b.WriteString(Day(t, i))
		b.WriteString("\n")
	}
	return b.String()
}

// Expenses renders the ledger with its split and category breakdowns.
func Expenses(t tripbook.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Expenses — %s\n\n", t.Destination)
	if len(t.Expenses) == 0 {
		b.WriteString("No expenses recorded.\n")
		return b.String()
	}

	b.WriteString("| Date | Label | Category | Paid | Split | Amount |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, e := range t.Expenses {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			e.Date, e.Label, e.Category, e.Payment, e.Split,
			tripbook.M(e.BaseAmount, t.BaseCurrency))
	}

	fmt.Fprintf(&b, "\n**Total spent**: %s", t.TotalSpent())
	if t.Budget.IsPositive() {
		fmt.Fprintf(&b, " · **Remaining**: %s", t.RemainingBudget())
	}
	b.WriteString("\n\n## By split\n\n")
	for _, s := range t.SplitTotals() {
		fmt.Fprintf(&b, "- %s: %s\n", s.Split, s.Amount)
	}
	b.WriteString("\n## By category\n\n")
	for _, c := range t.CategoryTotals() {
		fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Amount)
	}
	return b.String()
}

// Budgets renders the per-category budget execution table.
func Budgets(t tripbook.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Budget — %s\n\n", t.Destination)
	lines := t.BudgetReport()
	if len(lines) == 0 {
		b.WriteString("No category budgets set.\n")
		return b.String()
	}
	b.WriteString("| Category | Allocated | Spent | Execution |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			l.Category, l.Allocated, l.Spent, l.Execution)
	}
	return b.String()
}

// Bookings renders flight or accommodation cards.
func Bookings(title string, t tripbook.Trip, cards []tripbook.BookingCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(cards) == 0 {
		b.WriteString("None.\n")
		return b.String()
	}
	for _, c := range cards {
		fmt.Fprintf(&b, "## %s — %s\n\n", c.Date, c.Item.Activity)
		if c.Item.Time != "" {
			fmt.Fprintf(&b, "- Time: %s", c.Item.Time)
			if c.Item.EndTime != "" {
				fmt.Fprintf(&b, "–%s", c.Item.EndTime)
			}
			b.WriteString("\n")
		}
		if c.Item.Location != "" {
			fmt.Fprintf(&b, "- Location: %s\n", c.Item.Location)
		}
		if c.Item.Cost.IsPositive() {
			fmt.Fprintf(&b, "- Cost: %s\n", tripbook.M(c.Item.Cost, t.BaseCurrency))
		}
		if d := c.Item.Booking; d != nil {
			if d.Airline != "" {
				fmt.Fprintf(&b, "- Flight: %s %s", d.Airline, d.FlightNumber)
				if d.Terminal != "" {
					fmt.Fprintf(&b, ", terminal %s", d.Terminal)
				}
				if d.Gate != "" {
					fmt.Fprintf(&b, ", gate %s", d.Gate)
				}
				if d.Seat != "" {
					fmt.Fprintf(&b, ", seat %s", d.Seat)
				}
				b.WriteString("\n")
			}
			if d.CheckIn != "" || d.CheckOut != "" {
				fmt.Fprintf(&b, "- Stay: check-in %s, check-out %s\n", d.CheckIn, d.CheckOut)
			}
			if d.Guests > 0 && c.Item.Cost.IsPositive() {
				share := tripbook.PerGuestShare(c.Item.Cost, d.Guests)
				fmt.Fprintf(&b, "- Per guest (%d): %s\n", d.Guests, tripbook.M(share, t.BaseCurrency))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Checklist renders the trip checklist.
func Checklist(t tripbook.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Checklist — %s\n\n", t.Destination)
	if len(t.Checklist) == 0 {
		b.WriteString("Empty.\n")
		return b.String()
	}
	for _, c := range t.Checklist {
		check := " "
		if c.Done {
			check = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", check, c.Text)
	}
	return b.String()
}
