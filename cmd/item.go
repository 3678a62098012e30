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

// resolveItem finds an item within a day by 1-based position, identity prefix
// or case-insensitive activity substring.
func resolveItem(t tripbook.Trip, day int, ref string) (tripbook.ItineraryItem, error) {
	items := t.Itinerary[day].Items
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return tripbook.ItineraryItem{}, fmt.Errorf("position %d out of range [1,%d]", n, len(items))
		}
		return items[n-1], nil
	}
	var matches []tripbook.ItineraryItem
	q := strings.ToLower(ref)
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) ||
			strings.Contains(strings.ToLower(item.Activity), q) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return tripbook.ItineraryItem{}, fmt.Errorf("no item matches %q on day %d", ref, day+1)
	case 1:
		return matches[0], nil
	default:
		return tripbook.ItineraryItem{}, fmt.Errorf("multiple items match %q on day %d", ref, day+1)
	}
}

// dayIndex validates a 1-based day flag against the trip length.
func dayIndex(t tripbook.Trip, day int) (int, error) {
	if day < 1 || day > len(t.Itinerary) {
		return 0, fmt.Errorf("day %d out of range [1,%d]", day, len(t.Itinerary))
	}
	return day - 1, nil
}

type dayCmd struct {
	day int
}

func (*dayCmd) Name() string     { return "day" }
func (*dayCmd) Synopsis() string { return "show the itinerary" }
func (*dayCmd) Usage() string {
	return `tbk day [-d <n>]

  Shows one day of the active trip's itinerary, or the whole trip when no day
  is given.
`
}

func (c *dayCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 0, "Day number, starting at 1.")
}

func (c *dayCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	if c.day == 0 {
		printMarkdown(renderer.Itinerary(t))
		return subcommands.ExitSuccess
	}
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}

type addCmd struct {
	day       int
	at        string
	end       string
	where     string
	category  string
	cost      float64
	important bool
	alt       string
	travel    string
	mode      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an itinerary item" }
func (*addCmd) Usage() string {
	return `tbk add -d <n> -at <HH:MM> [options] <activity>

  Adds an item to a day of the active trip. A positive -cost also records a
  matching expense in the ledger.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 1, "Day number, starting at 1.")
	f.StringVar(&c.at, "at", "", "Start time (HH:MM).")
	f.StringVar(&c.end, "end", "", "End time (HH:MM).")
	f.StringVar(&c.where, "where", "", "Location.")
	f.StringVar(&c.category, "cat", "", "Category (flight, attraction, food, transport, accommodation, other).")
	f.Float64Var(&c.cost, "cost", 0, "Planned cost in the base currency.")
	f.BoolVar(&c.important, "important", false, "Flag the item as important.")
	f.StringVar(&c.alt, "alt", "", "Comma-separated backup options.")
	f.StringVar(&c.travel, "travel", "", "Travel time to the next stop.")
	f.StringVar(&c.mode, "mode", "", "Travel mode to the next stop.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: an activity label is required.")
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
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	category, err := tripbook.ParseItemCategory(c.category)
	if err != nil {
		return fail(err)
	}

	draft := tripbook.ItemDraft{
		Time:       c.at,
		EndTime:    c.end,
		Activity:   strings.Join(f.Args(), " "),
		Location:   c.where,
		Category:   category,
		Cost:       decimal.NewFromFloat(c.cost),
		Important:  c.important,
		TravelTime: c.travel,
		TravelMode: c.mode,
	}
	if c.alt != "" {
		for _, a := range strings.Split(c.alt, ",") {
			draft.Alternatives = append(draft.Alternatives, strings.TrimSpace(a))
		}
	}

	t, err = t.AddItem(day, draft)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}

type editCmd struct {
	day       int
	at        string
	end       string
	activity  string
	where     string
	category  string
	cost      float64
	important bool
	alt       string
	travel    string
	mode      string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an itinerary item" }
func (*editCmd) Usage() string {
	return `tbk edit -d <n> [options] <item>

  Edits an item of the active trip, found by position, identity prefix or
  activity substring. Only the given flags change; the rest is preserved.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 1, "Day number, starting at 1.")
	f.StringVar(&c.at, "at", "", "Start time (HH:MM).")
	f.StringVar(&c.end, "end", "", "End time (HH:MM).")
	f.StringVar(&c.activity, "activity", "", "Activity label.")
	f.StringVar(&c.where, "where", "", "Location.")
	f.StringVar(&c.category, "cat", "", "Category.")
	f.Float64Var(&c.cost, "cost", 0, "Planned cost in the base currency.")
	f.BoolVar(&c.important, "important", false, "Flag the item as important.")
	f.StringVar(&c.alt, "alt", "", "Comma-separated backup options.")
	f.StringVar(&c.travel, "travel", "", "Travel time to the next stop.")
	f.StringVar(&c.mode, "mode", "", "Travel mode to the next stop.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one item reference.")
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
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	item, err := resolveItem(t, day, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	// Only flags the user actually set become part of the patch.
	var patch tripbook.ItemPatch
	var flagErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "at":
			patch.Time = &c.at
		case "end":
			patch.EndTime = &c.end
		case "activity":
			patch.Activity = &c.activity
		case "where":
			patch.Location = &c.where
		case "cat":
			cat, err := tripbook.ParseItemCategory(c.category)
			if err != nil {
				flagErr = err
				return
			}
			patch.Category = &cat
		case "cost":
			cost := decimal.NewFromFloat(c.cost)
			patch.Cost = &cost
		case "important":
			patch.Important = &c.important
		case "alt":
			var alts []string
			for _, a := range strings.Split(c.alt, ",") {
				alts = append(alts, strings.TrimSpace(a))
			}
			patch.Alternatives = &alts
		case "travel":
			patch.TravelTime = &c.travel
		case "mode":
			patch.TravelMode = &c.mode
		}
	})
	if flagErr != nil {
		return fail(flagErr)
	}

	t, err = t.EditItem(day, item.ID, patch)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}

type doneCmd struct {
	day int
}

func (*doneCmd) Name() string     { return "done" }
func (*doneCmd) Synopsis() string { return "toggle an item's completion" }
func (*doneCmd) Usage() string {
	return `tbk done -d <n> <item>

  Toggles completion of an item. Completed items sort after the remaining
  ones.
`
}

func (c *doneCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 1, "Day number, starting at 1.")
}

func (c *doneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one item reference.")
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
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	item, err := resolveItem(t, day, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	t, err = t.ToggleItem(day, item.ID)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}

type moveCmd struct {
	day int
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "reorder items within a day" }
func (*moveCmd) Usage() string {
	return `tbk move -d <n> <from> <to>

  Moves the item at position <from> to position <to> within one day. The
  manual order is kept as-is, no re-sort is applied.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 1, "Day number, starting at 1.")
}

func (c *moveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <from> and <to> positions.")
		return subcommands.ExitUsageError
	}
	from, err1 := strconv.Atoi(f.Arg(0))
	to, err2 := strconv.Atoi(f.Arg(1))
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "Error: positions must be numbers.")
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
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	t, err = t.ReorderItems(day, from-1, to-1)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}

type rmItemCmd struct {
	day int
	yes bool
}

func (*rmItemCmd) Name() string     { return "rm" }
func (*rmItemCmd) Synopsis() string { return "delete an itinerary item" }
func (*rmItemCmd) Usage() string {
	return `tbk rm -d <n> [-y] <item>

  Deletes an item. An expense recorded from the item's cost is deleted with
  it.
`
}

func (c *rmItemCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.day, "d", 1, "Day number, starting at 1.")
	f.BoolVar(&c.yes, "y", false, "Skip the confirmation prompt.")
}

func (c *rmItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one item reference.")
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
	day, err := dayIndex(t, c.day)
	if err != nil {
		return fail(err)
	}
	item, err := resolveItem(t, day, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if !confirm(fmt.Sprintf("Delete %q and its linked expense?", item.Activity), c.yes) {
		fmt.Println("Aborted.")
		return subcommands.ExitSuccess
	}
	t, err = t.DeleteItem(day, item.ID)
	if err != nil {
		return fail(err)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Day(t, day))
	return subcommands.ExitSuccess
}
