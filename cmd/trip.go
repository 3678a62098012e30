package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/renderer"
)

type newCmd struct {
	destination string
	start       string
	end         string
	currency    string
	budget      float64
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a trip and select it" }
func (*newCmd) Usage() string {
	return `tbk new -to <destination> -from <date> -until <date> [-c <currency>] [-budget <amount>]

  Creates a trip with one itinerary day per calendar day and makes it the
  active trip.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.destination, "to", "", "Destination name.")
	f.StringVar(&c.start, "from", "", "First day of the trip (YYYY-MM-DD).")
	f.StringVar(&c.end, "until", "", "Last day of the trip (YYYY-MM-DD).")
	f.StringVar(&c.currency, "c", "", "Destination currency code. Defaults to the base currency.")
	f.Float64Var(&c.budget, "budget", 0, "Overall trip budget in the base currency.")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.destination == "" || c.start == "" || c.end == "" {
		fmt.Fprintln(os.Stderr, "Error: -to, -from and -until are required.")
		return subcommands.ExitUsageError
	}
	start, err := tripbook.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitFailure
	}
	end, err := tripbook.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitFailure
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.BaseCurrency
	}
	t, err := tripbook.NewTrip(c.destination, start, end, currency, cfg.BaseCurrency, decimal.NewFromInt(1))
	if err != nil {
		return fail(err)
	}
	if c.budget > 0 {
		t.Budget = decimal.NewFromFloat(c.budget)
	}
	s.Add(t)
	if err := s.Save(); err != nil {
		return fail(err)
	}
	fmt.Printf("Created trip %q (%s to %s), now active.\n", t.Destination, t.StartDate, t.EndDate)
	return subcommands.ExitSuccess
}

type tripsCmd struct{}

func (*tripsCmd) Name() string     { return "trips" }
func (*tripsCmd) Synopsis() string { return "list all trips" }
func (*tripsCmd) Usage() string {
	return `tbk trips

  Lists every trip in the store, flagging the active one.
`
}
func (*tripsCmd) SetFlags(*flag.FlagSet) {}

func (*tripsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Trips(s.Trips, s.Active))
	return subcommands.ExitSuccess
}

type useCmd struct{}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "select the active trip" }
func (*useCmd) Usage() string {
	return `tbk use <trip>

  Selects a trip by identity prefix or destination substring.
`
}
func (*useCmd) SetFlags(*flag.FlagSet) {}

func (*useCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one trip query.")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := s.Find(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := s.Select(t.ID); err != nil {
		return fail(err)
	}
	if err := s.Save(); err != nil {
		return fail(err)
	}
	fmt.Printf("Active trip is now %q.\n", t.Destination)
	return subcommands.ExitSuccess
}

type rmTripCmd struct {
	yes bool
}

func (*rmTripCmd) Name() string     { return "rm-trip" }
func (*rmTripCmd) Synopsis() string { return "delete a trip" }
func (*rmTripCmd) Usage() string {
	return `tbk rm-trip [-y] <trip>

  Deletes a trip by identity prefix or destination substring.
`
}

func (c *rmTripCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Skip the confirmation prompt.")
}

func (c *rmTripCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one trip query.")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := s.Find(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if !confirm(fmt.Sprintf("Delete trip %q and all its data?", t.Destination), c.yes) {
		fmt.Println("Aborted.")
		return subcommands.ExitSuccess
	}
	if err := s.Remove(t.ID); err != nil {
		return fail(err)
	}
	if err := s.Save(); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted trip %q.\n", t.Destination)
	return subcommands.ExitSuccess
}
