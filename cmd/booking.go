package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/renderer"
)

type bookingsCmd struct {
	stays bool
}

func (*bookingsCmd) Name() string     { return "bookings" }
func (*bookingsCmd) Synopsis() string { return "show flight or accommodation bookings" }
func (*bookingsCmd) Usage() string {
	return `tbk bookings [-stays]

  Shows the flight bookings of the active trip, or the accommodations with
  -stays. Bookings are itinerary items of the matching category.
`
}

func (c *bookingsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.stays, "stays", false, "Show accommodations instead of flights.")
}

func (c *bookingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	if c.stays {
		printMarkdown(renderer.Bookings("Accommodations", t, t.Accommodations()))
	} else {
		printMarkdown(renderer.Bookings("Flights", t, t.Flights()))
	}
	return subcommands.ExitSuccess
}

type bookCmd struct {
	id     string
	date   string
	at     string
	end    string
	where  string
	stay   bool
	cost   float64
	guests int

	airline  string
	flightNo string
	terminal string
	gate     string
	seat     string
	checkIn  string
	checkOut string
}

func (*bookCmd) Name() string     { return "book" }
func (*bookCmd) Synopsis() string { return "add or move a booking" }
func (*bookCmd) Usage() string {
	return `tbk book -on <date> -at <HH:MM> [options] <name>

  Inserts a flight (default) or accommodation (-stay) booking into the day
  matching -on. With -id, re-dates an existing booking instead. A date
  outside the trip lands the booking on the first day with a warning.
`
}

func (c *bookCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identity of an existing booking to move or update.")
	f.StringVar(&c.date, "on", "", "Date of the booking (YYYY-MM-DD).")
	f.StringVar(&c.at, "at", "", "Start time (HH:MM).")
	f.StringVar(&c.end, "end", "", "End time (HH:MM).")
	f.StringVar(&c.where, "where", "", "Location.")
	f.BoolVar(&c.stay, "stay", false, "Record an accommodation instead of a flight.")
	f.Float64Var(&c.cost, "cost", 0, "Cost in the base currency.")
	f.IntVar(&c.guests, "guests", 0, "Guest count for an accommodation.")
	f.StringVar(&c.airline, "airline", "", "Airline name.")
	f.StringVar(&c.flightNo, "flight", "", "Flight number.")
	f.StringVar(&c.terminal, "terminal", "", "Departure terminal.")
	f.StringVar(&c.gate, "gate", "", "Departure gate.")
	f.StringVar(&c.seat, "seat", "", "Seat assignment.")
	f.StringVar(&c.checkIn, "checkin", "", "Check-in time or date.")
	f.StringVar(&c.checkOut, "checkout", "", "Check-out time or date.")
}

func (c *bookCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a booking name is required.")
		return subcommands.ExitUsageError
	}
	if c.date == "" || c.at == "" {
		fmt.Fprintln(os.Stderr, "Error: -on and -at are required.")
		return subcommands.ExitUsageError
	}
	target, err := tripbook.ParseDate(c.date)
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

	category := tripbook.ItemFlight
	details := &tripbook.BookingDetails{
		Airline:      c.airline,
		FlightNumber: c.flightNo,
		Terminal:     c.terminal,
		Gate:         c.gate,
		Seat:         c.seat,
	}
	if c.stay {
		category = tripbook.ItemAccommodation
		details = &tripbook.BookingDetails{
			CheckIn:  c.checkIn,
			CheckOut: c.checkOut,
			Guests:   c.guests,
		}
	}
	item := tripbook.ItineraryItem{
		ID:       c.id,
		Time:     c.at,
		EndTime:  c.end,
		Activity: strings.Join(f.Args(), " "),
		Location: c.where,
		Category: category,
		Cost:     decimal.NewFromFloat(c.cost),
		Booking:  details,
	}

	t, inRange := t.SaveBooking(target, item)
	if !inRange {
		fmt.Fprintf(os.Stderr, "Warning: %s is outside the trip, booking placed on day 1.\n", target)
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Bookings("Bookings", t, t.Bookings(category)))
	return subcommands.ExitSuccess
}
