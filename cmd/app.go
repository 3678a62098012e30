// Package cmd implements the CLI application to manage trip plans.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/tripbook/tripbook"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newCmd{}, "trips")
	c.Register(&tripsCmd{}, "trips")
	c.Register(&useCmd{}, "trips")
	c.Register(&rmTripCmd{}, "trips")

	c.Register(&dayCmd{}, "itinerary")
	c.Register(&addCmd{}, "itinerary")
	c.Register(&editCmd{}, "itinerary")
	c.Register(&doneCmd{}, "itinerary")
	c.Register(&moveCmd{}, "itinerary")
	c.Register(&rmItemCmd{}, "itinerary")

	c.Register(&spendCmd{}, "expenses")
	c.Register(&editExpenseCmd{}, "expenses")
	c.Register(&expensesCmd{}, "expenses")
	c.Register(&rmExpenseCmd{}, "expenses")
	c.Register(&undoCmd{}, "expenses")
	c.Register(&redoCmd{}, "expenses")
	c.Register(&budgetCmd{}, "expenses")
	c.Register(&convertCmd{}, "expenses")

	c.Register(&bookingsCmd{}, "bookings")
	c.Register(&bookCmd{}, "bookings")

	c.Register(&checkCmd{}, "checklist")
	c.Register(&voucherCmd{}, "checklist")
	c.Register(&memoCmd{}, "checklist")

	c.Register(&shareCmd{}, "sharing")
	c.Register(&exportCmd{}, "sharing")
	c.Register(&importCmd{}, "sharing")

	c.Register(&guideCmd{}, "guide")
	c.Register(&recommendCmd{}, "guide")
}

// Config holds the application settings, read from the environment (an
// optional .env file is honored) and overridable per command where it makes
// sense.
type Config struct {
	Dir          string `env:"TRIPBOOK_DIR" envDefault:".tripbook"`
	BaseURL      string `env:"TRIPBOOK_BASE_URL" envDefault:"https://tripbook.app/plan"`
	BaseCurrency string `env:"TRIPBOOK_CURRENCY" envDefault:"TWD"`
	Model        string `env:"TRIPBOOK_MODEL"`
	Verbose      bool   `env:"TRIPBOOK_VERBOSE" envDefault:"false"`
}

var cfg Config

// LoadConfig parses the environment into the application config and installs
// the logger. It is called once from main before command execution.
func LoadConfig() error {
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("cannot parse environment: %w", err)
	}

	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("cannot create logger: %w", err)
		}
		tripbook.SetLogger(logger.Sugar())
	}
	return nil
}

// openStore opens the trip store from the configured directory.
func openStore() (*tripbook.Store, error) {
	return tripbook.OpenStore(cfg.Dir)
}

// activeTrip returns the currently selected trip from the store.
func activeTrip(s *tripbook.Store) (tripbook.Trip, error) {
	t, ok := s.ActiveTrip()
	if !ok {
		return tripbook.Trip{}, fmt.Errorf("no active trip, create one with `tbk new` or select one with `tbk use`")
	}
	return t, nil
}

// saveTrip replaces the stored document and rewrites the store file.
func saveTrip(s *tripbook.Store, t tripbook.Trip) error {
	if err := s.Replace(t); err != nil {
		return err
	}
	return s.Save()
}

// confirm asks the user before a destructive operation. The yes flag of the
// calling command skips the prompt.
func confirm(prompt string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
