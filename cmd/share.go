package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tripbook/tripbook"
)

type shareCmd struct{}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print a share link for the active trip" }
func (*shareCmd) Usage() string {
	return `tbk share

  Prints a link carrying a compressed copy of the active trip, without
  images, photos or vouchers. Fails when the link would exceed the URL
  length ceiling; use export instead for large trips.
`
}
func (*shareCmd) SetFlags(*flag.FlagSet) {}

func (*shareCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	u, err := tripbook.ShareURL(cfg.BaseURL, t)
	if err != nil {
		return fail(err)
	}
	fmt.Println(u)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the active trip to a file" }
func (*exportCmd) Usage() string {
	return `tbk export [-o <file>]

  Writes the active trip, images included, to a .tripbook file. The default
  file name is derived from the destination and start date.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Output file. Defaults to <destination>-<start date>.tripbook.")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	name := c.out
	if name == "" {
		name = tripbook.ExportFilename(t)
	}
	w, err := os.Create(name)
	if err != nil {
		return fail(err)
	}
	defer w.Close()
	if err := tripbook.ExportTrip(w, t); err != nil {
		return fail(err)
	}
	fmt.Printf("Exported %q to %s.\n", t.Destination, name)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a trip from a file or share link" }
func (*importCmd) Usage() string {
	return `tbk import <file | link>

  Imports a trip from a .tripbook file or a share link and selects it. The
  imported trip gets a fresh identity.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a file name or a share link.")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}

	arg := f.Arg(0)
	if token, ok := tripbook.TokenFromURL(arg); ok {
		t, ok := s.ImportShared(token)
		if !ok {
			return fail(fmt.Errorf("the link does not carry a valid trip"))
		}
		if err := s.Save(); err != nil {
			return fail(err)
		}
		fmt.Printf("Imported %q, now active.\n", t.Destination)
		return subcommands.ExitSuccess
	}

	r, err := os.Open(arg)
	if err != nil {
		return fail(err)
	}
	defer r.Close()
	t, err := tripbook.ImportTrip(r)
	if err != nil {
		return fail(err)
	}
	s.Add(t)
	if err := s.Save(); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %q, now active.\n", t.Destination)
	return subcommands.ExitSuccess
}
