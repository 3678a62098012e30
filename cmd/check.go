package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/renderer"
)

type checkCmd struct {
	add  string
	done string
	rm   string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "show or edit the trip checklist" }
func (*checkCmd) Usage() string {
	return `tbk check [-add <text> | -done <entry> | -rm <entry>]

  Without flags, shows the active trip's checklist. Entries are referenced
  by position, identity prefix or text substring.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Append a checklist entry.")
	f.StringVar(&c.done, "done", "", "Toggle an entry's done flag.")
	f.StringVar(&c.rm, "rm", "", "Delete an entry.")
}

func (c *checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}

	changed := false
	switch {
	case c.add != "":
		if t, err = t.AddCheckItem(c.add); err != nil {
			return fail(err)
		}
		changed = true
	case c.done != "":
		entry, err := resolveCheckItem(t, c.done)
		if err != nil {
			return fail(err)
		}
		if t, err = t.ToggleCheckItem(entry.ID); err != nil {
			return fail(err)
		}
		changed = true
	case c.rm != "":
		entry, err := resolveCheckItem(t, c.rm)
		if err != nil {
			return fail(err)
		}
		if t, err = t.RemoveCheckItem(entry.ID); err != nil {
			return fail(err)
		}
		changed = true
	}
	if changed {
		if err := saveTrip(s, t); err != nil {
			return fail(err)
		}
	}
	printMarkdown(renderer.Checklist(t))
	return subcommands.ExitSuccess
}

func resolveCheckItem(t tripbook.Trip, ref string) (tripbook.ChecklistItem, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(t.Checklist) {
			return tripbook.ChecklistItem{}, fmt.Errorf("position %d out of range [1,%d]", n, len(t.Checklist))
		}
		return t.Checklist[n-1], nil
	}
	var matches []tripbook.ChecklistItem
	q := strings.ToLower(ref)
	for _, entry := range t.Checklist {
		if strings.HasPrefix(entry.ID, ref) ||
			strings.Contains(strings.ToLower(entry.Text), q) {
			matches = append(matches, entry)
		}
	}
	switch len(matches) {
	case 0:
		return tripbook.ChecklistItem{}, fmt.Errorf("no checklist entry matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return tripbook.ChecklistItem{}, fmt.Errorf("multiple checklist entries match %q", ref)
	}
}
