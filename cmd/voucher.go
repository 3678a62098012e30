package cmd

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/tripbook/tripbook"
)

type voucherCmd struct {
	add string
	rm  string
	yes bool
}

func (*voucherCmd) Name() string     { return "voucher" }
func (*voucherCmd) Synopsis() string { return "list, attach or delete vouchers" }
func (*voucherCmd) Usage() string {
	return `tbk voucher [-add <file> | -rm <voucher> [-y]]

  Without flags, lists the active trip's vouchers. -add attaches a file
  (image or PDF) as a data URL; -rm deletes one by position, identity prefix
  or title substring.
`
}

func (c *voucherCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Attach this file as a voucher.")
	f.StringVar(&c.rm, "rm", "", "Delete a voucher.")
	f.BoolVar(&c.yes, "y", false, "Skip the confirmation prompt.")
}

func (c *voucherCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		data, err := os.ReadFile(c.add)
		if err != nil {
			return fail(err)
		}
		media := mime.TypeByExtension(filepath.Ext(c.add))
		if media == "" {
			media = "application/octet-stream"
		}
		payload := fmt.Sprintf("data:%s;base64,%s", media, base64.StdEncoding.EncodeToString(data))
		name := filepath.Base(c.add)
		if t, err = t.AddVoucher(strings.TrimSuffix(name, filepath.Ext(name)), payload, name); err != nil {
			return fail(err)
		}
		changed = true
	case c.rm != "":
		v, err := resolveVoucher(t, c.rm)
		if err != nil {
			return fail(err)
		}
		if !confirm(fmt.Sprintf("Delete voucher %q?", v.Title), c.yes) {
			fmt.Println("Aborted.")
			return subcommands.ExitSuccess
		}
		if t, err = t.RemoveVoucher(v.ID); err != nil {
			return fail(err)
		}
		changed = true
	}
	if changed {
		if err := saveTrip(s, t); err != nil {
			return fail(err)
		}
	}

	if len(t.Vouchers) == 0 {
		fmt.Println("No vouchers.")
		return subcommands.ExitSuccess
	}
	for i, v := range t.Vouchers {
		fmt.Printf("%d. %s (%s, added %s)\n", i+1, v.Title, v.Filename, v.CreatedAt.Format("2006-01-02"))
	}
	return subcommands.ExitSuccess
}

func resolveVoucher(t tripbook.Trip, ref string) (tripbook.Voucher, error) {
	var matches []tripbook.Voucher
	q := strings.ToLower(ref)
	for i, v := range t.Vouchers {
		if fmt.Sprint(i+1) == ref ||
			strings.HasPrefix(v.ID, ref) ||
			strings.Contains(strings.ToLower(v.Title), q) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return tripbook.Voucher{}, fmt.Errorf("no voucher matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return tripbook.Voucher{}, fmt.Errorf("multiple vouchers match %q", ref)
	}
}

type memoCmd struct {
	clear bool
}

func (*memoCmd) Name() string     { return "memo" }
func (*memoCmd) Synopsis() string { return "show or set the trip memo" }
func (*memoCmd) Usage() string {
	return `tbk memo [-clear | <text>]

  Without arguments, shows the active trip's memo. With text, replaces it.
`
}

func (c *memoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Erase the memo.")
}

func (c *memoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}

	switch {
	case c.clear:
		t.Memo = ""
	case f.NArg() > 0:
		t.Memo = strings.Join(f.Args(), " ")
	default:
		if t.Memo == "" {
			fmt.Println("No memo.")
		} else {
			printMarkdown(t.Memo)
		}
		return subcommands.ExitSuccess
	}
	if err := saveTrip(s, t); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
