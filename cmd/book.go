package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yxtq/tzero"
	"github.com/yxtq/tzero/date"
	"github.com/yxtq/tzero/renderer"
)

// bookCmd holds the flags for the 'book' subcommand.
type bookCmd struct {
	day string
	out string
}

func (*bookCmd) Name() string     { return "book" }
func (*bookCmd) Synopsis() string { return "snapshot the loaded positions into a daily ledger book" }
func (*bookCmd) Usage() string {
	return `tzc book [-cctj <file>] [-d <date>] [-o <file>]

  Loads the holdings file, freezes every position into the daily ledger
  book and displays it. -o also writes the book as CSV.
`
}

func (c *bookCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Trade date of the book (defaults to the file's, then today)")
	f.StringVar(&c.out, "o", "", "CSV file to write the book to")
}

func (c *bookCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, res, err := LoadDesk()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	on := res.TradeDate
	if c.day != "" {
		on, err = date.Parse(c.day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if on.IsZero() {
		on = date.Today()
	}

	b := tzero.NewLedgerBook()
	b.Snapshot(m, on)
	printMarkdown(renderer.BookMarkdown(b, b.Summary(on)))

	if c.out != "" {
		out, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot create %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := tzero.ExportLedgerBook(out, b); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Book written to %s\n", c.out)
	}
	return subcommands.ExitSuccess
}
