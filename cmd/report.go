package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yxtq/tzero/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	account string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the desk positions from a holdings file" }
func (*reportCmd) Usage() string {
	return `tzc report [-cctj <file>] [-a <account>]

  Parses the broker holdings file and displays the desk positions,
  or a single account with its holdings and round trips.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account to report on. Defaults to the whole desk.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, _, err := LoadDesk()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.account == "" {
		printMarkdown(renderer.DeskMarkdown(m.Summary()))
		return subcommands.ExitSuccess
	}

	a := m.Account(c.account)
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", c.account)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountMarkdown(a))
	return subcommands.ExitSuccess
}
