package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yxtq/tzero"
	"github.com/yxtq/tzero/renderer"
)

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	account string
	asset   float64
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "run the risk rules against the loaded positions" }
func (*riskCmd) Usage() string {
	return `tzc risk [-cctj <file>] -asset <total> [-a <account>]

  Loads the holdings file and evaluates every risk rule: position and
  cash limits, concentration, stop losses, daily loss. -asset is the
  account's total asset (cash plus market value) the ratios run against.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account to check. Defaults to every account.")
	f.Float64Var(&c.asset, "asset", 0, "Total asset of the account")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -asset must be positive\n")
		return subcommands.ExitUsageError
	}

	m, _, err := LoadDesk()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	accounts := m.AccountIDs()
	if c.account != "" {
		accounts = []string{c.account}
	}

	checker := tzero.NewRiskChecker(tzero.DefaultRiskParams())
	var alerts []tzero.RiskAlert
	for _, id := range accounts {
		a := m.Account(id)
		if a == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", id)
			return subcommands.ExitFailure
		}
		alerts = append(alerts, checker.CheckAccount(a, tzero.M(c.asset))...)
	}

	printMarkdown(renderer.RiskMarkdown(alerts))
	if !tzero.CanTrade(alerts) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
