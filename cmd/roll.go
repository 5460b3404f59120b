package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/yxtq/tzero"
	"github.com/yxtq/tzero/date"
	"github.com/yxtq/tzero/renderer"
)

// rollCmd holds the flags for the 'roll' subcommand.
type rollCmd struct {
	account string
	stock   string
	name    string
	day     string
	af      float64
	amount  float64
	seed    float64
	seedDay string
	actions string
	history bool
}

func (*rollCmd) Name() string     { return "roll" }
func (*rollCmd) Synopsis() string { return "roll a ledger forward by one trading day" }
func (*rollCmd) Usage() string {
	return `tzc roll -a <account> -s <stock> [-d <date>] [-af <factor>] [-e <amount>] [-seed <value> [-seed-d <date>]] [-actions <file>]

  Rolls the ledger of one account and stock forward:

      current = previous × AF + E

  -seed initializes the ledger before rolling. -actions reads a
  corporate-action JSON feed and derives the factor and amount from the
  stock's events when -af and -e are not given.
`
}

func (c *rollCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account of the ledger")
	f.StringVar(&c.stock, "s", "", "Stock code of the ledger")
	f.StringVar(&c.name, "name", "", "Stock name, kept on the ledger")
	f.StringVar(&c.day, "d", "", "Trade date (defaults to today)")
	f.Float64Var(&c.af, "af", 0, "Adjustment factor (defaults to the event product, or 1)")
	f.Float64Var(&c.amount, "e", 0, "Adjustment amount")
	f.Float64Var(&c.seed, "seed", 0, "Seed value to initialize the ledger before rolling")
	f.StringVar(&c.seedDay, "seed-d", "", "Trade date of the seed (defaults to the day before -d)")
	f.StringVar(&c.actions, "actions", "", "Corporate-action JSON feed to apply")
	f.BoolVar(&c.history, "history", false, "Also display the calculation history")
}

func (c *rollCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := date.Today()
	if c.day != "" {
		var err error
		on, err = date.Parse(c.day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	calc := tzero.NewLedgerRollingCalculator()

	if c.seed != 0 {
		seedDay := on.Add(-1)
		if c.seedDay != "" {
			var err error
			seedDay, err = date.Parse(c.seedDay)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if err := calc.InitializeLedger(c.account, c.stock, c.name, tzero.M(c.seed), seedDay); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var events []tzero.AdjustmentEvent
	if c.actions != "" {
		feed, err := os.Open(c.actions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open actions feed: %v\n", err)
			return subcommands.ExitFailure
		}
		all, err := tzero.ParseAdjustmentFeed(feed)
		feed.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, e := range all {
			if e.StockCode != c.stock || !e.TradeDate.Equal(on) {
				continue
			}
			calc.AddAdjustmentEvent(e)
			events = append(events, e)
		}
	}

	roll := tzero.Roll{
		AccountID: c.account,
		StockCode: c.stock,
		StockName: c.name,
		Amount:    tzero.M(c.amount),
		TradeDate: on,
		Events:    events,
	}
	if c.af != 0 {
		roll.Factor = decimal.NewFromFloat(c.af)
	}
	if c.amount == 0 && len(events) > 0 {
		roll.Amount = tzero.CompositeAmount(events)
	}

	current, err := calc.Roll(roll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	fmt.Printf("Ledger %s/%s on %s: %s\n", c.account, c.stock, on, current)
	printMarkdown(renderer.RollingMarkdown(calc))
	if c.history {
		printMarkdown(renderer.HistoryMarkdown(calc, tzero.LedgerKey{AccountID: c.account, StockCode: c.stock}))
	}
	return subcommands.ExitSuccess
}
