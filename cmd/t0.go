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

// t0Cmd holds the flags for the 't0' subcommand.
type t0Cmd struct {
	account string
	stock   string
	volume  int64
	sell    float64
	buy     float64
	kind    string
}

func (*t0Cmd) Name() string     { return "t0" }
func (*t0Cmd) Synopsis() string { return "execute a same-day round trip against the loaded positions" }
func (*t0Cmd) Usage() string {
	return `tzc t0 [-cctj <file>] -a <account> -s <stock> -v <volume> -sell <price> -buy <price> [-type SELL_FIRST|BUY_FIRST]

  Loads the holdings file, executes one round trip and displays the
  account afterwards. A sell-first trip sells held shares and buys them
  back; a buy-first trip buys extra shares and sells old inventory.
`
}

func (c *t0Cmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account executing the round trip")
	f.StringVar(&c.stock, "s", "", "Stock code")
	f.Int64Var(&c.volume, "v", 0, "Volume in shares")
	f.Float64Var(&c.sell, "sell", 0, "Sell price")
	f.Float64Var(&c.buy, "buy", 0, "Buy price")
	f.StringVar(&c.kind, "type", "SELL_FIRST", "Round trip type (SELL_FIRST, BUY_FIRST)")
}

func (c *t0Cmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := tzero.ParseT0Type(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, _, err := LoadDesk()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var v *tzero.VirtualPosition
	var ok bool
	switch kind {
	case tzero.SellFirst:
		v, ok = m.ExecuteT0SellFirst(c.account, c.stock, c.volume, tzero.P(c.sell), tzero.P(c.buy))
	default:
		v, ok = m.ExecuteT0BuyFirst(c.account, c.stock, c.volume, tzero.P(c.buy), tzero.P(c.sell))
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: cannot execute %s of %d %s for %s: check the account and the sellable volume\n",
			kind, c.volume, c.stock, c.account)
		return subcommands.ExitFailure
	}

	fmt.Printf("Executed %s: %s closed with %s (%s)\n", v.PositionID, kind, v.ProfitLoss.SignedString(), v.ProfitRate.SignedString())
	printMarkdown(renderer.AccountMarkdown(m.Account(c.account)))
	return subcommands.ExitSuccess
}
