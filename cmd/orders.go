package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yxtq/tzero"
	"github.com/yxtq/tzero/date"
)

// ordersCmd holds the flags for the 'orders' subcommand.
type ordersCmd struct {
	account string
	stock   string
	name    string
	market  string
	volume  int64
	open    float64
	close   float64
	kind    string
	out     string
	format  string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "generate a pre-filed order batch for a round trip" }
func (*ordersCmd) Usage() string {
	return `tzc orders -a <account> -s <stock> -v <volume> -open <price> -close <price> [-type SELL_FIRST|BUY_FIRST] [-o <file>] [-format csv|dbf]

  Generates the two limit orders of a planned round trip, validates them
  against the terminal's import rules and writes the batch file.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account filing the orders")
	f.StringVar(&c.stock, "s", "", "Stock code")
	f.StringVar(&c.name, "name", "", "Stock name, carried into the batch file")
	f.StringVar(&c.market, "market", "1", "Market id")
	f.Int64Var(&c.volume, "v", 0, "Volume in shares")
	f.Float64Var(&c.open, "open", 0, "Price of the opening leg")
	f.Float64Var(&c.close, "close", 0, "Price of the closing leg")
	f.StringVar(&c.kind, "type", "SELL_FIRST", "Round trip type (SELL_FIRST, BUY_FIRST)")
	f.StringVar(&c.out, "o", "orders.dbf", "Output file")
	f.StringVar(&c.format, "format", "dbf", "Output format (csv, dbf)")
}

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := tzero.ParseT0Type(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	v := tzero.NewVirtualPosition(c.account, c.stock)
	if err := v.Open(c.volume, tzero.P(c.open), kind); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	batch := tzero.NewOrderBatch()
	for _, o := range tzero.GenerateT0Orders(v, c.market, c.name, tzero.P(c.close), date.Today()) {
		if err := batch.Add(o); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	out, err := os.Create(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	switch c.format {
	case "csv":
		err = tzero.ExportOrdersCSV(out, batch)
	case "dbf":
		err = tzero.ExportOrdersDBF(out, batch)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	s := batch.Summary()
	fmt.Printf("Batch %s: %d orders (%d buy / %d sell) written to %s\n",
		s.BatchID, s.Orders, s.BuyOrders, s.SellOrders, c.out)
	return subcommands.ExitSuccess
}
