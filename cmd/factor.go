package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/yxtq/tzero"
)

// factorCmd holds the flags for the 'factor' subcommand.
type factorCmd struct {
	dividend    float64
	rightsRatio float64
	rightsPrice float64
	bonus       float64
	split       float64
	price       float64
	shares      int64
	special     float64
}

func (*factorCmd) Name() string     { return "factor" }
func (*factorCmd) Synopsis() string { return "compute the adjustment factor and amount of a corporate action" }
func (*factorCmd) Usage() string {
	return `tzc factor [-div <per-share>] [-rights <ratio> -rights-price <price>] [-bonus <ratio>] [-split <ratio>] [-price <quote>] [-shares <n>] [-special <amount>]

  Computes the multiplicative adjustment factor (AF) and the additive
  cash amount (E) for a day's corporate actions. Dividends only feed E.
`
}

func (c *factorCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.dividend, "div", 0, "Cash dividend per share")
	f.Float64Var(&c.rightsRatio, "rights", 0, "Rights issue ratio, new shares per held share")
	f.Float64Var(&c.rightsPrice, "rights-price", 0, "Rights issue subscription price")
	f.Float64Var(&c.bonus, "bonus", 0, "Bonus shares per held share")
	f.Float64Var(&c.split, "split", 0, "Split ratio, new shares per old share")
	f.Float64Var(&c.price, "price", 0, "Current market price, needed for rights issues")
	f.Int64Var(&c.shares, "shares", 0, "Held shares, to spread the dividend over")
	f.Float64Var(&c.special, "special", 0, "Special cash adjustment")
}

func (c *factorCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	af := tzero.AdjustmentFactor(
		decimal.NewFromFloat(c.dividend),
		decimal.NewFromFloat(c.rightsRatio),
		decimal.NewFromFloat(c.rightsPrice),
		decimal.NewFromFloat(c.bonus),
		decimal.NewFromFloat(c.split),
		decimal.NewFromFloat(c.price),
	)
	e := tzero.AdjustmentAmount(decimal.NewFromFloat(c.dividend), c.shares, tzero.M(c.special))

	fmt.Printf("AF = %s\n", af)
	fmt.Printf("E  = %s\n", e)
	return subcommands.ExitSuccess
}
