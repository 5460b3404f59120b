// Package cmd implements the CLI application to run the T0 desk.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yxtq/tzero"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "positions")
	c.Register(&t0Cmd{}, "positions")
	c.Register(&ordersCmd{}, "positions")
	c.Register(&riskCmd{}, "positions")

	c.Register(&rollCmd{}, "ledgers")
	c.Register(&factorCmd{}, "ledgers")
	c.Register(&bookCmd{}, "ledgers")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cctjFile = flag.String("cctj", "cctj.csv", "Path to the broker holdings file (CCTJ dump)")

// LoadDesk parses the holdings file and loads it into a fresh manager.
// Skipped feed lines are reported on stderr, they never fail the command.
func LoadDesk() (*tzero.PositionManager, *tzero.CCTJResult, error) {
	res, err := tzero.ParseCCTJFile(*cctjFile)
	if err != nil {
		return nil, nil, err
	}
	for _, msg := range res.Errors {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s\n", msg)
	}

	m := tzero.NewPositionManager()
	if _, err := m.Load(res.Records); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return m, res, nil
}
