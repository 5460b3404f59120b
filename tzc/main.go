package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	"github.com/yxtq/tzero/cmd"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	// shell completion over the global flags, install with COMP_INSTALL=1 tzc
	complete.CommandLine()
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
