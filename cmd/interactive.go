package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

// interactiveCmd holds the flags for the 'interactive' subcommand.
type interactiveCmd struct {
	quiet bool
}

func (*interactiveCmd) Name() string     { return "interactive" }
func (*interactiveCmd) Synopsis() string { return "buy and sell shares from commands typed on stdin" }
func (*interactiveCmd) Usage() string {
	return `stocks interactive [-q]

  Reads buy, sell, display and quit commands from the standard input and
  applies them to an empty portfolio. Lots are sold first-in first-out.
  A final report is displayed on quit.

Usage Examples:
$ stocks interactive
> buy 200 $1.57
> sell 150 $2.15
> quit
`
}

func (c *interactiveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "do not print the instructions and the prompt")
}

func (c *interactiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fail("Error loading configuration: %v", err)
		return subcommands.ExitUsageError
	}
	log, err := NewLogger(cfg.Verbose)
	if err != nil {
		fail("Error creating logger: %v", err)
		return subcommands.ExitFailure
	}
	defer log.Sync()

	ledger := stocks.NewLedger(cfg.Currency, stocks.WithLogger(log))
	in := NewInterpreter(ledger, os.Stdout, log)
	if !c.quiet {
		fmt.Print(Instructions)
		in.Prompt = "> "
	}

	if err := in.Run(ctx, os.Stdin); err != nil {
		fail("Error reading commands: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Print(renderer.Text(ledger.Snapshot()))
	return subcommands.ExitSuccess
}
