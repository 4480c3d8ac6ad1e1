package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	json     bool
	markdown bool
	strict   bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "replay command files and report on the final portfolio" }
func (*runCmd) Usage() string {
	return `stocks run [-json | -md] [-strict] <file>...

  Replays the buy, sell, display and quit commands of each file, in order,
  on a single portfolio, then prints the final report. Use - to read the
  standard input.

Usage Examples:
$ echo "buy 100 1.00 buy 100 1.50 sell 150 2.00" | stocks run -
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the final portfolio as JSON")
	f.BoolVar(&c.markdown, "md", false, "print the final portfolio as rendered markdown")
	f.BoolVar(&c.strict, "strict", false, "stop at the first command that fails")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.json && c.markdown {
		fail("Error: -json and -md flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fail("Error: at least one command file is required.")
		return subcommands.ExitUsageError
	}

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
	for _, name := range f.Args() {
		if err := c.replay(ctx, ledger, name, log); err != nil {
			fail("Error replaying %q: %v", name, err)
			return subcommands.ExitFailure
		}
	}

	if err := ledger.Verify(); err != nil {
		fail("Error: %v", err)
		return subcommands.ExitFailure
	}
	if err := c.report(os.Stdout, ledger.Snapshot()); err != nil {
		fail("Error printing the report: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// replay runs the commands of the named file on ledger. The name - stands for
// the standard input.
func (c *runCmd) replay(ctx context.Context, ledger *stocks.Ledger, name string, log *zap.Logger) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	in := NewInterpreter(ledger, os.Stdout, log.With(zap.String("file", name)))
	if c.strict {
		return in.RunStrict(ctx, r)
	}
	return in.Run(ctx, r)
}

func (c *runCmd) report(w io.Writer, s stocks.Snapshot) error {
	switch {
	case c.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case c.markdown:
		printMarkdown(renderer.Markdown(s))
		return nil
	default:
		_, err := fmt.Fprint(w, renderer.Text(s))
		return err
	}
}
