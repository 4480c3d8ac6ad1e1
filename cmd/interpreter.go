package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"go.uber.org/zap"
)

// ErrSyntax is returned for a command that cannot be parsed.
var ErrSyntax = errors.New("syntax error")

// Instructions describes the commands understood by the Interpreter.
const Instructions = `This program will allow you to buy and sell stocks. The actions are:
  buy 200 $1.57   - Buy 200 shares at $1.57
  sell 150 $2.15  - Sell 150 shares at $2.15
  display         - Display your current stock portfolio
  quit            - Display a final report and quit the program
`

// Verb is the action of a Command.
type Verb string

const (
	Buy     Verb = "buy"
	Sell    Verb = "sell"
	Display Verb = "display"
	Quit    Verb = "quit"
)

// Command is a parsed interpreter command. Volume and Price are only set for
// Buy and Sell.
type Command struct {
	Verb   Verb
	Volume int
	Price  stocks.Money
}

// Interpreter reads commands from a stream of whitespace separated tokens and
// applies them to a Ledger.
type Interpreter struct {
	Ledger *stocks.Ledger
	Out    io.Writer // where reports and errors are written
	Prompt string    // printed before reading each command, if not empty
	Log    *zap.Logger // nil means no logging
}

// NewInterpreter creates an interpreter on ledger, writing to out. A nil log
// disables logging.
func NewInterpreter(ledger *stocks.Ledger, out io.Writer, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{Ledger: ledger, Out: out, Log: log}
}

func (in *Interpreter) logger() *zap.Logger {
	if in.Log == nil {
		return zap.NewNop()
	}
	return in.Log
}

// tokens reads whitespace separated words.
type tokens struct {
	s *bufio.Scanner
}

func (t tokens) next() (string, bool) {
	if !t.s.Scan() {
		return "", false
	}
	return t.s.Text(), true
}

// parse reads the next command from toks. It returns io.EOF when no command
// is left.
func parse(toks tokens, currency string) (Command, error) {
	word, ok := toks.next()
	if !ok {
		return Command{}, io.EOF
	}
	cmd := Command{Verb: Verb(word)}
	switch cmd.Verb {
	case Display, Quit:
		return cmd, nil
	case Buy, Sell:
	default:
		return cmd, fmt.Errorf("%w: unknown command %q", ErrSyntax, word)
	}

	vol, ok := toks.next()
	if !ok {
		return cmd, fmt.Errorf("%w: %s needs a volume and a price", ErrSyntax, word)
	}
	price, ok := toks.next()
	if !ok {
		return cmd, fmt.Errorf("%w: %s needs a price", ErrSyntax, word)
	}

	var err error
	if cmd.Volume, err = strconv.Atoi(vol); err != nil {
		return cmd, fmt.Errorf("%w: invalid volume %q", ErrSyntax, vol)
	}
	if cmd.Price, err = stocks.ParseMoney(price, currency); err != nil {
		return cmd, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return cmd, nil
}

// Exec applies a single command to the ledger.
//
// It returns true when the command asks to stop the session.
func (in *Interpreter) Exec(cmd Command) (stop bool, err error) {
	switch cmd.Verb {
	case Buy:
		return false, in.Ledger.Buy(cmd.Volume, cmd.Price)
	case Sell:
		profit, err := in.Ledger.Sell(cmd.Volume, cmd.Price)
		if err != nil {
			return false, err
		}
		in.logger().Debug("sold",
			zap.Int("volume", cmd.Volume),
			zap.Stringer("price", cmd.Price),
			zap.Stringer("profit", profit),
		)
		return false, nil
	case Display:
		fmt.Fprint(in.Out, renderer.Text(in.Ledger.Snapshot()))
		return false, nil
	case Quit:
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown command %q", ErrSyntax, cmd.Verb)
	}
}

// Run reads and executes commands from r until quit, the end of r, or ctx is
// done.
//
// Commands that fail are reported on Out and the session goes on. Run only
// returns an error if reading r fails or ctx is done.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	return in.run(ctx, r, false)
}

// RunStrict is like Run but stops and returns the error of the first command
// that fails.
func (in *Interpreter) RunStrict(ctx context.Context, r io.Reader) error {
	return in.run(ctx, r, true)
}

func (in *Interpreter) run(ctx context.Context, r io.Reader, strict bool) error {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	toks := tokens{s}
	log := in.logger()
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if in.Prompt != "" {
			fmt.Fprint(in.Out, in.Prompt)
		}

		cmd, err := parse(toks, in.Ledger.Currency())
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			var stop bool
			stop, err = in.Exec(cmd)
			if stop {
				return nil
			}
		}
		if err == nil {
			continue
		}
		log.Debug("command failed", zap.Int("command", n), zap.String("verb", string(cmd.Verb)), zap.Error(err))
		if strict {
			return fmt.Errorf("command %d: %w", n, err)
		}
		fmt.Fprintf(in.Out, "Error: %v\n", err)
	}
	return s.Err()
}
