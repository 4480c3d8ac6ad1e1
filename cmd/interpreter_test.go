package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/stocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTokens(s string) tokens {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Split(bufio.ScanWords)
	return tokens{sc}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    Command
		wantErr error
	}{
		{input: "buy 200 $1.57", want: Command{Verb: Buy, Volume: 200, Price: stocks.M(1.57, "USD")}},
		{input: "sell 150 2.15", want: Command{Verb: Sell, Volume: 150, Price: stocks.M(2.15, "USD")}},
		{input: "  display  ", want: Command{Verb: Display}},
		{input: "quit", want: Command{Verb: Quit}},
		{input: "", wantErr: io.EOF},
		{input: "hold 10 $1", wantErr: ErrSyntax},
		{input: "buy", wantErr: ErrSyntax},
		{input: "buy 10", wantErr: ErrSyntax},
		{input: "buy ten $1", wantErr: ErrSyntax},
		{input: "sell 10 $one", wantErr: ErrSyntax},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parse(newTokens(tc.input), "USD")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want.Verb, got.Verb)
			assert.Equal(t, tc.want.Volume, got.Volume)
			assert.True(t, tc.want.Price.Equal(got.Price), "price %v, want %v", got.Price, tc.want.Price)
		})
	}
}

func TestInterpreter_Run(t *testing.T) {
	script := `
buy 100 $1.00
buy 100 $1.50
sell 150 $2.00
display
`
	var out strings.Builder
	ledger := stocks.NewLedger("USD")
	in := NewInterpreter(ledger, &out, zap.NewNop())

	require.NoError(t, in.Run(context.Background(), strings.NewReader(script)))

	want := "Currently held:\n" +
		"\tBought 50 shares at $1.50\n" +
		"Sell History:\n" +
		"\tSold 100 shares at $2.00 for a profit of $100.00\n" +
		"\tSold 50 shares at $2.00 for a profit of $25.00\n" +
		"Proceeds: $125.00\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 50, ledger.Held())
}

func TestInterpreter_RunReportsErrors(t *testing.T) {
	script := "buy 50 1.00 sell 100 1.00 jump buy 10 2.00 display"
	var out strings.Builder
	ledger := stocks.NewLedger("USD")
	in := NewInterpreter(ledger, &out, zap.NewNop())

	require.NoError(t, in.Run(context.Background(), strings.NewReader(script)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Error: sell 100 shares with 50 held: insufficient holdings")
	assert.Contains(t, lines[1], `Error: syntax error: unknown command "jump"`)
	assert.Equal(t, "Currently held:", lines[2])
	assert.Equal(t, 60, ledger.Held())
	assert.NoError(t, ledger.Verify())
}

func TestInterpreter_RunStrict(t *testing.T) {
	script := "buy 50 1.00 sell 100 1.00 buy 10 2.00"
	ledger := stocks.NewLedger("USD")
	in := NewInterpreter(ledger, io.Discard, zap.NewNop())

	err := in.RunStrict(context.Background(), strings.NewReader(script))
	assert.ErrorIs(t, err, stocks.ErrInsufficientHoldings)
	assert.ErrorContains(t, err, "command 2")
	assert.Equal(t, 50, ledger.Held(), "commands after the failure must not run")
}

func TestInterpreter_Quit(t *testing.T) {
	var out strings.Builder
	ledger := stocks.NewLedger("USD")
	in := NewInterpreter(ledger, &out, zap.NewNop())
	in.Prompt = "> "

	require.NoError(t, in.Run(context.Background(), strings.NewReader("buy 10 $1 quit buy 10 $1")))
	assert.Equal(t, 10, ledger.Held(), "commands after quit must not run")
	assert.Equal(t, "> > ", out.String())
}

func TestInterpreter_NoLogger(t *testing.T) {
	var out strings.Builder
	in := &Interpreter{Ledger: stocks.NewLedger("USD"), Out: &out}
	require.NoError(t, in.Run(context.Background(), strings.NewReader("buy 10 1 sell 5 2 sell 50 2")))
	assert.Equal(t, 5, in.Ledger.Held())
	assert.Contains(t, out.String(), "Error: ")

	in = NewInterpreter(stocks.NewLedger("USD"), io.Discard, nil)
	require.NotNil(t, in.Log)
	_, err := in.Exec(Command{Verb: Sell, Volume: 1, Price: stocks.M(1, "USD")})
	assert.ErrorIs(t, err, stocks.ErrInsufficientHoldings)
}

func TestInterpreter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := NewInterpreter(stocks.NewLedger("USD"), io.Discard, zap.NewNop())
	err := in.Run(ctx, strings.NewReader("buy 10 $1"))
	assert.True(t, errors.Is(err, context.Canceled), "Run() error = %v, want %v", err, context.Canceled)
}

func TestInterpreter_Exec(t *testing.T) {
	ledger := stocks.NewLedger("EUR")
	in := NewInterpreter(ledger, io.Discard, zap.NewNop())

	stop, err := in.Exec(Command{Verb: Buy, Volume: 10, Price: stocks.M(2, "EUR")})
	require.NoError(t, err)
	assert.False(t, stop)

	_, err = in.Exec(Command{Verb: Buy, Volume: 10, Price: stocks.M(2, "USD")})
	assert.ErrorIs(t, err, stocks.ErrCurrencyMismatch)

	_, err = in.Exec(Command{Verb: "hold"})
	assert.ErrorIs(t, err, ErrSyntax)

	stop, err = in.Exec(Command{Verb: Quit})
	require.NoError(t, err)
	assert.True(t, stop)
}
