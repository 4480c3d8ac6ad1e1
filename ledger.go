package stocks

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/etnz/stocks/queue"
	"go.uber.org/zap"
)

var (
	// ErrInsufficientHoldings is returned when selling more shares than held.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrInvalidVolume is returned for a volume that is not strictly positive.
	ErrInvalidVolume = errors.New("volume must be positive")
	// ErrInvalidPrice is returned for a price out of range.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrCurrencyMismatch is returned when a price is not in the ledger currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInconsistent is returned by Verify when the ledger state is corrupted.
	ErrInconsistent = errors.New("inconsistent ledger")
)

// Ledger tracks the open lots of a single security, and settles sales against
// them in first-in first-out order.
//
// Every sale is recorded in an append-only history, one entry per open lot
// consumed, and its profit is added to the proceeds.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	currency string
	holdings *queue.Queue[Lot] // open lots, oldest first
	history  *queue.Queue[Lot] // sales, in execution order
	proceeds Money             // sum of the history profits
	held     int               // sum of the open lots volumes
	log      *zap.Logger
}

// LedgerOption configures a Ledger created by NewLedger.
type LedgerOption func(*Ledger)

// WithLogger sets the logger used to trace buys and sells.
func WithLogger(log *zap.Logger) LedgerOption {
	return func(l *Ledger) { l.log = log }
}

// WithLimit bounds the number of open lots and of history entries the
// ledger can hold. Operations that need more fail with queue.ErrAllocation.
func WithLimit(n int) LedgerOption {
	return func(l *Ledger) {
		l.holdings = queue.New[Lot](queue.WithLimit(n))
		l.history = queue.New[Lot](queue.WithLimit(n))
	}
}

// NewLedger creates an empty ledger for a security priced in currency.
func NewLedger(currency string, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		currency: currency,
		holdings: queue.New[Lot](),
		history:  queue.New[Lot](),
		proceeds: M(0, currency),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Currency returns the currency of the ledger prices.
func (l *Ledger) Currency() string { return l.currency }

// Held returns the number of shares currently held.
func (l *Ledger) Held() int { return l.held }

// Proceeds returns the cumulative profit realized by all sales.
func (l *Ledger) Proceeds() Money { return l.proceeds }

// Holdings iterates over the open lots, oldest first.
func (l *Ledger) Holdings() iter.Seq[Lot] { return l.holdings.All() }

// History iterates over the sales history, oldest first.
func (l *Ledger) History() iter.Seq[Lot] { return l.history.All() }

// checkPrice validates price and returns it in the ledger currency.
func (l *Ledger) checkPrice(price Money) (Money, error) {
	switch price.cur {
	case l.currency:
	case "":
		price.cur = l.currency
	default:
		return Money{}, fmt.Errorf("%w: price in %s, ledger in %s", ErrCurrencyMismatch, price.cur, l.currency)
	}
	if price.IsNegative() {
		return Money{}, fmt.Errorf("%w: %v is negative", ErrInvalidPrice, price)
	}
	return price, nil
}

// Buy records the purchase of volume shares at price as a new open lot.
func (l *Ledger) Buy(volume int, price Money) error {
	if volume <= 0 {
		return fmt.Errorf("buy %d shares: %w", volume, ErrInvalidVolume)
	}
	if volume > math.MaxInt-l.held {
		return fmt.Errorf("buy %d shares with %d held: %w: too many shares", volume, l.held, ErrInvalidVolume)
	}
	price, err := l.checkPrice(price)
	if err != nil {
		return fmt.Errorf("buy %d shares: %w", volume, err)
	}
	if price.IsZero() {
		return fmt.Errorf("buy %d shares: %w: purchase price must be positive", volume, ErrInvalidPrice)
	}
	if err := l.holdings.Push(Lot{Volume: volume, Price: price}); err != nil {
		return fmt.Errorf("buy %d shares: %w", volume, err)
	}
	l.held += volume
	l.log.Debug("buy", zap.Int("volume", volume), zap.Stringer("price", price), zap.Int("held", l.held))
	return nil
}

// BuyLot records lot as a new open lot. Only its volume and price are used.
func (l *Ledger) BuyLot(lot Lot) error { return l.Buy(lot.Volume, lot.Price) }

// Sell sells volume shares at price, and returns the profit it realized.
//
// Shares are taken from the open lots in FIFO order: the oldest lots are
// consumed first, and the last one is split if it holds more shares than
// needed. A history entry is recorded for every lot consumed.
//
// Selling more than Held() fails with ErrInsufficientHoldings. A failed Sell
// leaves the ledger unchanged.
func (l *Ledger) Sell(volume int, price Money) (Money, error) {
	if volume <= 0 {
		return Money{}, fmt.Errorf("sell %d shares: %w", volume, ErrInvalidVolume)
	}
	price, err := l.checkPrice(price)
	if err != nil {
		return Money{}, fmt.Errorf("sell %d shares: %w", volume, err)
	}
	if volume > l.held {
		return Money{}, fmt.Errorf("sell %d shares with %d held: %w", volume, l.held, ErrInsufficientHoldings)
	}

	// Count the entries this sale will write, and make room for them before
	// touching the open lots.
	entries, need := 0, volume
	for lot := range l.holdings.All() {
		entries++
		need -= lot.Volume
		if need <= 0 {
			break
		}
	}
	if err := l.history.Grow(entries); err != nil {
		return Money{}, fmt.Errorf("sell %d shares: %w", volume, err)
	}

	profit := M(0, l.currency)
	remaining := volume
	for remaining > 0 {
		head, err := l.holdings.Front()
		if err != nil {
			return profit, fmt.Errorf("sell %d shares: %w: %w", volume, ErrInconsistent, err)
		}
		matched := min(head.Volume, remaining)
		sale := Lot{
			Volume: matched,
			Price:  price,
			Cost:   head.Price,
			Profit: price.Sub(head.Price).Mul(matched),
		}
		if head.Volume > remaining {
			// the lot is split, what is left stays at the head.
			head.Volume -= remaining
		} else if _, err := l.holdings.PopFront(); err != nil {
			return profit, fmt.Errorf("sell %d shares: %w: %w", volume, ErrInconsistent, err)
		}
		if err := l.history.Push(sale); err != nil {
			return profit, fmt.Errorf("sell %d shares: %w", volume, err)
		}
		remaining -= matched
		l.held -= matched
		l.proceeds = l.proceeds.Add(sale.Profit)
		profit = profit.Add(sale.Profit)
	}

	l.log.Debug("sell",
		zap.Int("volume", volume),
		zap.Stringer("price", price),
		zap.Int("lots", entries),
		zap.Stringer("profit", profit),
		zap.Int("held", l.held),
	)
	return profit, nil
}

// Snapshot returns a copy of the ledger state.
//
// The snapshot does not share memory with the ledger.
func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{
		Currency: l.currency,
		Holdings: make([]Lot, 0, l.holdings.Len()),
		History:  make([]Lot, 0, l.history.Len()),
		Proceeds: l.proceeds,
	}
	for lot := range l.holdings.All() {
		s.Holdings = append(s.Holdings, lot)
	}
	for lot := range l.history.All() {
		s.History = append(s.History, lot)
	}
	return s
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := *l
	c.holdings = l.holdings.Clone()
	c.history = l.history.Clone()
	return &c
}

// Verify checks the ledger invariants: every open lot holds shares, the held
// volume is the sum of the open lots, and the proceeds are the sum of the
// history profits.
func (l *Ledger) Verify() error {
	held := 0
	for lot := range l.holdings.All() {
		if lot.Volume <= 0 {
			return fmt.Errorf("%w: open lot with %d shares", ErrInconsistent, lot.Volume)
		}
		held += lot.Volume
	}
	if held != l.held {
		return fmt.Errorf("%w: open lots hold %d shares, expected %d", ErrInconsistent, held, l.held)
	}

	proceeds := M(0, l.currency)
	for lot := range l.history.All() {
		proceeds = proceeds.Add(lot.Profit)
	}
	if !proceeds.Equal(l.proceeds) {
		return fmt.Errorf("%w: history profits sum to %v, proceeds are %v", ErrInconsistent, proceeds, l.proceeds)
	}
	return nil
}
