package stocks

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// mustBuy buys or panics, tests use it to set up a ledger.
func mustBuy(l *Ledger, volume int, price float64) *Ledger {
	if err := l.Buy(volume, USD(price)); err != nil {
		panic(err)
	}
	return l
}
