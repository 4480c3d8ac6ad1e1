package stocks

// Lot is a block of shares traded at a single price.
//
// An open lot is a purchase not yet fully sold: Price is the purchase price,
// Cost and Profit are zero.
//
// A history lot records the sale of Volume shares taken from a single open
// lot: Price is the sale price, Cost the purchase price of the open lot, and
// Profit the realized profit (Price - Cost) * Volume.
type Lot struct {
	Volume int
	Price  Money
	Cost   Money
	Profit Money
}

// IsSale reports whether l is a history lot.
func (l Lot) IsSale() bool { return !l.Cost.IsZero() }

// Amount returns the total value of the lot at its price.
func (l Lot) Amount() Money { return l.Price.Mul(l.Volume) }

func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("volume", l.Volume)
	w.Append("price", l.Price)
	w.AppendIf(l.IsSale(), "cost", l.Cost)
	w.AppendIf(l.IsSale(), "profit", l.Profit)
	return w.MarshalJSON()
}

// Equal reports whether l and m have the same volume and amounts.
func (l Lot) Equal(m Lot) bool {
	return l.Volume == m.Volume &&
		l.Price.Equal(m.Price) &&
		l.Cost.value.Equal(m.Cost.value) &&
		l.Profit.value.Equal(m.Profit.value)
}
