package stocks

import "slices"

// Snapshot is a point in time copy of a Ledger.
type Snapshot struct {
	Currency string
	Holdings []Lot // open lots, oldest first
	History  []Lot // sales, in execution order
	Proceeds Money
}

// Held returns the number of shares held in the snapshot.
func (s Snapshot) Held() int {
	held := 0
	for _, lot := range s.Holdings {
		held += lot.Volume
	}
	return held
}

// Equal reports whether s and t hold the same lots and proceeds.
func (s Snapshot) Equal(t Snapshot) bool {
	return s.Currency == t.Currency &&
		s.Proceeds.Equal(t.Proceeds) &&
		slices.EqualFunc(s.Holdings, t.Holdings, Lot.Equal) &&
		slices.EqualFunc(s.History, t.History, Lot.Equal)
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", s.Currency)
	w.Append("holdings", s.Holdings)
	w.Append("history", s.History)
	w.Append("held", s.Held())
	w.Append("proceeds", s.Proceeds)
	return w.MarshalJSON()
}
