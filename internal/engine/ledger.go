package engine

// Ledger is the append-only, time-ordered record of executed trades. It is
// the sole source of truth for the last traded price and for user positions.
//
// Positions are tallied incrementally as trades are appended instead of
// replaying the full history on every lookup. ReplayPosition recomputes a
// position from scratch; the two must always agree.
type Ledger struct {
	trades    []Trade
	lastPrice *int64
	positions map[string]int64
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		positions: make(map[string]int64),
	}
}

// Append records executed trades in match order, updating the last traded
// price and the position tallies in the same step.
func (l *Ledger) Append(trades ...Trade) {
	for _, t := range trades {
		l.trades = append(l.trades, t)
		l.positions[t.Buyer] += t.Quantity
		l.positions[t.Seller] -= t.Quantity

		price := t.Price
		l.lastPrice = &price
	}
}

// LastPrice returns the price of the most recent trade, or nil if no trade
// has ever executed.
func (l *Ledger) LastPrice() *int64 {
	if l.lastPrice == nil {
		return nil
	}
	price := *l.lastPrice
	return &price
}

// Position returns the user's net share holding: shares bought minus shares
// sold across the entire trade history.
func (l *Ledger) Position(user string) int64 {
	return l.positions[user]
}

// ReplayPosition recomputes a position by walking the full trade history.
// Kept as the reference implementation the incremental tally is checked
// against.
func (l *Ledger) ReplayPosition(user string) int64 {
	var shares int64
	for _, t := range l.trades {
		if t.Buyer == user {
			shares += t.Quantity
		}
		if t.Seller == user {
			shares -= t.Quantity
		}
	}
	return shares
}

// Len returns the number of recorded trades
func (l *Ledger) Len() int {
	return len(l.trades)
}

// Trades returns a copy of the full trade history in execution order
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}
