package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Market is a single-instrument marketplace. It owns a bid book, an ask
// book, the trade ledger, and the cached last traded price.
//
// Each Buy or Sell call is one indivisible transaction: the position check,
// the matching scan, the ledger append, the resting insert, and the book
// cleanup all happen under one lock. Independent Market values share
// nothing and may be used in parallel.
type Market struct {
	symbol string

	mu        sync.Mutex
	bids      *Book
	asks      *Book
	ledger    *Ledger
	lastPrice *int64
}

// Snapshot is a read-only projection of the market state. Field names
// follow the ledger vocabulary: price_per_share is nil until the first
// trade executes.
type Snapshot struct {
	Symbol         string  `json:"symbol"`
	OpenBuyOrders  []Order `json:"open_buy_orders"`
	OpenSellOrders []Order `json:"open_sell_orders"`
	PricePerShare  *int64  `json:"price_per_share"`
	Ledger         []Trade `json:"ledger"`
}

// NewMarket creates an empty market for a symbol
func NewMarket(symbol string) *Market {
	return &Market{
		symbol: symbol,
		bids:   NewBook(BUY),
		asks:   NewBook(SELL),
		ledger: NewLedger(),
	}
}

// Symbol returns the instrument this market trades
func (m *Market) Symbol() string {
	return m.symbol
}

// SeedAsk rests a sell order without the usual position check. It models
// the listing event that brings the initial float to market, before any
// trade history exists for the offering owner.
func (m *Market) SeedAsk(owner string, quantity, price int64) error {
	if quantity <= 0 || price < 0 {
		return ErrInvalidOrder
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.asks.Insert(&Order{Owner: owner, Quantity: quantity, Price: price})
	return nil
}

// Buy fills the request against resting asks in ascending price order.
// Each fill executes at the resting order's price, never the incoming
// limit. Whatever cannot be filled rests on the bid book at the limit
// price; a buy therefore never fails for lack of liquidity, and no funds
// are checked or debited.
func (m *Market) Buy(owner string, quantity, price int64) (*OrderResult, error) {
	if quantity <= 0 || price < 0 {
		return nil, ErrInvalidOrder
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	outstanding := quantity
	fills := make([]Fill, 0)
	trades := make([]Trade, 0)

	// Asks are sorted ascending, so the first non-matching price ends the scan.
	for _, ask := range m.asks.orders {
		if outstanding == 0 || price < ask.Price {
			break
		}

		filled := min(outstanding, ask.Quantity)
		ask.Quantity -= filled
		outstanding -= filled

		fills = append(fills, Fill{
			Counterparty: ask.Owner,
			Quantity:     filled,
			Price:        ask.Price,
		})
		trades = append(trades, Trade{
			ID:        uuid.New().String(),
			Buyer:     owner,
			Seller:    ask.Owner,
			Quantity:  filled,
			Price:     ask.Price,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	m.asks.Cleanup()
	m.bids.Cleanup()

	if outstanding > 0 {
		m.bids.Insert(&Order{Owner: owner, Quantity: outstanding, Price: price})
	}

	m.ledger.Append(trades...)
	m.lastPrice = m.ledger.LastPrice()

	return &OrderResult{
		Side:            BUY,
		SharesRequested: quantity,
		SharesFilled:    quantity - outstanding,
		Transactions:    fills,
	}, nil
}

// Sell fills the request against resting bids in descending price order,
// executing at each resting bid's price. The seller must already hold the
// requested quantity per the ledger; otherwise ErrInsufficientShares is
// returned before anything is touched. Unfilled remainder rests on the ask
// book at the limit price.
func (m *Market) Sell(owner string, quantity, price int64) (*OrderResult, error) {
	if quantity <= 0 || price < 0 {
		return nil, ErrInvalidOrder
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ledger.Position(owner) < quantity {
		return nil, ErrInsufficientShares
	}

	outstanding := quantity
	fills := make([]Fill, 0)
	trades := make([]Trade, 0)

	// Bids are sorted descending, so the first non-matching price ends the scan.
	for _, bid := range m.bids.orders {
		if outstanding == 0 || price > bid.Price {
			break
		}

		filled := min(outstanding, bid.Quantity)
		bid.Quantity -= filled
		outstanding -= filled

		fills = append(fills, Fill{
			Counterparty: bid.Owner,
			Quantity:     filled,
			Price:        bid.Price,
		})
		trades = append(trades, Trade{
			ID:        uuid.New().String(),
			Buyer:     bid.Owner,
			Seller:    owner,
			Quantity:  filled,
			Price:     bid.Price,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	m.bids.Cleanup()
	m.asks.Cleanup()

	if outstanding > 0 {
		m.asks.Insert(&Order{Owner: owner, Quantity: outstanding, Price: price})
	}

	m.ledger.Append(trades...)
	m.lastPrice = m.ledger.LastPrice()

	return &OrderResult{
		Side:            SELL,
		SharesRequested: quantity,
		SharesFilled:    quantity - outstanding,
		Transactions:    fills,
	}, nil
}

// Position returns the user's net share holding derived from the ledger
func (m *Market) Position(user string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ledger.Position(user)
}

// LastPrice returns the most recent trade price, or nil before any trade
func (m *Market) LastPrice() *int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastPrice == nil {
		return nil
	}
	price := *m.lastPrice
	return &price
}

// Snapshot returns a copy of both books, the last price, and the full
// ledger. It never mutates market state and is safe to call at any time.
func (m *Market) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var price *int64
	if m.lastPrice != nil {
		p := *m.lastPrice
		price = &p
	}

	return Snapshot{
		Symbol:         m.symbol,
		OpenBuyOrders:  m.bids.Orders(),
		OpenSellOrders: m.asks.Orders(),
		PricePerShare:  price,
		Ledger:         m.ledger.Trades(),
	}
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
