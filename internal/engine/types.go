package engine

import "errors"

// Side represents buy or sell
type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

var (
	// ErrInsufficientShares is returned by Sell when the seller's ledger
	// position is smaller than the requested quantity. The market is left
	// untouched on this path.
	ErrInsufficientShares = errors.New("cannot sell more shares than the user owns")

	// ErrInvalidOrder is returned for a non-positive quantity or a negative
	// limit price. A limit price of zero is legal.
	ErrInvalidOrder = errors.New("quantity must be positive and price non-negative")
)

// Order is a resting limit order on one side of the market. Its quantity is
// decremented in place as it fills; a fully filled order is removed from its
// book before the book is next read.
type Order struct {
	Owner    string `json:"owner"`
	Quantity int64  `json:"num_shares"`
	Price    int64  `json:"price"` // in cents
}

// Trade is an executed exchange of shares. Once appended to the ledger it is
// never modified or removed.
type Trade struct {
	ID        string `json:"trade_id"`
	Buyer     string `json:"bought_by"`
	Seller    string `json:"sold_by"`
	Quantity  int64  `json:"num_shares"`
	Price     int64  `json:"price"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// Fill describes one counterparty's contribution to a buy or sell request.
type Fill struct {
	Counterparty string `json:"counterparty"`
	Quantity     int64  `json:"num_shares"`
	Price        int64  `json:"price"`
}

// OrderResult summarizes the outcome of a single buy or sell request.
// SharesFilled always equals the sum of quantities across Transactions.
type OrderResult struct {
	Side            Side   `json:"side"`
	SharesRequested int64  `json:"shares_requested"`
	SharesFilled    int64  `json:"shares_filled"`
	Transactions    []Fill `json:"transactions"`
}
