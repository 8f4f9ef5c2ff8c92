package engine

import "testing"

func TestEmptyLedgerHasNoPrice(t *testing.T) {
	ledger := NewLedger()

	if ledger.LastPrice() != nil {
		t.Error("expected nil last price for empty ledger")
	}
	if ledger.Len() != 0 {
		t.Errorf("expected empty ledger, got %d trades", ledger.Len())
	}
}

func TestLastPriceTracksFinalTrade(t *testing.T) {
	ledger := NewLedger()

	ledger.Append(
		Trade{Buyer: "b", Seller: "s", Quantity: 5, Price: 100},
		Trade{Buyer: "b", Seller: "s", Quantity: 2, Price: 250},
	)

	price := ledger.LastPrice()
	if price == nil {
		t.Fatal("expected a last price after trades")
	}
	if *price != 250 {
		t.Errorf("expected last price 250, got %d", *price)
	}
}

func TestPositionNetsBuysAndSells(t *testing.T) {
	ledger := NewLedger()

	ledger.Append(
		Trade{Buyer: "sk", Seller: "APPLE", Quantity: 10, Price: 100},
		Trade{Buyer: "sd", Seller: "sk", Quantity: 4, Price: 120},
	)

	if got := ledger.Position("sk"); got != 6 {
		t.Errorf("expected sk to hold 6 shares, got %d", got)
	}
	if got := ledger.Position("sd"); got != 4 {
		t.Errorf("expected sd to hold 4 shares, got %d", got)
	}
	if got := ledger.Position("APPLE"); got != -10 {
		t.Errorf("expected APPLE at -10 shares, got %d", got)
	}
	if got := ledger.Position("stranger"); got != 0 {
		t.Errorf("expected 0 shares for unknown user, got %d", got)
	}
}

func TestIncrementalPositionsMatchReplay(t *testing.T) {
	ledger := NewLedger()

	trades := []Trade{
		{Buyer: "a", Seller: "b", Quantity: 7, Price: 10},
		{Buyer: "b", Seller: "c", Quantity: 3, Price: 12},
		{Buyer: "a", Seller: "a", Quantity: 5, Price: 11}, // self-trade
		{Buyer: "c", Seller: "a", Quantity: 2, Price: 9},
	}

	for _, trade := range trades {
		ledger.Append(trade)
		for _, user := range []string{"a", "b", "c"} {
			if ledger.Position(user) != ledger.ReplayPosition(user) {
				t.Fatalf("position for %s diverged from replay after trade %+v", user, trade)
			}
		}
	}
}

func TestTradesReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(Trade{Buyer: "b", Seller: "s", Quantity: 1, Price: 100})

	history := ledger.Trades()
	history[0].Price = 999

	if ledger.Trades()[0].Price != 100 {
		t.Error("mutating the returned history should not affect the ledger")
	}
}
