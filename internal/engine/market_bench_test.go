package engine

import (
	"sync"
	"testing"
)

func BenchmarkBuyAgainstDeepBook(b *testing.B) {
	m := NewMarket("APPL")
	for i := 0; i < 100; i++ {
		m.SeedAsk("maker", 1_000_000, int64(100+i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Buy("taker", 10, int64(100+(i%100)))
	}
}

func BenchmarkRestingOrders(b *testing.B) {
	m := NewMarket("APPL")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Bids below the empty ask side always rest.
		m.Buy("buyer", 10, int64(i%100))
	}
}

func TestConcurrentBuyers(t *testing.T) {
	m := NewMarket("APPL")
	if err := m.SeedAsk("APPLE", 1_000_000, 1); err != nil {
		t.Fatal(err)
	}

	numGoroutines := 50
	buysPerGoroutine := 100

	var wg sync.WaitGroup
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < buysPerGoroutine; i++ {
				if _, err := m.Buy("buyer", 2, int64(1+id%3)); err != nil {
					t.Errorf("buy failed: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	// Every buy crossed the seeded ask, so the full volume is in the ledger.
	want := int64(numGoroutines * buysPerGoroutine * 2)
	if got := m.Position("buyer"); got != want {
		t.Errorf("expected buyer position %d, got %d", want, got)
	}

	snap := m.Snapshot()
	if len(snap.Ledger) != numGoroutines*buysPerGoroutine {
		t.Errorf("expected %d trades, got %d", numGoroutines*buysPerGoroutine, len(snap.Ledger))
	}
	for _, order := range snap.OpenSellOrders {
		if order.Quantity <= 0 {
			t.Errorf("zero-quantity order survived cleanup: %+v", order)
		}
	}
}
