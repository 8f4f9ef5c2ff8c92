package main

import (
	"encoding/json"
	"fmt"

	"laissez-faire/internal/engine"
)

// Demo driver: open a market with the IPO float, buy most of it, then try
// to dump a share at any price.
func main() {
	m := engine.NewMarket("APPL")
	if err := m.SeedAsk("APPLE", 100, 1); err != nil {
		fmt.Println(err)
		return
	}

	if _, err := m.Buy("sk", 99, 5); err != nil {
		fmt.Println(err)
	}
	if _, err := m.Sell("sk", 1, 0); err != nil {
		fmt.Println(err)
	}

	details, err := json.MarshalIndent(m.Snapshot(), "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(details))
}
