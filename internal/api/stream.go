package api

import (
	"net/http"
	"sync"

	"laissez-faire/internal/engine"
)

// tradeEvent is the wire form of an executed trade on the websocket feed
type tradeEvent struct {
	Symbol   string `json:"symbol"`
	Buyer    string `json:"bought_by"`
	Seller   string `json:"sold_by"`
	Quantity int64  `json:"num_shares"`
	Price    int64  `json:"price"`
}

type outboundMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type subscription[T any] struct {
	ch chan T
}

// hub fans values out to subscribers. Slow subscribers drop messages rather
// than block the publisher.
type hub[T any] struct {
	mu   sync.RWMutex
	subs map[*subscription[T]]struct{}
}

func newHub[T any]() *hub[T] {
	return &hub[T]{subs: make(map[*subscription[T]]struct{})}
}

func (h *hub[T]) Subscribe(buffer int) *subscription[T] {
	sub := &subscription[T]{ch: make(chan T, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *hub[T]) Unsubscribe(sub *subscription[T]) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

func (h *hub[T]) Broadcast(value T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- value:
		default:
		}
	}
}

// broadcastFills publishes each fill of an order result to the trade feed
func (s *Server) broadcastFills(user string, result *engine.OrderResult) {
	for _, fill := range result.Transactions {
		event := tradeEvent{
			Symbol:   s.market.Symbol(),
			Quantity: fill.Quantity,
			Price:    fill.Price,
		}
		if result.Side == engine.BUY {
			event.Buyer = user
			event.Seller = fill.Counterparty
		} else {
			event.Buyer = fill.Counterparty
			event.Seller = user
		}
		s.trades.Broadcast(event)
	}
}

// handleTradeStream handles GET /ws/trades
func (s *Server) handleTradeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := s.trades.Subscribe(32)
	defer s.trades.Unsubscribe(sub)

	for event := range sub.ch {
		msg := outboundMessage{Type: "trade", Data: event}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
