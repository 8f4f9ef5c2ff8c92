package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"laissez-faire/internal/engine"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server exposes one market over HTTP and a websocket trade feed
type Server struct {
	market   *engine.Market
	router   *mux.Router
	logger   *zap.Logger
	trades   *hub[tradeEvent]
	upgrader websocket.Upgrader

	startTime      time.Time
	ordersReceived atomic.Int64
	ordersRejected atomic.Int64
	tradesExecuted atomic.Int64
}

// NewServer creates an API server around an existing market
func NewServer(market *engine.Market, logger *zap.Logger) *Server {
	s := &Server{
		market:    market,
		router:    mux.NewRouter(),
		logger:    logger,
		trades:    newHub[tradeEvent](),
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		startTime: time.Now(),
	}

	s.registerRoutes()
	return s
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")
	api.HandleFunc("/market", s.handleGetMarket).Methods("GET")
	api.HandleFunc("/positions/{user}", s.handleGetPosition).Methods("GET")

	s.router.HandleFunc("/ws/trades", s.handleTradeStream).Methods("GET")

	// Health and metrics
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
}

// SubmitOrderRequest represents the JSON request body
type SubmitOrderRequest struct {
	User     string `json:"user"`
	Side     string `json:"side"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// handleSubmitOrder handles POST /api/v1/orders
func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if req.User == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}
	if req.Side != string(engine.BUY) && req.Side != string(engine.SELL) {
		respondError(w, http.StatusBadRequest, "side must be BUY or SELL")
		return
	}

	s.ordersReceived.Add(1)

	var result *engine.OrderResult
	var err error
	if req.Side == string(engine.BUY) {
		result, err = s.market.Buy(req.User, req.Quantity, req.Price)
	} else {
		result, err = s.market.Sell(req.User, req.Quantity, req.Price)
	}

	if err != nil {
		s.ordersRejected.Add(1)
		switch {
		case errors.Is(err, engine.ErrInvalidOrder):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, engine.ErrInsufficientShares):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		s.logger.Warn("order rejected",
			zap.String("user", req.User),
			zap.String("side", req.Side),
			zap.Int64("quantity", req.Quantity),
			zap.Int64("price", req.Price),
			zap.Error(err),
		)
		return
	}

	s.tradesExecuted.Add(int64(len(result.Transactions)))
	s.broadcastFills(req.User, result)

	s.logger.Info("order processed",
		zap.String("user", req.User),
		zap.String("side", req.Side),
		zap.Int64("requested", result.SharesRequested),
		zap.Int64("filled", result.SharesFilled),
	)

	// Fully filled orders return 200, partial fills 202, fully rested 201.
	statusCode := http.StatusOK
	if result.SharesFilled == 0 {
		statusCode = http.StatusCreated
	} else if result.SharesFilled < result.SharesRequested {
		statusCode = http.StatusAccepted
	}

	respondJSON(w, statusCode, result)
}

// handleGetMarket handles GET /api/v1/market
func (s *Server) handleGetMarket(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.market.Snapshot())
}

// handleGetPosition handles GET /api/v1/positions/{user}
func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user := vars["user"]

	if user == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}

	response := map[string]interface{}{
		"user":   user,
		"shares": s.market.Position(user),
	}
	respondJSON(w, http.StatusOK, response)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.startTime).Seconds()

	response := map[string]interface{}{
		"status":           "healthy",
		"symbol":           s.market.Symbol(),
		"uptime_seconds":   int64(uptime),
		"orders_processed": s.ordersReceived.Load(),
	}

	respondJSON(w, http.StatusOK, response)
}

// handleMetrics handles GET /metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"orders_received": s.ordersReceived.Load(),
		"orders_rejected": s.ordersRejected.Load(),
		"trades_executed": s.tradesExecuted.Load(),
		"ledger_length":   int64(len(s.market.Snapshot().Ledger)),
	}

	respondJSON(w, http.StatusOK, response)
}

// Helper functions

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	response := map[string]string{
		"error": message,
	}
	respondJSON(w, statusCode, response)
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
