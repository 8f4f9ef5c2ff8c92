package main

import (
	"log"

	"laissez-faire/config"
	"laissez-faire/internal/api"
	"laissez-faire/internal/engine"
	"laissez-faire/internal/util"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadFromEnv("")

	logger, err := util.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	market := engine.NewMarket(cfg.Symbol)
	if cfg.Seed.Shares > 0 {
		if err := market.SeedAsk(cfg.Seed.Owner, cfg.Seed.Shares, cfg.Seed.Price); err != nil {
			logger.Fatal("seed ask", zap.Error(err))
		}
		logger.Info("market seeded",
			zap.String("symbol", cfg.Symbol),
			zap.String("owner", cfg.Seed.Owner),
			zap.Int64("shares", cfg.Seed.Shares),
			zap.Int64("price", cfg.Seed.Price),
		)
	}

	srv := api.NewServer(market, logger)

	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("symbol", cfg.Symbol))
	if err := srv.Start(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
