package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Seed describes the listing that opens the market: the initial float
// offered for sale before any trade history exists.
type Seed struct {
	Owner  string
	Shares int64
	Price  int64
}

type Config struct {
	ListenAddr string
	Symbol     string
	Seed       Seed
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Symbol:     "APPL",
		Seed: Seed{
			Owner:  "APPLE",
			Shares: 100,
			Price:  1,
		},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Optional .env file; absence is not an error
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("SEED_OWNER"); v != "" {
		cfg.Seed.Owner = v
	}
	cfg.Seed.Shares = parseInt64Env("SEED_SHARES", cfg.Seed.Shares)
	cfg.Seed.Price = parseInt64Env("SEED_PRICE", cfg.Seed.Price)

	return cfg
}

func parseInt64Env(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
