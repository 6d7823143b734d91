package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	DB      DBConfig      `toml:"db"`
	Auction AuctionConfig `toml:"auction"`
	Session SessionConfig `toml:"session"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// AuctionConfig holds the tunables for the bidding engine and the expiry
// sweeper. ExtendWindow is how close to auction_end a bid has to land before
// the auction is extended, ExtendBy is the default extension for listings
// that don't carry their own auto_extend_minutes.
type AuctionConfig struct {
	ExtendWindowMinutes int `toml:"extend_window_minutes"`
	ExtendByMinutes     int `toml:"extend_by_minutes"`
	SweepSeconds        int `toml:"sweep_seconds"`
}

type SessionConfig struct {
	Secret string `toml:"secret"`
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Auction.ExtendWindowMinutes == 0 {
		c.Auction.ExtendWindowMinutes = 5
	}
	if c.Auction.ExtendByMinutes == 0 {
		c.Auction.ExtendByMinutes = 10
	}
	if c.Auction.SweepSeconds == 0 {
		c.Auction.SweepSeconds = 15
	}
}

func (c AuctionConfig) ExtendWindow() time.Duration {
	return time.Duration(c.ExtendWindowMinutes) * time.Minute
}

func (c AuctionConfig) ExtendBy() time.Duration {
	return time.Duration(c.ExtendByMinutes) * time.Minute
}

func (c AuctionConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}
