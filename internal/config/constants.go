package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Application-wide constants organized by domain

// Database and Performance Constants
const (
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	ShutdownTimeout     = 10 * time.Second

	// Listing browse cache
	BrowseCacheSize       = 1024
	BrowseCacheExpiration = 30 * time.Second

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gamification Constants
const (
	// XP awarded for each accepted bid submission
	BidXP int64 = 10

	XPReasonBid = "bid_placed"
)

// Tier is a rank derived from cumulative XP. MinXP thresholds are strictly
// increasing; a user's tier is the highest threshold their XP has crossed.
type Tier struct {
	Name  string
	MinXP int64
}

// Tiers is ordered ascending by MinXP.
var Tiers = []Tier{
	{Name: "bronze", MinXP: 0},
	{Name: "silver", MinXP: 500},
	{Name: "gold", MinXP: 2000},
	{Name: "platinum", MinXP: 10000},
	{Name: "master", MinXP: 50000},
}

// IncrementBand maps a price band to the minimum bid increment required at
// that price. Upto is the exclusive upper bound of the band; the zero value
// marks the unbounded top band.
type IncrementBand struct {
	Upto decimal.Decimal
	Step decimal.Decimal
}

// BidIncrements is ordered ascending by Upto. Higher price bands require
// proportionally larger increments.
var BidIncrements = []IncrementBand{
	{Upto: decimal.NewFromInt(50), Step: decimal.RequireFromString("1.00")},
	{Upto: decimal.NewFromInt(200), Step: decimal.RequireFromString("2.50")},
	{Upto: decimal.NewFromInt(500), Step: decimal.RequireFromString("5.00")},
	{Upto: decimal.NewFromInt(1000), Step: decimal.RequireFromString("10.00")},
	{Upto: decimal.NewFromInt(5000), Step: decimal.RequireFromString("25.00")},
	{Step: decimal.RequireFromString("50.00")},
}
