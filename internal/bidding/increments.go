package bidding

import (
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/shopspring/decimal"
)

// Increment returns the minimum step a new bid must clear on top of price.
// The band table lives in config; this only does the lookup.
func Increment(price decimal.Decimal) decimal.Decimal {
	for _, band := range config.BidIncrements {
		if band.Upto.IsZero() || price.LessThan(band.Upto) {
			return band.Step
		}
	}
	// The table ends with an unbounded band, so this is unreachable.
	return config.BidIncrements[len(config.BidIncrements)-1].Step
}
