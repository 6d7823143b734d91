package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Bid is one row of the append-mostly bid ledger. Amount is the publicly
// visible price the bid caused or represents; MaxBid is the bidder's private
// ceiling and is never exposed to other bidders. Exactly one row per listing
// carries IsWinning at any time.
type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b"`

	ID        int64  `bun:"id,pk,autoincrement"`
	ListingID int64  `bun:"listing_id,notnull"`
	BidderID  string `bun:"bidder_id,notnull"`

	Amount decimal.Decimal `bun:"amount,type:numeric(12,2),notnull"`
	MaxBid decimal.Decimal `bun:"max_bid,type:numeric(12,2),notnull"`

	IsWinning bool `bun:"is_winning,notnull,default:false"`
	// Reserved. Never set by the current resolution logic.
	IsAutoBid bool `bun:"is_auto_bid,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
