package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusActive    ListingStatus = "active"
	ListingStatusEnded     ListingStatus = "ended"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusUnsold    ListingStatus = "unsold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

type ListingType string

const (
	ListingTypeFixedPrice        ListingType = "fixed_price"
	ListingTypeAuction           ListingType = "auction"
	ListingTypeAuctionWithBuyNow ListingType = "auction_with_buy_now"
)

// Biddable reports whether the listing type accepts bids at all.
func (t ListingType) Biddable() bool {
	return t == ListingTypeAuction || t == ListingTypeAuctionWithBuyNow
}

type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID        int64  `bun:"id,pk,autoincrement"`
	ListingID string `bun:"listing_id,notnull,unique"`
	SellerID  string `bun:"seller_id,notnull"`

	Title string `bun:"title,notnull"`
	Grade string `bun:"grade"`

	Status      ListingStatus `bun:"status,notnull"`
	ListingType ListingType   `bun:"listing_type,notnull"`

	StartingPrice decimal.Decimal  `bun:"starting_price,type:numeric(12,2)"`
	CurrentBid    decimal.Decimal  `bun:"current_bid,type:numeric(12,2)"`
	ReservePrice  *decimal.Decimal `bun:"reserve_price,type:numeric(12,2)"`
	BuyNowPrice   *decimal.Decimal `bun:"buy_now_price,type:numeric(12,2)"`
	BidCount      int              `bun:"bid_count,notnull,default:0"`

	AuctionStart *time.Time `bun:"auction_start"`
	AuctionEnd   *time.Time `bun:"auction_end"`

	AutoExtend        bool `bun:"auto_extend,notnull,default:false"`
	AutoExtendMinutes int  `bun:"auto_extend_minutes"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
