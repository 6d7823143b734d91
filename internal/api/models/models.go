package models

import (
	"time"

	dbmodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
)

// UserSession is the authenticated identity resolved by the middleware.
// Issued by the identity layer, carried in c.Locals("user").
type UserSession struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateListingRequest is the body of POST /api/listings. Auction durations
// are bounded to keep the expiry sweeper's horizon sane.
type CreateListingRequest struct {
	Title             string  `json:"title" validate:"required,min=3,max=200"`
	Grade             string  `json:"grade" validate:"max=32"`
	ListingType       string  `json:"listing_type" validate:"required,oneof=fixed_price auction auction_with_buy_now"`
	StartingPrice     float64 `json:"starting_price" validate:"required,gt=0"`
	ReservePrice      float64 `json:"reserve_price" validate:"omitempty,gt=0"`
	BuyNowPrice       float64 `json:"buy_now_price" validate:"omitempty,gt=0"`
	DurationHours     int     `json:"duration_hours" validate:"omitempty,min=1,max=240"`
	AutoExtend        bool    `json:"auto_extend"`
	AutoExtendMinutes int     `json:"auto_extend_minutes" validate:"omitempty,min=1,max=60"`
}

// PlaceBidRequest is the body of POST /api/bids.
type PlaceBidRequest struct {
	ListingID string  `json:"listing_id" validate:"required,uuid4"`
	MaxBid    float64 `json:"max_bid" validate:"required,gt=0"`
}

// PlaceBidResponse mirrors the engine result for the caller.
type PlaceBidResponse struct {
	Message    string     `json:"message"`
	CurrentBid string     `json:"current_bid"`
	BidCount   int        `json:"bid_count"`
	IsWinning  bool       `json:"is_winning"`
	YourMaxBid string     `json:"your_max_bid"`
	AuctionEnd *time.Time `json:"auction_end,omitempty"`
}

// ErrorResponse is the uniform rejection envelope. MinimumBid is present
// only when the bid was below the computed minimum.
type ErrorResponse struct {
	Error      string `json:"error"`
	MinimumBid string `json:"minimum_bid,omitempty"`
}

// ListingView is the public browse/detail projection of a listing.
type ListingView struct {
	ListingID     string     `json:"listing_id"`
	Title         string     `json:"title"`
	Grade         string     `json:"grade,omitempty"`
	Status        string     `json:"status"`
	ListingType   string     `json:"listing_type"`
	StartingPrice string     `json:"starting_price"`
	CurrentBid    string     `json:"current_bid"`
	BidCount      int        `json:"bid_count"`
	AuctionStart  *time.Time `json:"auction_start,omitempty"`
	AuctionEnd    *time.Time `json:"auction_end,omitempty"`
	AutoExtend    bool       `json:"auto_extend"`
}

func NewListingView(l *dbmodels.Listing) ListingView {
	return ListingView{
		ListingID:     l.ListingID,
		Title:         l.Title,
		Grade:         l.Grade,
		Status:        string(l.Status),
		ListingType:   string(l.ListingType),
		StartingPrice: l.StartingPrice.StringFixed(2),
		CurrentBid:    l.CurrentBid.StringFixed(2),
		BidCount:      l.BidCount,
		AuctionStart:  l.AuctionStart,
		AuctionEnd:    l.AuctionEnd,
		AutoExtend:    l.AutoExtend,
	}
}

// BidView is the public ledger projection of a bid. Ceilings stay private:
// MaxBid is populated only on the caller's own rows.
type BidView struct {
	BidderID  string    `json:"bidder_id"`
	Amount    string    `json:"amount"`
	MaxBid    string    `json:"max_bid,omitempty"`
	IsWinning bool      `json:"is_winning"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBidView(b *dbmodels.Bid, viewerID string) BidView {
	view := BidView{
		BidderID:  b.BidderID,
		Amount:    b.Amount.StringFixed(2),
		IsWinning: b.IsWinning,
		CreatedAt: b.CreatedAt,
	}
	if b.BidderID == viewerID {
		view.MaxBid = b.MaxBid.StringFixed(2)
	}
	return view
}

// MyBidView is one entry of the caller's own bid history. Their own ceiling
// is always included here.
type MyBidView struct {
	ListingID    string    `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	Amount       string    `json:"amount"`
	MaxBid       string    `json:"max_bid"`
	IsWinning    bool      `json:"is_winning"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileView is the gamification projection of a user.
type ProfileView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	XP       int64  `json:"xp"`
	Tier     string `json:"tier"`
}

// PaginationInfo contains pagination metadata for browse responses.
type PaginationInfo struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}
