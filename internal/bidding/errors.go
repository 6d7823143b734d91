package bidding

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount      = errors.New("bid amount must be a positive number")
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingNotActive   = errors.New("listing is not active")
	ErrNotBiddable        = errors.New("listing does not accept bids")
	ErrAuctionEnded       = errors.New("auction has ended")
	ErrAuctionNotStarted  = errors.New("auction has not started yet")
	ErrSelfBid            = errors.New("seller cannot bid on their own listing")
	ErrMaxBidNotIncreased = errors.New("new maximum bid must be higher than your current maximum")
)

// BidTooLowError carries the minimum acceptable bid so callers can surface
// it as guidance.
type BidTooLowError struct {
	Minimum decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be at least %s", e.Minimum.StringFixed(2))
}
