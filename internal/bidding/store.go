package bidding

import (
	"context"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
)

// Store serializes bid processing per listing. RunListingTx must execute fn
// while holding an exclusive lock on the listing identified by publicID, and
// must commit every write fn performed atomically, or none of them if fn
// returns an error. Two concurrent calls for the same listing must never
// observe the same winning-bid snapshot; calls for different listings are
// independent.
//
// The production implementation is a serializable database transaction with
// the listing row locked FOR UPDATE; tests use an in-memory store with a
// per-listing mutex.
type Store interface {
	RunListingTx(ctx context.Context, publicID string, fn func(tx Tx) error) error
}

// Tx exposes the reads and writes available while the listing lock is held.
type Tx interface {
	// Listing returns the locked listing row. Mutations are persisted by
	// UpdateListing.
	Listing() *models.Listing

	// WinningBid returns the current proxy leader's row, or nil when the
	// listing has no bids.
	WinningBid(ctx context.Context) (*models.Bid, error)

	InsertBid(ctx context.Context, bid *models.Bid) error
	UpdateBid(ctx context.Context, bid *models.Bid) error
	UpdateListing(ctx context.Context, listing *models.Listing) error
}

// XPService is the gamification side-effect collaborator. It is invoked
// after the core bid transaction has committed; failures are reported on the
// Result and never affect the committed bid.
type XPService interface {
	AwardBidXP(ctx context.Context, userID string) error
}
