package repositories

import (
	"context"
	"fmt"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/uptrace/bun"
)

// UserBid is a bid row joined with the public identity of its listing, for
// the caller's own bid history.
type UserBid struct {
	models.Bid
	ListingPublicID string `bun:"listing_public_id"`
	ListingTitle    string `bun:"listing_title"`
}

type BidRepository interface {
	GetForListing(ctx context.Context, listingID int64) ([]*models.Bid, error)
	GetUserBids(ctx context.Context, bidderID string) ([]*UserBid, error)
}

type bidRepository struct {
	db *bun.DB
}

func NewBidRepository(db *bun.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) GetForListing(ctx context.Context, listingID int64) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.db.NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get listing bids: %w", err)
	}
	return bids, nil
}

func (r *bidRepository) GetUserBids(ctx context.Context, bidderID string) ([]*UserBid, error) {
	var bids []*UserBid
	err := r.db.NewSelect().
		Model((*models.Bid)(nil)).
		ColumnExpr("b.*").
		ColumnExpr("l.listing_id AS listing_public_id").
		ColumnExpr("l.title AS listing_title").
		Join("JOIN listings AS l ON l.id = b.listing_id").
		Where("b.bidder_id = ?", bidderID).
		Order("b.created_at DESC").
		Scan(ctx, &bids)

	if err != nil {
		return nil, fmt.Errorf("failed to get user bids: %w", err)
	}
	return bids, nil
}
