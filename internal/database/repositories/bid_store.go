package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/uptrace/bun"
)

// bidStore backs the bidding engine with a serializable transaction that
// locks the listing row for the duration of the resolution. This is what
// makes concurrent bids on the same listing safe: the second transaction
// blocks on the row lock and re-reads the committed winner.
type bidStore struct {
	db *bun.DB
}

func NewBidStore(db *bun.DB) bidding.Store {
	return &bidStore{db: db}
}

func (s *bidStore) RunListingTx(ctx context.Context, publicID string, fn func(tx bidding.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	listing := new(models.Listing)
	err = tx.NewSelect().
		Model(listing).
		Where("listing_id = ?", publicID).
		For("UPDATE").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bidding.ErrListingNotFound
		}
		return fmt.Errorf("failed to lock listing: %w", err)
	}

	if err := fn(&bidTx{tx: tx, listing: listing}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bid transaction: %w", err)
	}
	return nil
}

type bidTx struct {
	tx      bun.Tx
	listing *models.Listing
}

func (t *bidTx) Listing() *models.Listing {
	return t.listing
}

func (t *bidTx) WinningBid(ctx context.Context) (*models.Bid, error) {
	bid := new(models.Bid)
	err := t.tx.NewSelect().
		Model(bid).
		Where("listing_id = ? AND is_winning = TRUE", t.listing.ID).
		Order("created_at ASC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get winning bid: %w", err)
	}
	return bid, nil
}

func (t *bidTx) InsertBid(ctx context.Context, bid *models.Bid) error {
	if _, err := t.tx.NewInsert().Model(bid).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

func (t *bidTx) UpdateBid(ctx context.Context, bid *models.Bid) error {
	_, err := t.tx.NewUpdate().
		Model(bid).
		Column("amount", "max_bid", "is_winning").
		WherePK().
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update bid: %w", err)
	}
	return nil
}

func (t *bidTx) UpdateListing(ctx context.Context, listing *models.Listing) error {
	_, err := t.tx.NewUpdate().
		Model(listing).
		Column("current_bid", "bid_count", "auction_end", "updated_at").
		WherePK().
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}
