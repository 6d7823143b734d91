package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/uptrace/bun"
)

type ListingRepository interface {
	DB() *bun.DB
	Create(ctx context.Context, listing *models.Listing) error
	GetByListingID(ctx context.Context, listingID string) (*models.Listing, error)
	GetActive(ctx context.Context, limit, offset int) ([]*models.Listing, error)
}

type listingRepository struct {
	db *bun.DB
}

func NewListingRepository(db *bun.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) DB() *bun.DB {
	return r.db
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if _, err := r.db.NewInsert().Model(listing).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *listingRepository) GetByListingID(ctx context.Context, listingID string) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("listing_id = ?", listingID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

func (r *listingRepository) GetActive(ctx context.Context, limit, offset int) ([]*models.Listing, error) {
	var listings []*models.Listing

	q := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Where("auction_end IS NULL OR auction_end > ?", time.Now()).
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}
	return listings, nil
}

