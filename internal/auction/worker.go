package auction

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/uptrace/bun"
)

const sweepTimeout = 30 * time.Second

// Worker finalizes auction listings whose window has passed. A listing with
// a winning bid at or above any reserve closes as sold; everything else
// closes as unsold. This sweep is the only place reserve_price has effect;
// the bidding engine treats it as informational.
type Worker struct {
	db       *bun.DB
	interval time.Duration
}

func NewWorker(db *bun.DB, interval time.Duration) *Worker {
	return &Worker{db: db, interval: interval}
}

// Run sweeps on a ticker until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
			if err := w.sweep(sweepCtx); err != nil {
				slog.Error("Failed to sweep expired listings",
					slog.String("error", err.Error()))
			}
			cancel()
		}
	}
}

func (w *Worker) sweep(ctx context.Context) error {
	tx, err := w.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var expired []*models.Listing
	err = tx.NewSelect().
		Model(&expired).
		Where("status = ?", models.ListingStatusActive).
		Where("auction_end IS NOT NULL AND auction_end <= ?", time.Now()).
		For("UPDATE SKIP LOCKED").
		Order("auction_end ASC").
		Scan(ctx)

	if err != nil {
		return fmt.Errorf("failed to get expired listings: %w", err)
	}

	for _, listing := range expired {
		status, err := w.finalStatus(ctx, tx, listing)
		if err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model((*models.Listing)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", listing.ID).
			Where("status = ?", models.ListingStatusActive).
			Exec(ctx)

		if err != nil {
			return fmt.Errorf("failed to finalize listing %s: %w", listing.ListingID, err)
		}

		slog.Info("Listing finalized",
			slog.String("listing_id", listing.ListingID),
			slog.String("status", string(status)),
			slog.String("final_price", listing.CurrentBid.StringFixed(2)),
			slog.Int("bid_count", listing.BidCount))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sweep: %w", err)
	}
	return nil
}

func (w *Worker) finalStatus(ctx context.Context, tx bun.Tx, listing *models.Listing) (models.ListingStatus, error) {
	hasWinner, err := tx.NewSelect().
		Model((*models.Bid)(nil)).
		Where("listing_id = ? AND is_winning = TRUE", listing.ID).
		Exists(ctx)

	if err != nil {
		return "", fmt.Errorf("failed to check winning bid for %s: %w", listing.ListingID, err)
	}

	if !hasWinner {
		return models.ListingStatusUnsold, nil
	}
	if listing.ReservePrice != nil && listing.CurrentBid.LessThan(*listing.ReservePrice) {
		return models.ListingStatusUnsold, nil
	}
	return models.ListingStatusSold, nil
}
