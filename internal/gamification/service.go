package gamification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/uptrace/bun"
)

// Service maintains the append-only XP ledger and the derived xp/tier
// fields on the user record.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	if db == nil {
		panic("gamification db cannot be nil")
	}
	return &Service{db: db}
}

// AwardBidXP records the fixed per-bid XP for a user. Implements the
// bidding engine's side-effect collaborator.
func (s *Service) AwardBidXP(ctx context.Context, userID string) error {
	_, _, err := s.AwardXP(ctx, userID, config.BidXP, config.XPReasonBid)
	return err
}

// AwardXP appends an xp_events row and recomputes the user's cumulative XP
// and tier in one transaction. Returns the new XP total and tier.
func (s *Service) AwardXP(ctx context.Context, userID string, amount int64, reason string) (int64, string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	user := new(models.User)
	err = tx.NewSelect().
		Model(user).
		Where("id = ?", userID).
		For("UPDATE").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", fmt.Errorf("user %s not found", userID)
		}
		return 0, "", fmt.Errorf("failed to lock user: %w", err)
	}

	event := &models.XPEvent{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if _, err := tx.NewInsert().Model(event).Exec(ctx); err != nil {
		return 0, "", fmt.Errorf("failed to append xp event: %w", err)
	}

	newXP := user.XP + amount
	newTier := TierFor(newXP)

	_, err = tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("xp = ?", newXP).
		Set("tier = ?", newTier).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return 0, "", fmt.Errorf("failed to update user xp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("failed to commit xp transaction: %w", err)
	}

	if newTier != user.Tier {
		slog.Info("User tier changed",
			slog.String("user_id", userID),
			slog.String("old_tier", user.Tier),
			slog.String("new_tier", newTier),
			slog.Int64("xp", newXP))
	}

	return newXP, newTier, nil
}
