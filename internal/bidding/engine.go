package bidding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/shopspring/decimal"
)

// Config holds the anti-snipe tunables. ExtendWindow is how close to
// auction_end a bid must land to trigger an extension; ExtendBy is the
// default extension for listings without their own auto_extend_minutes.
type Config struct {
	ExtendWindow time.Duration
	ExtendBy     time.Duration
}

// Engine resolves proposed maximum bids against the current proxy leader of
// an auction listing. Each bidder's true ceiling stays private; the visible
// price only ever rises to the minimum needed to beat the runner-up's
// ceiling plus one increment. Ties go to the earlier bidder.
type Engine struct {
	store Store
	xp    XPService
	cfg   Config
	now   func() time.Time
}

func NewEngine(store Store, xp XPService, cfg Config) *Engine {
	if store == nil {
		panic("bidding store cannot be nil")
	}
	return &Engine{
		store: store,
		xp:    xp,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Result is the public auction state after an accepted bid. The core fields
// reflect the committed transaction; XPAwarded and SideEffectErr report the
// best-effort gamification step that runs after the commit.
type Result struct {
	CurrentBid decimal.Decimal
	BidCount   int
	IsWinning  bool
	YourMaxBid decimal.Decimal
	AuctionEnd *time.Time

	XPAwarded     bool
	SideEffectErr error
}

// PlaceBid validates and resolves a proposed maximum bid for the listing
// identified by listingID. All validation happens before any mutation; on
// any rejection no state changes. The bid rows, listing state and the
// possibly extended auction_end commit atomically relative to concurrent
// bids on the same listing.
func (e *Engine) PlaceBid(ctx context.Context, listingID, bidderID string, maxBid decimal.Decimal) (*Result, error) {
	if maxBid.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var res *Result
	err := e.store.RunListingTx(ctx, listingID, func(tx Tx) error {
		r, err := e.resolve(ctx, tx, bidderID, maxBid)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bid accepted",
		slog.String("type", "bid"),
		slog.String("listing_id", listingID),
		slog.String("bidder_id", bidderID),
		slog.String("current_bid", res.CurrentBid.StringFixed(2)),
		slog.Int("bid_count", res.BidCount),
		slog.Bool("is_winning", res.IsWinning))

	if e.xp != nil {
		if xpErr := e.xp.AwardBidXP(ctx, bidderID); xpErr != nil {
			slog.Warn("Failed to award bid XP",
				slog.String("bidder_id", bidderID),
				slog.String("error", xpErr.Error()))
			res.SideEffectErr = xpErr
		} else {
			res.XPAwarded = true
		}
	}

	return res, nil
}

// MinimumBid returns the lowest acceptable maximum bid for the listing in
// its current state.
func MinimumBid(listing *models.Listing) decimal.Decimal {
	if listing.BidCount == 0 {
		if listing.StartingPrice.Sign() > 0 {
			return listing.StartingPrice
		}
		return listing.CurrentBid
	}
	return listing.CurrentBid.Add(Increment(listing.CurrentBid))
}

func (e *Engine) resolve(ctx context.Context, tx Tx, bidderID string, maxBid decimal.Decimal) (*Result, error) {
	listing := tx.Listing()
	now := e.now()

	if listing.Status != models.ListingStatusActive {
		return nil, ErrListingNotActive
	}
	if !listing.ListingType.Biddable() {
		return nil, ErrNotBiddable
	}
	if listing.AuctionEnd != nil && !now.Before(*listing.AuctionEnd) {
		return nil, ErrAuctionEnded
	}
	if listing.AuctionStart != nil && now.Before(*listing.AuctionStart) {
		return nil, ErrAuctionNotStarted
	}
	if listing.SellerID == bidderID {
		return nil, ErrSelfBid
	}

	minimum := MinimumBid(listing)
	if maxBid.LessThan(minimum) {
		return nil, &BidTooLowError{Minimum: minimum}
	}

	winning, err := tx.WinningBid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load winning bid: %w", err)
	}

	var isWinning bool

	switch {
	case winning == nil:
		// First bid: the visible price opens at the starting price, the
		// ceiling stays private.
		visible := listing.StartingPrice
		if visible.Sign() <= 0 {
			visible = maxBid
		}
		if err := tx.InsertBid(ctx, &models.Bid{
			ListingID: listing.ID,
			BidderID:  bidderID,
			Amount:    visible,
			MaxBid:    maxBid,
			IsWinning: true,
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("failed to insert bid: %w", err)
		}
		listing.CurrentBid = visible
		isWinning = true

	case winning.BidderID == bidderID:
		// The leader may only raise their own ceiling; the visible price
		// does not move.
		if !maxBid.GreaterThan(winning.MaxBid) {
			return nil, ErrMaxBidNotIncreased
		}
		winning.MaxBid = maxBid
		if err := tx.UpdateBid(ctx, winning); err != nil {
			return nil, fmt.Errorf("failed to raise max bid: %w", err)
		}
		isWinning = true

	case maxBid.GreaterThan(winning.MaxBid):
		// Challenger beats the leader's ceiling: price rises to one
		// increment above the old ceiling, capped at the challenger's.
		visible := decimal.Min(winning.MaxBid.Add(Increment(winning.MaxBid)), maxBid)
		winning.IsWinning = false
		if err := tx.UpdateBid(ctx, winning); err != nil {
			return nil, fmt.Errorf("failed to dethrone winning bid: %w", err)
		}
		if err := tx.InsertBid(ctx, &models.Bid{
			ListingID: listing.ID,
			BidderID:  bidderID,
			Amount:    visible,
			MaxBid:    maxBid,
			IsWinning: true,
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("failed to insert bid: %w", err)
		}
		listing.CurrentBid = visible
		isWinning = true

	case maxBid.Equal(winning.MaxBid):
		// Exact tie on ceilings: the earlier bidder keeps the lead, the
		// price rises to the tied ceiling, the attempt is recorded.
		winning.Amount = maxBid
		if err := tx.UpdateBid(ctx, winning); err != nil {
			return nil, fmt.Errorf("failed to update winning bid: %w", err)
		}
		if err := tx.InsertBid(ctx, &models.Bid{
			ListingID: listing.ID,
			BidderID:  bidderID,
			Amount:    maxBid,
			MaxBid:    maxBid,
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("failed to insert bid: %w", err)
		}
		listing.CurrentBid = maxBid

	default:
		// Challenger under the leader's ceiling: the leader auto-bids one
		// increment above the challenge, capped at their own ceiling.
		visible := decimal.Min(maxBid.Add(Increment(maxBid)), winning.MaxBid)
		if err := tx.InsertBid(ctx, &models.Bid{
			ListingID: listing.ID,
			BidderID:  bidderID,
			Amount:    maxBid,
			MaxBid:    maxBid,
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("failed to insert bid: %w", err)
		}
		winning.Amount = visible
		if err := tx.UpdateBid(ctx, winning); err != nil {
			return nil, fmt.Errorf("failed to update winning bid: %w", err)
		}
		listing.CurrentBid = visible
	}

	listing.BidCount++

	// Anti-snipe: evaluated against the auction_end in effect when the bid
	// was accepted, before any mutation.
	if listing.AutoExtend && listing.AuctionEnd != nil {
		remaining := listing.AuctionEnd.Sub(now)
		if remaining > 0 && remaining <= e.cfg.ExtendWindow {
			extendBy := e.cfg.ExtendBy
			if listing.AutoExtendMinutes > 0 {
				extendBy = time.Duration(listing.AutoExtendMinutes) * time.Minute
			}
			newEnd := listing.AuctionEnd.Add(extendBy)
			listing.AuctionEnd = &newEnd
		}
	}

	listing.UpdatedAt = now
	if err := tx.UpdateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return &Result{
		CurrentBid: listing.CurrentBid,
		BidCount:   listing.BidCount,
		IsWinning:  isWinning,
		YourMaxBid: maxBid,
		AuctionEnd: listing.AuctionEnd,
	}, nil
}
