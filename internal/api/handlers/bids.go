package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	apimodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/utils"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/logger"
)

// PlaceBid handles POST /api/bids. The caller's identity comes from the
// authenticated session; the engine does the rest.
func (a *API) PlaceBid(c *fiber.Ctx) error {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return utils.SendUnauthorized(c, "authentication required")
	}

	var req apimodels.PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "invalid request body")
	}
	if err := a.validate.Struct(req); err != nil {
		return utils.SendBadRequest(c, "listing_id and a positive max_bid are required")
	}

	maxBid := decimal.NewFromFloat(req.MaxBid).Round(2)

	result, err := a.Engine.PlaceBid(c.UserContext(), req.ListingID, session.UserID, maxBid)
	if err != nil {
		return a.rejectBid(c, err)
	}

	message := "You are the highest bidder"
	if !result.IsWinning {
		message = "You were outbid by the current leader's maximum"
	}

	return utils.SendJSON(c, http.StatusOK, apimodels.PlaceBidResponse{
		Message:    message,
		CurrentBid: result.CurrentBid.StringFixed(2),
		BidCount:   result.BidCount,
		IsWinning:  result.IsWinning,
		YourMaxBid: result.YourMaxBid.StringFixed(2),
		AuctionEnd: result.AuctionEnd,
	})
}

func (a *API) rejectBid(c *fiber.Ctx, err error) error {
	var tooLow *bidding.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		return utils.SendJSON(c, http.StatusBadRequest, apimodels.ErrorResponse{
			Error:      tooLow.Error(),
			MinimumBid: tooLow.Minimum.StringFixed(2),
		})
	case errors.Is(err, bidding.ErrListingNotFound):
		return utils.SendNotFound(c, err.Error())
	case errors.Is(err, bidding.ErrInvalidAmount),
		errors.Is(err, bidding.ErrListingNotActive),
		errors.Is(err, bidding.ErrNotBiddable),
		errors.Is(err, bidding.ErrAuctionEnded),
		errors.Is(err, bidding.ErrAuctionNotStarted),
		errors.Is(err, bidding.ErrSelfBid),
		errors.Is(err, bidding.ErrMaxBidNotIncreased):
		return utils.SendBadRequest(c, err.Error())
	default:
		logger.LogError("Failed to place bid", err)
		return utils.SendInternalServerError(c, "failed to place bid")
	}
}
