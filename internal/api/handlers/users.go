package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	apimodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/utils"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/logger"
)

// GetProfile handles GET /api/users/me — the caller's XP and tier.
func (a *API) GetProfile(c *fiber.Ctx) error {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return utils.SendUnauthorized(c, "authentication required")
	}

	user, err := a.Users.GetByID(c.UserContext(), session.UserID)
	if err != nil {
		logger.LogError("Failed to get user", err)
		return utils.SendInternalServerError(c, "failed to get profile")
	}
	if user == nil {
		return utils.SendNotFound(c, "user not found")
	}

	return utils.SendJSON(c, http.StatusOK, apimodels.ProfileView{
		UserID:   user.ID,
		Username: user.Username,
		XP:       user.XP,
		Tier:     user.Tier,
	})
}

// GetMyBids handles GET /api/users/me/bids — the caller's bid history with
// their private ceilings included.
func (a *API) GetMyBids(c *fiber.Ctx) error {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return utils.SendUnauthorized(c, "authentication required")
	}

	bids, err := a.Bids.GetUserBids(c.UserContext(), session.UserID)
	if err != nil {
		logger.LogError("Failed to get user bids", err)
		return utils.SendInternalServerError(c, "failed to get bids")
	}

	views := make([]apimodels.MyBidView, 0, len(bids))
	for _, bid := range bids {
		views = append(views, apimodels.MyBidView{
			ListingID:    bid.ListingPublicID,
			ListingTitle: bid.ListingTitle,
			Amount:       bid.Amount.StringFixed(2),
			MaxBid:       bid.MaxBid.StringFixed(2),
			IsWinning:    bid.IsWinning,
			CreatedAt:    bid.CreatedAt,
		})
	}

	return utils.SendJSON(c, http.StatusOK, fiber.Map{"bids": views})
}
