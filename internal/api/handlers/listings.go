package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apimodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/utils"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/logger"
)

// CreateListing handles POST /api/listings. The server assigns the public
// listing id; listings go live immediately.
func (a *API) CreateListing(c *fiber.Ctx) error {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return utils.SendUnauthorized(c, "authentication required")
	}

	var req apimodels.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "invalid request body")
	}
	if err := a.validate.Struct(req); err != nil {
		return utils.SendBadRequest(c, "invalid listing fields")
	}

	listingType := models.ListingType(req.ListingType)
	if listingType.Biddable() && req.DurationHours == 0 {
		return utils.SendBadRequest(c, "duration_hours is required for auction listings")
	}
	if listingType == models.ListingTypeAuctionWithBuyNow && req.BuyNowPrice == 0 {
		return utils.SendBadRequest(c, "buy_now_price is required for buy-now auctions")
	}

	now := time.Now()
	listing := &models.Listing{
		ListingID:         uuid.NewString(),
		SellerID:          session.UserID,
		Title:             req.Title,
		Grade:             req.Grade,
		Status:            models.ListingStatusActive,
		ListingType:       listingType,
		StartingPrice:     decimal.NewFromFloat(req.StartingPrice).Round(2),
		CurrentBid:        decimal.Zero,
		AutoExtend:        req.AutoExtend,
		AutoExtendMinutes: req.AutoExtendMinutes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.ReservePrice > 0 {
		reserve := decimal.NewFromFloat(req.ReservePrice).Round(2)
		listing.ReservePrice = &reserve
	}
	if req.BuyNowPrice > 0 {
		buyNow := decimal.NewFromFloat(req.BuyNowPrice).Round(2)
		listing.BuyNowPrice = &buyNow
	}
	if listingType.Biddable() {
		end := now.Add(time.Duration(req.DurationHours) * time.Hour)
		listing.AuctionStart = &now
		listing.AuctionEnd = &end
	}

	if err := a.Listings.Create(c.UserContext(), listing); err != nil {
		logger.LogError("Failed to create listing", err)
		return utils.SendInternalServerError(c, "failed to create listing")
	}
	a.Search.Invalidate()

	return utils.SendJSON(c, http.StatusCreated, apimodels.NewListingView(listing))
}

// ListListings handles GET /api/listings. Supports fuzzy card-title search
// via ?q= and page/limit pagination over the (cached) active set.
func (a *API) ListListings(c *fiber.Ctx) error {
	query := c.Query("q")

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(config.DefaultPageSize)))
	if limit < 1 || limit > config.MaxPageSize {
		limit = config.DefaultPageSize
	}

	listings, err := a.Search.Search(c.UserContext(), query)
	if err != nil {
		logger.LogError("Failed to browse listings", err)
		return utils.SendInternalServerError(c, "failed to browse listings")
	}

	total := len(listings)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	views := make([]apimodels.ListingView, 0, end-start)
	for _, listing := range listings[start:end] {
		views = append(views, apimodels.NewListingView(listing))
	}

	totalPages := (total + limit - 1) / limit
	return utils.SendJSON(c, http.StatusOK, fiber.Map{
		"listings": views,
		"pagination": apimodels.PaginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

// GetListing handles GET /api/listings/:id.
func (a *API) GetListing(c *fiber.Ctx) error {
	listing, err := a.Listings.GetByListingID(c.UserContext(), c.Params("id"))
	if err != nil {
		logger.LogError("Failed to get listing", err)
		return utils.SendInternalServerError(c, "failed to get listing")
	}
	if listing == nil {
		return utils.SendNotFound(c, "listing not found")
	}

	return utils.SendJSON(c, http.StatusOK, apimodels.NewListingView(listing))
}

// GetListingBids handles GET /api/listings/:id/bids. The ledger is public
// but ceilings are redacted except on the caller's own rows.
func (a *API) GetListingBids(c *fiber.Ctx) error {
	listing, err := a.Listings.GetByListingID(c.UserContext(), c.Params("id"))
	if err != nil {
		logger.LogError("Failed to get listing", err)
		return utils.SendInternalServerError(c, "failed to get listing")
	}
	if listing == nil {
		return utils.SendNotFound(c, "listing not found")
	}

	bids, err := a.Bids.GetForListing(c.UserContext(), listing.ID)
	if err != nil {
		logger.LogError("Failed to get listing bids", err)
		return utils.SendInternalServerError(c, "failed to get listing bids")
	}

	var viewerID string
	if session, ok := utils.ExtractUserSession(c); ok {
		viewerID = session.UserID
	}

	views := make([]apimodels.BidView, 0, len(bids))
	for _, bid := range bids {
		views = append(views, apimodels.NewBidView(bid, viewerID))
	}

	return utils.SendJSON(c, http.StatusOK, fiber.Map{
		"listing_id": listing.ListingID,
		"bid_count":  listing.BidCount,
		"bids":       views,
	})
}
