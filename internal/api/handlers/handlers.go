package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/sessions"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/repositories"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/services"
)

// API bundles everything the HTTP handlers need.
type API struct {
	Engine   *bidding.Engine
	Listings repositories.ListingRepository
	Bids     repositories.BidRepository
	Users    repositories.UserRepository
	Search   *services.ListingSearchService
	Sessions *sessions.Service

	validate *validator.Validate
}

func NewAPI(
	engine *bidding.Engine,
	listings repositories.ListingRepository,
	bids repositories.BidRepository,
	users repositories.UserRepository,
	search *services.ListingSearchService,
	sessionSvc *sessions.Service,
) *API {
	return &API{
		Engine:   engine,
		Listings: listings,
		Bids:     bids,
		Users:    users,
		Search:   search,
		Sessions: sessionSvc,
		validate: validator.New(),
	}
}
