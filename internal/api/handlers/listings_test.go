package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/handlers"
	apimodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/sessions"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/services"
)

type stubListingRepo struct {
	created  []*models.Listing
	listings map[string]*models.Listing
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*models.Listing)}
}

func (s *stubListingRepo) DB() *bun.DB { return nil }

func (s *stubListingRepo) Create(_ context.Context, listing *models.Listing) error {
	listing.ID = int64(len(s.created) + 1)
	s.created = append(s.created, listing)
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *stubListingRepo) GetByListingID(_ context.Context, listingID string) (*models.Listing, error) {
	return s.listings[listingID], nil
}

func (s *stubListingRepo) GetActive(_ context.Context, _, _ int) ([]*models.Listing, error) {
	var active []*models.Listing
	for _, l := range s.listings {
		if l.Status == models.ListingStatusActive {
			active = append(active, l)
		}
	}
	return active, nil
}

func newListingTestApp(repo *stubListingRepo) *fiberApp {
	sessionSvc := sessions.NewService("test-secret")
	h := handlers.NewAPI(nil, repo, nil, nil, services.NewListingSearchService(repo), sessionSvc)
	return &fiberApp{app: api.NewApp(&config.Config{}, h), sessions: sessionSvc}
}

func (f *fiberApp) createListing(t *testing.T, token string, req apimodels.CreateListingRequest) *http.Response {
	t.Helper()
	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/listings", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(httpReq)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCreateListingEndpoint(t *testing.T) {
	repo := newStubListingRepo()
	f := newListingTestApp(repo)

	resp := f.createListing(t, f.token(t, "seller-1"), apimodels.CreateListingRequest{
		Title:         "Blastoise Base Set Holo",
		Grade:         "PSA 8",
		ListingType:   "auction",
		StartingPrice: 49.99,
		DurationHours: 24,
		AutoExtend:    true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	view := decodeJSON[apimodels.ListingView](t, resp)
	if _, err := uuid.Parse(view.ListingID); err != nil {
		t.Errorf("listing_id %q is not a uuid: %v", view.ListingID, err)
	}
	if view.Status != "active" {
		t.Errorf("status = %s, want active", view.Status)
	}
	if view.StartingPrice != "49.99" {
		t.Errorf("starting_price = %s, want 49.99", view.StartingPrice)
	}
	if view.AuctionEnd == nil {
		t.Fatal("auction_end missing")
	}
	wantEnd := time.Now().Add(24 * time.Hour)
	if d := view.AuctionEnd.Sub(wantEnd); d < -time.Minute || d > time.Minute {
		t.Errorf("auction_end = %v, want ~%v", view.AuctionEnd, wantEnd)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created = %d listings, want 1", len(repo.created))
	}
	if repo.created[0].SellerID != "seller-1" {
		t.Errorf("seller_id = %s, want seller-1", repo.created[0].SellerID)
	}
}

func TestCreateListingEndpoint_Unauthenticated(t *testing.T) {
	f := newListingTestApp(newStubListingRepo())

	resp := f.createListing(t, "", apimodels.CreateListingRequest{
		Title:         "Blastoise Base Set Holo",
		ListingType:   "auction",
		StartingPrice: 49.99,
		DurationHours: 24,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCreateListingEndpoint_Validation(t *testing.T) {
	f := newListingTestApp(newStubListingRepo())
	token := f.token(t, "seller-1")

	tests := []struct {
		name string
		req  apimodels.CreateListingRequest
	}{
		{
			name: "missing title",
			req: apimodels.CreateListingRequest{
				ListingType:   "auction",
				StartingPrice: 10,
				DurationHours: 24,
			},
		},
		{
			name: "unknown listing type",
			req: apimodels.CreateListingRequest{
				Title:         "Blastoise Base Set Holo",
				ListingType:   "raffle",
				StartingPrice: 10,
				DurationHours: 24,
			},
		},
		{
			name: "zero starting price",
			req: apimodels.CreateListingRequest{
				Title:         "Blastoise Base Set Holo",
				ListingType:   "auction",
				DurationHours: 24,
			},
		},
		{
			name: "auction without duration",
			req: apimodels.CreateListingRequest{
				Title:         "Blastoise Base Set Holo",
				ListingType:   "auction",
				StartingPrice: 10,
			},
		},
		{
			name: "buy-now auction without buy-now price",
			req: apimodels.CreateListingRequest{
				Title:         "Blastoise Base Set Holo",
				ListingType:   "auction_with_buy_now",
				StartingPrice: 10,
				DurationHours: 24,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.createListing(t, token, tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestBrowseListings(t *testing.T) {
	repo := newStubListingRepo()
	for _, title := range []string{"Charizard Base Set Holo", "Blastoise Base Set Holo", "Venusaur Base Set Holo"} {
		listing := &models.Listing{
			ListingID:     uuid.NewString(),
			SellerID:      "seller-1",
			Title:         title,
			Status:        models.ListingStatusActive,
			ListingType:   models.ListingTypeAuction,
			StartingPrice: decimal.RequireFromString("10.00"),
			CurrentBid:    decimal.Zero,
		}
		repo.listings[listing.ListingID] = listing
	}
	f := newListingTestApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/listings?q=charizard", nil)
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Listings   []apimodels.ListingView  `json:"listings"`
		Pagination apimodels.PaginationInfo `json:"pagination"`
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Listings) != 1 {
		t.Fatalf("listings = %d, want 1 fuzzy match", len(body.Listings))
	}
	if body.Listings[0].Title != "Charizard Base Set Holo" {
		t.Errorf("title = %s, want Charizard Base Set Holo", body.Listings[0].Title)
	}
	if body.Pagination.Total != 1 {
		t.Errorf("pagination total = %d, want 1", body.Pagination.Total)
	}
}

func TestGetListing_NotFound(t *testing.T) {
	f := newListingTestApp(newStubListingRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/listings/"+uuid.NewString(), nil)
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
