package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/handlers"
	apimodels "github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/sessions"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding/memstore"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
)

const testListingID = "9f4f1c2e-8d2a-4f6b-9a3e-2b7c1d5e8f0a"

func newTestApp(t *testing.T) (*fiberApp, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	end := time.Now().Add(time.Hour)
	store.AddListing(&models.Listing{
		ListingID:     testListingID,
		SellerID:      "seller-1",
		Title:         "Pikachu Illustrator",
		Status:        models.ListingStatusActive,
		ListingType:   models.ListingTypeAuction,
		StartingPrice: decimal.RequireFromString("10.00"),
		CurrentBid:    decimal.Zero,
		AuctionEnd:    &end,
	})

	engine := bidding.NewEngine(store, nil, bidding.Config{
		ExtendWindow: 5 * time.Minute,
		ExtendBy:     10 * time.Minute,
	})
	sessionSvc := sessions.NewService("test-secret")
	h := handlers.NewAPI(engine, nil, nil, nil, nil, sessionSvc)
	app := api.NewApp(&config.Config{}, h)

	return &fiberApp{app: app, sessions: sessionSvc}, store
}

type fiberApp struct {
	app      *fiber.App
	sessions *sessions.Service
}

func (f *fiberApp) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.sessions.Issue(&apimodels.UserSession{
		UserID:    userID,
		Username:  userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (f *fiberApp) placeBid(t *testing.T, token, listingID string, maxBid float64) *http.Response {
	t.Helper()
	body, _ := json.Marshal(apimodels.PlaceBidRequest{ListingID: listingID, MaxBid: maxBid})
	req := httptest.NewRequest(http.MethodPost, "/api/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestPlaceBidEndpoint(t *testing.T) {
	f, store := newTestApp(t)
	token := f.token(t, "alice")

	resp := f.placeBid(t, token, testListingID, 25)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	got := decodeJSON[apimodels.PlaceBidResponse](t, resp)
	if got.CurrentBid != "10.00" {
		t.Errorf("current_bid = %s, want 10.00", got.CurrentBid)
	}
	if !got.IsWinning {
		t.Error("is_winning = false, want true")
	}
	if got.YourMaxBid != "25.00" {
		t.Errorf("your_max_bid = %s, want 25.00", got.YourMaxBid)
	}
	if got.BidCount != 1 {
		t.Errorf("bid_count = %d, want 1", got.BidCount)
	}

	if store.Listing(testListingID).BidCount != 1 {
		t.Error("bid not committed to store")
	}
}

func TestPlaceBidEndpoint_Unauthenticated(t *testing.T) {
	f, _ := newTestApp(t)

	resp := f.placeBid(t, "", testListingID, 25)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	resp = f.placeBid(t, "garbage-token", testListingID, 25)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status with bad token = %d, want 401", resp.StatusCode)
	}
}

func TestPlaceBidEndpoint_TooLow(t *testing.T) {
	f, _ := newTestApp(t)
	token := f.token(t, "alice")

	resp := f.placeBid(t, token, testListingID, 5)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	got := decodeJSON[apimodels.ErrorResponse](t, resp)
	if got.MinimumBid != "10.00" {
		t.Errorf("minimum_bid = %s, want 10.00", got.MinimumBid)
	}
	if got.Error == "" {
		t.Error("error message missing")
	}
}

func TestPlaceBidEndpoint_UnknownListing(t *testing.T) {
	f, _ := newTestApp(t)
	token := f.token(t, "alice")

	resp := f.placeBid(t, token, "e1d9a7b4-3c5f-4e8a-b2d6-7f0c9a1e4b3d", 25)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPlaceBidEndpoint_Validation(t *testing.T) {
	f, _ := newTestApp(t)
	token := f.token(t, "alice")

	tests := []struct {
		name      string
		listingID string
		maxBid    float64
	}{
		{"not a uuid", "lst-1", 25},
		{"missing listing id", "", 25},
		{"zero max bid", testListingID, 0},
		{"negative max bid", testListingID, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.placeBid(t, token, tt.listingID, tt.maxBid)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestPlaceBidEndpoint_OutbidMessage(t *testing.T) {
	f, _ := newTestApp(t)

	resp := f.placeBid(t, f.token(t, "alice"), testListingID, 50)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alice bid status = %d", resp.StatusCode)
	}

	resp = f.placeBid(t, f.token(t, "bob"), testListingID, 20)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bob bid status = %d", resp.StatusCode)
	}
	got := decodeJSON[apimodels.PlaceBidResponse](t, resp)
	if got.IsWinning {
		t.Error("bob should be outbid by alice's proxy")
	}
	if got.CurrentBid != "21.00" {
		t.Errorf("current_bid = %s, want 21.00", got.CurrentBid)
	}
	if got.Message == "" {
		t.Error("message missing")
	}
}
