// Package memstore is an in-memory implementation of the bidding store
// used by tests. It honors the Store contract: per-listing exclusive
// execution and all-or-nothing commits.
package memstore

import (
	"context"
	"sync"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/bidding"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
)

type Store struct {
	mu       sync.Mutex
	listings map[string]*models.Listing
	bids     map[int64][]*models.Bid
	nextID   int64
	locks    map[string]*sync.Mutex
}

func New() *Store {
	return &Store{
		listings: make(map[string]*models.Listing),
		bids:     make(map[int64][]*models.Bid),
		locks:    make(map[string]*sync.Mutex),
		nextID:   1,
	}
}

func (s *Store) AddListing(listing *models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if listing.ID == 0 {
		listing.ID = s.nextID
		s.nextID++
	}
	s.listings[listing.ListingID] = listing
}

// Listing returns a snapshot of the stored listing for assertions.
func (s *Store) Listing(publicID string) *models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[publicID]
	if !ok {
		return nil
	}
	snapshot := *listing
	return &snapshot
}

// Bids returns a snapshot of the ledger for the listing, insertion order.
func (s *Store) Bids(publicID string) []*models.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[publicID]
	if !ok {
		return nil
	}
	out := make([]*models.Bid, 0, len(s.bids[listing.ID]))
	for _, bid := range s.bids[listing.ID] {
		snapshot := *bid
		out = append(out, &snapshot)
	}
	return out
}

func (s *Store) listingLock(publicID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[publicID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[publicID] = lock
	}
	return lock
}

func (s *Store) RunListingTx(_ context.Context, publicID string, fn func(tx bidding.Tx) error) error {
	lock := s.listingLock(publicID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	stored, ok := s.listings[publicID]
	if !ok {
		s.mu.Unlock()
		return bidding.ErrListingNotFound
	}
	snapshot := *stored
	s.mu.Unlock()

	tx := &memTx{store: s, listing: &snapshot}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit: all writes, or none.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[publicID] = tx.listing
	ledger := s.bids[tx.listing.ID]
	for _, updated := range tx.updated {
		for i, existing := range ledger {
			if existing.ID == updated.ID {
				copied := *updated
				ledger[i] = &copied
				break
			}
		}
	}
	for _, inserted := range tx.inserted {
		copied := *inserted
		copied.ID = s.nextID
		s.nextID++
		ledger = append(ledger, &copied)
	}
	s.bids[tx.listing.ID] = ledger
	return nil
}

type memTx struct {
	store    *Store
	listing  *models.Listing
	inserted []*models.Bid
	updated  []*models.Bid
}

func (t *memTx) Listing() *models.Listing {
	return t.listing
}

func (t *memTx) WinningBid(_ context.Context) (*models.Bid, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, bid := range t.store.bids[t.listing.ID] {
		if bid.IsWinning {
			snapshot := *bid
			return &snapshot, nil
		}
	}
	return nil, nil
}

func (t *memTx) InsertBid(_ context.Context, bid *models.Bid) error {
	t.inserted = append(t.inserted, bid)
	return nil
}

func (t *memTx) UpdateBid(_ context.Context, bid *models.Bid) error {
	t.updated = append(t.updated, bid)
	return nil
}

func (t *memTx) UpdateListing(_ context.Context, listing *models.Listing) error {
	t.listing = listing
	return nil
}
