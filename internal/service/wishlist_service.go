package service

import (
	"context"

	"storefront/internal/kv"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// WishlistService maintains a deduplicated set of product IDs per storage
// scope: a customer-specific key when authenticated, a shared guest key
// otherwise. All operations are idempotent set operations.
type WishlistService struct {
	kv     kv.Store
	logger *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(store kv.Store) *WishlistService {
	return &WishlistService{
		kv:     store,
		logger: util.GetLogger(),
	}
}

func (s *WishlistService) load(ctx context.Context, customerID string) []int64 {
	var ids []int64
	kv.Load(ctx, s.kv, kv.WishlistKey(customerID), &ids, false)
	return ids
}

func (s *WishlistService) persist(ctx context.Context, customerID string, ids []int64) {
	kv.Save(ctx, s.kv, kv.WishlistKey(customerID), ids)
}

// List returns the product IDs in the resolved scope.
func (s *WishlistService) List(ctx context.Context, customerID string) []int64 {
	return s.load(ctx, customerID)
}

// Has reports whether the product is in the resolved scope.
func (s *WishlistService) Has(ctx context.Context, customerID string, productID int64) bool {
	for _, id := range s.load(ctx, customerID) {
		if id == productID {
			return true
		}
	}
	return false
}

// Add inserts the product ID if absent.
func (s *WishlistService) Add(ctx context.Context, customerID string, productID int64) []int64 {
	ids := s.load(ctx, customerID)
	for _, id := range ids {
		if id == productID {
			return ids
		}
	}
	ids = append(ids, productID)
	s.persist(ctx, customerID, ids)
	return ids
}

// Remove deletes the product ID if present.
func (s *WishlistService) Remove(ctx context.Context, customerID string, productID int64) []int64 {
	ids := s.load(ctx, customerID)
	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			s.persist(ctx, customerID, ids)
			break
		}
	}
	return ids
}

// Toggle adds the product if absent, removes it otherwise.
func (s *WishlistService) Toggle(ctx context.Context, customerID string, productID int64) []int64 {
	if s.Has(ctx, customerID, productID) {
		return s.Remove(ctx, customerID, productID)
	}
	return s.Add(ctx, customerID, productID)
}

// MergeGuest unions the guest scope into the customer scope and deletes the
// guest key. The login flow's completion handler invokes this exactly once
// per login; it is not a reactive side effect of observing auth state.
func (s *WishlistService) MergeGuest(ctx context.Context, customerID string) []int64 {
	if customerID == "" {
		return nil
	}

	guest := s.load(ctx, "")
	merged := s.load(ctx, customerID)

	seen := make(map[int64]struct{}, len(merged))
	for _, id := range merged {
		seen[id] = struct{}{}
	}
	for _, id := range guest {
		if _, ok := seen[id]; !ok {
			merged = append(merged, id)
			seen[id] = struct{}{}
		}
	}

	s.persist(ctx, customerID, merged)
	if err := s.kv.Delete(ctx, kv.WishlistKey("")); err != nil {
		s.logger.Warn("Failed to clear guest wishlist", zap.Error(err))
	}

	s.logger.Info("Guest wishlist merged",
		zap.String("customer_id", customerID),
		zap.Int("guest_items", len(guest)),
		zap.Int("merged_items", len(merged)))
	return merged
}
