package service

import (
	"context"

	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/pkg/metrics"
)

// CachingOrderService is a decorator that adds an in-memory LRU cache
// to order reads. Only orders are cached: catalog listings must stay
// fresh because the validation gate depends on them. Update and delete
// invalidate the entry, so a cached view never survives the mutation
// that made it stale.
type CachingOrderService struct {
	OrderService
	cache  *LRUCache
	logger logger.Logger
}

// NewCachingOrderService wraps next with a read-through order cache.
func NewCachingOrderService(next OrderService, logger logger.Logger, entryCountCap, entrySizeCap int) *CachingOrderService {
	return &CachingOrderService{
		OrderService: next,
		cache:        NewLRUCache(entryCountCap, entrySizeCap),
		logger:       logger,
	}
}

// GetOrder checks the cache first; on a miss the underlying service is
// asked and the result cached.
func (s *CachingOrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if order, found := s.cache.Get(id); found {
		metrics.CacheHits.Inc()
		s.logger.Debugw("cache hit", "order_id", id)
		return order, nil
	}

	metrics.CacheMisses.Inc()
	order, err := s.OrderService.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Insert(order)
	return order, nil
}

// UpdateOrder invalidates the cached entry once the update committed.
func (s *CachingOrderService) UpdateOrder(ctx context.Context, id int64, req *domain.UpdateOrderRequest) error {
	err := s.OrderService.UpdateOrder(ctx, id, req)
	if err == nil {
		s.cache.Remove(id)
	}
	return err
}

// DeleteOrder invalidates the cached entry once the delete committed.
func (s *CachingOrderService) DeleteOrder(ctx context.Context, id int64) error {
	err := s.OrderService.DeleteOrder(ctx, id)
	if err == nil {
		s.cache.Remove(id)
	}
	return err
}
