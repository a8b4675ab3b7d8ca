package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/store"
)

// OrderStore is the persistence contract, implemented by the database
// layer. All mutations are atomic on the store's side.
type OrderStore interface {
	ListCatalog(ctx context.Context, c domain.Catalog) ([]string, error)
	OrderExists(ctx context.Context, id int64) (bool, error)
	CreateOrder(ctx context.Context, size, sauce string, toppings []string) (int64, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, upd *domain.UpdateOrderRequest) error
	DeleteOrder(ctx context.Context, id int64) error
}

// OrderService is the business logic contract consumed by the API
// layer. Mutations run the validation gate before any transaction
// opens; failures come back as the typed errors in the domain package.
type OrderService interface {
	ListCatalog(ctx context.Context, c domain.Catalog) ([]string, error)
	CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (int64, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, req *domain.UpdateOrderRequest) error
	DeleteOrder(ctx context.Context, id int64) error
}

// New creates a new OrderService.
func New(store OrderStore, logger logger.Logger) OrderService {
	return &orderService{
		store:  store,
		logger: logger,
	}
}

type orderService struct {
	store  OrderStore
	logger logger.Logger
}

// ListCatalog passes a fresh catalog read through.
func (s *orderService) ListCatalog(ctx context.Context, c domain.Catalog) ([]string, error) {
	names, err := s.store.ListCatalog(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s catalog: %w", c, err)
	}
	return names, nil
}

// CreateOrder validates the request against the current catalogs, then
// stores the order atomically. Duplicate topping names are collapsed
// before the write, preserving first occurrence.
func (s *orderService) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (int64, error) {
	if err := s.validateCreate(ctx, req); err != nil {
		return 0, err
	}

	id, err := s.store.CreateOrder(ctx, req.Size, req.Sauce, dedupe(req.Toppings))
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Infow("order created", "order_id", id)
	return id, nil
}

// GetOrder retrieves an order by id, translating the store's not-found
// sentinel into the client-facing typed error.
func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return nil, &domain.OrderNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// UpdateOrder validates the supplied fields, then applies them in one
// transaction. Fields left out of the request stay untouched.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, req *domain.UpdateOrderRequest) error {
	if err := s.validateUpdate(ctx, id, req); err != nil {
		return err
	}

	upd := *req
	if upd.Toppings != nil {
		upd.Toppings = dedupe(upd.Toppings)
	}

	if err := s.store.UpdateOrder(ctx, id, &upd); err != nil {
		// The gate saw the order, but the store is authoritative: it can
		// still lose the race to a concurrent delete.
		if errors.Is(err, store.ErrOrderNotFound) {
			return &domain.OrderNotFoundError{ID: id}
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Infow("order updated", "order_id", id)
	return nil
}

// DeleteOrder removes an order and its topping rows. A missing id is a
// not-found failure, never a silent success.
func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return &domain.OrderNotFoundError{ID: id}
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Infow("order deleted", "order_id", id)
	return nil
}

// dedupe collapses duplicate names, preserving first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
