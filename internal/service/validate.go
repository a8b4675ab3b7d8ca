package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/broncospizza/orders-api/internal/domain"
)

// The validation gate runs before any transaction opens: shape check,
// then existence check (updates only), then catalog membership in
// size, sauce, toppings order. The first failing check wins, there is
// no error aggregation. Membership reads the catalogs fresh so a
// rejection can carry the full, current list of valid options.
//
// The gate and the store's own resolution deliberately do not share a
// transaction; the store re-resolves authoritatively at write time.

func (s *orderService) validateCreate(ctx context.Context, req *domain.CreateOrderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.checkChoice(ctx, domain.CatalogSize, "size", req.Size); err != nil {
		return err
	}
	if err := s.checkChoice(ctx, domain.CatalogSauce, "sauce", req.Sauce); err != nil {
		return err
	}
	return s.checkToppings(ctx, req.Toppings)
}

func (s *orderService) validateUpdate(ctx context.Context, id int64, req *domain.UpdateOrderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	exists, err := s.store.OrderExists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check order %d: %w", id, err)
	}
	if !exists {
		return &domain.OrderNotFoundError{ID: id}
	}

	if req.Size != "" {
		if err := s.checkChoice(ctx, domain.CatalogSize, "size", req.Size); err != nil {
			return err
		}
	}
	if req.Sauce != "" {
		if err := s.checkChoice(ctx, domain.CatalogSauce, "sauce", req.Sauce); err != nil {
			return err
		}
	}
	if len(req.Toppings) > 0 {
		return s.checkToppings(ctx, req.Toppings)
	}
	return nil
}

// checkChoice verifies membership of value in one catalog.
func (s *orderService) checkChoice(ctx context.Context, c domain.Catalog, field, value string) error {
	options, err := s.store.ListCatalog(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to list %s catalog: %w", c, err)
	}
	if !slices.Contains(options, value) {
		return &domain.InvalidChoiceError{Field: field, Value: value, ValidOptions: options}
	}
	return nil
}

// checkToppings verifies every topping in list order against one fresh
// catalog read; the first invalid name is reported.
func (s *orderService) checkToppings(ctx context.Context, toppings []string) error {
	options, err := s.store.ListCatalog(ctx, domain.CatalogTopping)
	if err != nil {
		return fmt.Errorf("failed to list topping catalog: %w", err)
	}
	for _, t := range toppings {
		if !slices.Contains(options, t) {
			return &domain.InvalidChoiceError{Field: "toppings", Value: t, ValidOptions: options}
		}
	}
	return nil
}
