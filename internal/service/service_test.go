package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/store"
)

// MockOrderStore is a mock implementation of the OrderStore interface.
type MockOrderStore struct {
	mock.Mock
}

var _ OrderStore = (*MockOrderStore)(nil)

func (m *MockOrderStore) ListCatalog(ctx context.Context, c domain.Catalog) ([]string, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderStore) OrderExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, size, sauce string, toppings []string) (int64, error) {
	args := m.Called(ctx, size, sauce, toppings)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(ctx context.Context, id int64, upd *domain.UpdateOrderRequest) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockOrderStore) DeleteOrder(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	sizes    = []string{"Small", "Medium", "Large"}
	sauces   = []string{"Tomato", "BBQ", "Pesto"}
	toppings = []string{"Pepperoni", "Olives", "Cheese", "Onions", "Mushrooms", "Bacon"}
)

func expectCatalogs(m *MockOrderStore, catalogs ...domain.Catalog) {
	for _, c := range catalogs {
		switch c {
		case domain.CatalogSize:
			m.On("ListCatalog", mock.Anything, domain.CatalogSize).Return(sizes, nil).Once()
		case domain.CatalogSauce:
			m.On("ListCatalog", mock.Anything, domain.CatalogSauce).Return(sauces, nil).Once()
		case domain.CatalogTopping:
			m.On("ListCatalog", mock.Anything, domain.CatalogTopping).Return(toppings, nil).Once()
		}
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		expectCatalogs(mockStore, domain.CatalogSize, domain.CatalogSauce, domain.CatalogTopping)
		mockStore.On("CreateOrder", ctx, "Large", "Tomato", []string{"Cheese", "Pepperoni"}).
			Return(int64(1), nil).Once()

		id, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
			Size:     "Large",
			Sauce:    "Tomato",
			Toppings: []string{"Cheese", "Pepperoni"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
		mockStore.AssertExpectations(t)
	})

	t.Run("duplicate toppings collapsed", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		expectCatalogs(mockStore, domain.CatalogSize, domain.CatalogSauce, domain.CatalogTopping)
		mockStore.On("CreateOrder", ctx, "Small", "BBQ", []string{"Bacon", "Onions"}).
			Return(int64(2), nil).Once()

		_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
			Size:     "Small",
			Sauce:    "BBQ",
			Toppings: []string{"Bacon", "Onions", "Bacon"},
		})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("malformed request stops before any store call", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())

		_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{Size: "Large"})

		var malformed *domain.MalformedError
		assert.ErrorAs(t, err, &malformed)
		mockStore.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid topping reported with full options list", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		expectCatalogs(mockStore, domain.CatalogSize, domain.CatalogSauce, domain.CatalogTopping)

		_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
			Size:     "Large",
			Sauce:    "Tomato",
			Toppings: []string{"Cheese", "Pineapple"},
		})

		var invalid *domain.InvalidChoiceError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, "toppings", invalid.Field)
		assert.Equal(t, "Pineapple", invalid.Value)
		assert.Equal(t, toppings, invalid.ValidOptions)
		mockStore.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid size fails before sauce check", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		expectCatalogs(mockStore, domain.CatalogSize)

		_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
			Size:     "Gigantic",
			Sauce:    "Tomato",
			Toppings: []string{"Cheese"},
		})

		var invalid *domain.InvalidChoiceError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, "size", invalid.Field)
		mockStore.AssertExpectations(t)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		order := &domain.Order{ID: 1, Size: "Large", Sauce: "Tomato", Toppings: []string{"Cheese"}}
		mockStore.On("GetOrder", ctx, int64(1)).Return(order, nil).Once()

		got, err := svc.GetOrder(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, order, got)
		mockStore.AssertExpectations(t)
	})

	t.Run("not found translated to typed error", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("GetOrder", ctx, int64(42)).Return(nil, store.ErrOrderNotFound).Once()

		_, err := svc.GetOrder(ctx, 42)

		var notFound *domain.OrderNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(42), notFound.ID)
	})

	t.Run("storage fault passes through untyped", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("GetOrder", ctx, int64(1)).Return(nil, errors.New("boom")).Once()

		_, err := svc.GetOrder(ctx, 1)

		assert.Error(t, err)
		var notFound *domain.OrderNotFoundError
		assert.False(t, errors.As(err, &notFound))
	})
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("sauce only", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("OrderExists", ctx, int64(1)).Return(true, nil).Once()
		expectCatalogs(mockStore, domain.CatalogSauce)
		mockStore.On("UpdateOrder", ctx, int64(1), &domain.UpdateOrderRequest{Sauce: "BBQ"}).
			Return(nil).Once()

		err := svc.UpdateOrder(ctx, 1, &domain.UpdateOrderRequest{Sauce: "BBQ"})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("no fields supplied", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())

		err := svc.UpdateOrder(ctx, 1, &domain.UpdateOrderRequest{})

		var malformed *domain.MalformedError
		assert.ErrorAs(t, err, &malformed)
		mockStore.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("OrderExists", ctx, int64(7)).Return(false, nil).Once()

		err := svc.UpdateOrder(ctx, 7, &domain.UpdateOrderRequest{Sauce: "BBQ"})

		var notFound *domain.OrderNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(7), notFound.ID)
		mockStore.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid sauce after existence check", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("OrderExists", ctx, int64(1)).Return(true, nil).Once()
		expectCatalogs(mockStore, domain.CatalogSauce)

		err := svc.UpdateOrder(ctx, 1, &domain.UpdateOrderRequest{Sauce: "Ranch"})

		var invalid *domain.InvalidChoiceError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, "sauce", invalid.Field)
		assert.Equal(t, sauces, invalid.ValidOptions)
	})

	t.Run("store loses race to concurrent delete", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("OrderExists", ctx, int64(1)).Return(true, nil).Once()
		expectCatalogs(mockStore, domain.CatalogSauce)
		mockStore.On("UpdateOrder", ctx, int64(1), mock.Anything).
			Return(store.ErrOrderNotFound).Once()

		err := svc.UpdateOrder(ctx, 1, &domain.UpdateOrderRequest{Sauce: "BBQ"})

		var notFound *domain.OrderNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("DeleteOrder", ctx, int64(1)).Return(nil).Once()

		assert.NoError(t, svc.DeleteOrder(ctx, 1))
		mockStore.AssertExpectations(t)
	})

	t.Run("not found is surfaced, not swallowed", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		svc := New(mockStore, logger.NewNop())
		mockStore.On("DeleteOrder", ctx, int64(9)).Return(store.ErrOrderNotFound).Once()

		err := svc.DeleteOrder(ctx, 9)

		var notFound *domain.OrderNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func Test_dedupe(t *testing.T) {
	assert.Equal(t, []string{"Cheese", "Bacon"}, dedupe([]string{"Cheese", "Bacon", "Cheese", "Bacon"}))
	assert.Equal(t, []string{"Cheese"}, dedupe([]string{"Cheese"}))
	assert.Empty(t, dedupe(nil))
}
