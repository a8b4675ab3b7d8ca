package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/pkg/metrics"
)

// DBStore is the database-backed order repository. Every mutation runs
// on a single transaction acquired from the shared pool and released on
// every exit path via the deferred rollback.
type DBStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewDBStore creates a new DBStore on top of an open pool.
func NewDBStore(db *sql.DB, logger logger.Logger) *DBStore {
	return &DBStore{
		db:     db,
		logger: logger,
	}
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so name
// resolution works inside and outside a transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolveID maps a catalog display name to its stable id. A name absent
// from its catalog yields ErrNameNotFound wrapped with catalog and name,
// which aborts any enclosing transaction.
func resolveID(ctx context.Context, q rowQuerier, c domain.Catalog, name string) (int64, error) {
	var query string
	switch c {
	case domain.CatalogSize:
		query = qResolveSize
	case domain.CatalogSauce:
		query = qResolveSauce
	case domain.CatalogTopping:
		query = qResolveTopping
	default:
		return 0, fmt.Errorf("unknown catalog %v", c)
	}

	var id int64
	err := q.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s %q", ErrNameNotFound, c, name)
		}
		return 0, wrap(fmt.Sprintf("resolving %s %q", c, name), err)
	}
	return id, nil
}

// ListCatalog returns the names of one catalog, freshly queried.
func (s *DBStore) ListCatalog(ctx context.Context, c domain.Catalog) ([]string, error) {
	defer observe("list_catalog")()

	var query string
	switch c {
	case domain.CatalogSize:
		query = qListSizes
	case domain.CatalogSauce:
		query = qListSauces
	case domain.CatalogTopping:
		query = qListToppings
	default:
		return nil, fmt.Errorf("unknown catalog %v", c)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(fmt.Sprintf("listing %s catalog", c), err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning %s name: %w", c, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(fmt.Sprintf("listing %s catalog", c), err)
	}
	return names, nil
}

// OrderExists reports whether an order row with the given id exists.
func (s *DBStore) OrderExists(ctx context.Context, id int64) (bool, error) {
	defer observe("order_exists")()

	var exists bool
	if err := s.db.QueryRowContext(ctx, qOrderExists, id).Scan(&exists); err != nil {
		return false, wrap(fmt.Sprintf("checking order %d", id), err)
	}
	return exists, nil
}

// CreateOrder inserts an order and its topping rows atomically and
// returns the generated order id. Names are re-resolved inside the
// transaction: the store does not trust that the validation gate ran,
// so a missing name still aborts the whole insert with ErrNameNotFound.
func (s *DBStore) CreateOrder(ctx context.Context, size, sauce string, toppings []string) (int64, error) {
	defer observe("create_order")()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrap("beginning transaction", err)
	}
	defer tx.Rollback()

	sizeID, err := resolveID(ctx, tx, domain.CatalogSize, size)
	if err != nil {
		return 0, err
	}
	sauceID, err := resolveID(ctx, tx, domain.CatalogSauce, sauce)
	if err != nil {
		return 0, err
	}

	toppingIDs := make([]int64, 0, len(toppings))
	for _, name := range toppings {
		id, err := resolveID(ctx, tx, domain.CatalogTopping, name)
		if err != nil {
			return 0, err
		}
		toppingIDs = append(toppingIDs, id)
	}

	var orderID int64
	if err := tx.QueryRowContext(ctx, qInsertOrder, sizeID, sauceID).Scan(&orderID); err != nil {
		return 0, wrap("inserting order", err)
	}

	for _, toppingID := range toppingIDs {
		if _, err := tx.ExecContext(ctx, qInsertOrderTopping, orderID, toppingID); err != nil {
			return 0, wrap("inserting order topping", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrap("committing order", err)
	}
	return orderID, nil
}

// GetOrder retrieves a single order as a JSON object built by the
// database and decodes it into the domain view. ErrOrderNotFound is the
// one benign failure; everything else is a storage fault.
func (s *DBStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	defer observe("get_order")()

	var jsonBytes []byte
	err := s.db.QueryRowContext(ctx, qOrderJSON, id).Scan(&jsonBytes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
		}
		return nil, wrap(fmt.Sprintf("querying order %d", id), err)
	}

	var order domain.Order
	if err := json.Unmarshal(jsonBytes, &order); err != nil {
		return nil, fmt.Errorf("unmarshaling order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrder applies the supplied fields of upd to an order in one
// transaction. Unsupplied fields stay untouched; supplied toppings
// replace the existing set wholesale. Any failure rolls the order back
// to its pre-call state.
func (s *DBStore) UpdateOrder(ctx context.Context, id int64, upd *domain.UpdateOrderRequest) error {
	defer observe("update_order")()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("beginning transaction", err)
	}
	defer tx.Rollback()

	// touched flips once an UPDATE has confirmed the order row exists.
	touched := false

	if upd.Size != "" {
		sizeID, err := resolveID(ctx, tx, domain.CatalogSize, upd.Size)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, qUpdateOrderSize, sizeID, id)
		if err != nil {
			return wrap("updating order size", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("updating order size: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
		}
		touched = true
	}

	if upd.Sauce != "" {
		sauceID, err := resolveID(ctx, tx, domain.CatalogSauce, upd.Sauce)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, qUpdateOrderSauce, sauceID, id)
		if err != nil {
			return wrap("updating order sauce", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("updating order sauce: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
		}
		touched = true
	}

	if len(upd.Toppings) > 0 {
		if !touched {
			// A delete affecting zero rows proves nothing (an order may
			// have no toppings), so confirm existence explicitly.
			var exists bool
			if err := tx.QueryRowContext(ctx, qOrderExists, id).Scan(&exists); err != nil {
				return wrap(fmt.Sprintf("checking order %d", id), err)
			}
			if !exists {
				return fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
			}
		}

		if _, err := tx.ExecContext(ctx, qDeleteOrderToppings, id); err != nil {
			return wrap("clearing order toppings", err)
		}
		for _, name := range upd.Toppings {
			toppingID, err := resolveID(ctx, tx, domain.CatalogTopping, name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, qInsertOrderTopping, id, toppingID); err != nil {
				return wrap("inserting order topping", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return wrap("committing order update", err)
	}
	return nil
}

// DeleteOrder removes an order and, through ON DELETE CASCADE, its
// topping rows in one transaction. Zero rows affected means the id
// never existed: the transaction rolls back and ErrOrderNotFound is
// returned, never a silent success.
func (s *DBStore) DeleteOrder(ctx context.Context, id int64) error {
	defer observe("delete_order")()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, qDeleteOrder, id)
	if err != nil {
		return wrap(fmt.Sprintf("deleting order %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return wrap("committing order delete", err)
	}
	return nil
}

// observe times a store operation for the db_response_time histogram.
func observe(operation string) func() {
	start := time.Now()
	return func() {
		metrics.DBResponseTime.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// wrap annotates an error with the failed action, collapsing driver
// connectivity failures into ErrConnectionFailed.
func wrap(action string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w", action, ErrConnectionFailed)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
