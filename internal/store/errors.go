package store

import "errors"

// Sentinel errors keep the upper layers independent of the underlying
// datastore: the service never sees sql.ErrNoRows or a raw pg error.

var (
	// ErrOrderNotFound is returned when no order row matches the given id.
	ErrOrderNotFound = errors.New("no such order exists")
	// ErrNameNotFound is returned when a catalog has no row for a name.
	// Wrapping adds the catalog and the offending name.
	ErrNameNotFound = errors.New("no such name in catalog")

	// ErrConnectionFailed marks failures of the connection itself, kept
	// separate from query errors so callers can tell an outage apart
	// from a bad statement.
	ErrConnectionFailed = errors.New("connection to the database failed")
)
