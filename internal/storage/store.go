// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/thalha/cabslip/internal/models"
)

// ErrNotFound is returned when a lookup, update, or delete targets a row
// that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when an insert collides with an existing
// receipt id. It can only surface when the id generator's collision check
// was bypassed.
var ErrDuplicateID = errors.New("receipt id already exists")

// Store defines the persistence contract for the operator profile and the
// receipt collection. This abstraction allows swapping storage backends
// without changing the service layer; cabslip ships a SQLite backend.
//
// All receipt listings are ordered by trip start date descending with a
// stable tie-break, so paginating with a fixed page size yields every row
// exactly once as long as no writes happen between page fetches.
type Store interface {
	// CabInfo returns the singleton operator profile, or nil when first-run
	// setup has not happened yet.
	CabInfo(ctx context.Context) (*models.CabInfo, error)

	// UpsertCabInfo replaces the singleton profile row.
	UpsertCabInfo(ctx context.Context, info *models.CabInfo) error

	// ListReceipts returns a page of receipts.
	ListReceipts(ctx context.Context, limit, offset int) ([]*models.Receipt, error)

	// SearchReceipts returns a page of receipts whose driver name, receipt
	// id, or destination contains the query (case-insensitive substring).
	SearchReceipts(ctx context.Context, query string, limit, offset int) ([]*models.Receipt, error)

	// FilterReceiptsByDateRange returns a page of receipts whose trip start
	// date falls in [from, to], both bounds inclusive, epoch milliseconds.
	FilterReceiptsByDateRange(ctx context.Context, from, to int64, limit, offset int) ([]*models.Receipt, error)

	// CountReceipts, CountSearchReceipts and CountReceiptsInDateRange
	// return the totals matching the respective predicate, used to know
	// when pagination is exhausted.
	CountReceipts(ctx context.Context) (int, error)
	CountSearchReceipts(ctx context.Context, query string) (int, error)
	CountReceiptsInDateRange(ctx context.Context, from, to int64) (int, error)

	// GetReceipt returns a single receipt or ErrNotFound.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// ReceiptIDExists reports whether a receipt with the given id exists.
	ReceiptIDExists(ctx context.Context, id string) (bool, error)

	// InsertReceipt persists a new receipt. Returns ErrDuplicateID when the
	// id is already taken.
	InsertReceipt(ctx context.Context, receipt *models.Receipt) error

	// UpdateReceipt replaces a receipt by id. Returns ErrNotFound when no
	// such receipt exists.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// DeleteReceipt removes a receipt by id. Returns ErrNotFound when no
	// such receipt exists.
	DeleteReceipt(ctx context.Context, id string) error

	// DeleteAllReceipts clears the entire receipt collection.
	DeleteAllReceipts(ctx context.Context) error

	// TotalKilometers and TotalRevenue are the dashboard aggregates: sums
	// of totalKm and totalFee across all receipts. An empty collection
	// yields 0, not an error.
	TotalKilometers(ctx context.Context) (float64, error)
	TotalRevenue(ctx context.Context) (float64, error)

	// ReplaceAll atomically swaps the full store contents: all receipts are
	// deleted, the profile is replaced (or removed when info is nil), and
	// the given receipts are inserted verbatim. Used by backup restore so
	// the store is all-old or all-new, never partially restored.
	ReplaceAll(ctx context.Context, info *models.CabInfo, receipts []*models.Receipt) error

	// Notifier returns the change-notification hub for this store.
	// Subscribers receive a table event after every committed write that
	// touched it and re-run their queries for fresh snapshots.
	Notifier() *Notifier

	// Close releases any resources held by the store.
	Close() error
}
