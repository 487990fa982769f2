// Package backup serializes the full store to a portable JSON document and
// restores from one. Export is read-only against the store; restore is
// destructive and applies through a single storage transaction, so the
// store ends up all-old or all-new.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage"
)

// Version is the schema version tag written into every exported document.
const Version = 1

// Document is the portable snapshot of the operator profile and all
// receipts. It exists only as the serialized interchange artifact; it is
// never persisted locally.
type Document struct {
	Version   int               `json:"version"`
	Timestamp int64             `json:"timestamp"`
	CabInfo   *models.CabInfo   `json:"cabInfo"`
	Receipts  []*models.Receipt `json:"receipts"`
}

// Engine composes the persistence store into export and restore flows.
type Engine struct {
	store  storage.Store
	logger *slog.Logger
}

// NewEngine creates a backup engine over the given store.
func NewEngine(store storage.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// Snapshot reads the profile (possibly absent) and the full ordered
// receipt collection into a Document tagged with the current version and
// export time.
func (e *Engine) Snapshot(ctx context.Context) (*Document, error) {
	info, err := e.store.CabInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cab info for backup: %w", err)
	}

	count, err := e.store.CountReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts for backup: %w", err)
	}

	var receipts []*models.Receipt
	if count > 0 {
		receipts, err = e.store.ListReceipts(ctx, count, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to read receipts for backup: %w", err)
		}
	}
	if receipts == nil {
		receipts = []*models.Receipt{}
	}

	return &Document{
		Version:   Version,
		Timestamp: time.Now().UnixMilli(),
		CabInfo:   info,
		Receipts:  receipts,
	}, nil
}

// Export writes a pretty-printed snapshot of the store to w. A failure
// mid-write may leave a truncated destination; the caller treats that as a
// failed export and retries, internal storage is unaffected either way.
func (e *Engine) Export(ctx context.Context, w io.Writer) error {
	doc, err := e.Snapshot(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	e.logger.Info("backup exported", "receipts", len(doc.Receipts), "has_cab_info", doc.CabInfo != nil)
	return nil
}

// Parse reads and validates a backup document from r. The payload is
// checked against the backup JSON Schema before decoding, so a malformed
// file is rejected before any destructive restore step can begin. Unknown
// fields are ignored for forward compatibility.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	if err := validateDocument(data); err != nil {
		return nil, err
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if doc.Receipts == nil {
		doc.Receipts = []*models.Receipt{}
	}

	return doc, nil
}

// Restore destructively replaces the store contents with the document:
// every existing receipt is removed, the profile is replaced (or cleared
// when the document carries none), and the document's receipts are
// inserted verbatim with their original ids, derived fares, and
// timestamps. Binary assets referenced by logo/signature paths are not
// part of the document and are not restored.
func (e *Engine) Restore(ctx context.Context, doc *Document) error {
	if err := e.store.ReplaceAll(ctx, doc.CabInfo, doc.Receipts); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	e.logger.Info("backup restored", "receipts", len(doc.Receipts), "has_cab_info", doc.CabInfo != nil)
	return nil
}

// FileName returns the conventional export file name for the given
// wall-clock time: cabslip_backup_{yyyy-MM-dd_HH-mm-ss}.json.
func FileName(t time.Time) string {
	return fmt.Sprintf("cabslip_backup_%s.json", t.Format("2006-01-02_15-04-05"))
}
