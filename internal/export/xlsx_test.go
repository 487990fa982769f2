package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cabslip-export-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestReceiptsXLSX(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewService(store, nil)

	receipts := []*models.Receipt{
		{
			ReceiptID: "1700000000001-XLSX01", BoardingLocation: "A", Destination: "Airport",
			TripStartDate: 1700000000001, PricePerKm: 10, TotalKm: 12.345,
			DriverName: "Ravi", DriverMobile: "98765", VehicleNumber: "TN 01",
			BaseFare: 123.45, TotalFee: 123.456, CreatedAt: 1, UpdatedAt: 1,
		},
		{
			ReceiptID: "1700000000002-XLSX02", BoardingLocation: "B", Destination: "Station",
			TripStartDate: 1700000000002, PricePerKm: 11, TotalKm: 5,
			DriverName: "Kumar", DriverMobile: "91234", VehicleNumber: "TN 02",
			BaseFare: 55, TotalFee: 55, CreatedAt: 1, UpdatedAt: 1,
		},
	}
	for _, r := range receipts {
		if err := store.InsertReceipt(ctx, r); err != nil {
			t.Fatalf("InsertReceipt failed: %v", err)
		}
	}

	out, err := svc.ReceiptsXLSX(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ReceiptsXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Receipts")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	// Header + 2 data rows.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Receipt ID" {
		t.Errorf("header = %q, want %q", rows[0][0], "Receipt ID")
	}

	// Newest trip first, same ordering as the receipts list.
	if rows[1][0] != "1700000000002-XLSX02" {
		t.Errorf("first data row = %q, want newest receipt", rows[1][0])
	}
}

func TestReceiptsXLSXEmptyStore(t *testing.T) {
	svc := NewService(newTestStore(t), nil)

	out, err := svc.ReceiptsXLSX(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ReceiptsXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Receipts")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows for empty store, want header only", len(rows))
	}
}

func TestExportFileName(t *testing.T) {
	got := FileName(time.Date(2024, 3, 10, 9, 5, 42, 0, time.UTC))
	want := "cabslip_receipts_2024-03-10_09-05-42.xlsx"
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}
