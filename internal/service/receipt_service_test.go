package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thalha/cabslip/internal/receiptid"
	"github.com/thalha/cabslip/internal/storage"
	"github.com/thalha/cabslip/internal/storage/sqlite"
)

func newTestServices(t *testing.T) (*ReceiptService, *ProfileService) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cabslip-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewReceiptService(store, nil), NewProfileService(store, nil)
}

func validInput() *ReceiptInput {
	return &ReceiptInput{
		BoardingLocation:   "Hotel Grand",
		Destination:        "Airport",
		TripStartDate:      time.Now().UnixMilli(),
		PricePerKm:         12.5,
		WaitingChargePerHr: 100.0,
		WaitingHrs:         2.0,
		TotalKm:            40.0,
		TollParking:        75.0,
		Bata:               150.0,
		DriverName:         "Mani",
		DriverMobile:       "9876501234",
		VehicleNumber:      "TN 09 XY 7788",
	}
}

func TestCreateReceipt(t *testing.T) {
	receipts, _ := newTestServices(t)
	ctx := context.Background()

	t.Run("computes and stores the fare breakdown", func(t *testing.T) {
		created, err := receipts.CreateReceipt(ctx, validInput())
		if err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		if !receiptid.Pattern.MatchString(created.ReceiptID) {
			t.Errorf("ReceiptID %q does not match the id format", created.ReceiptID)
		}
		if math.Abs(created.BaseFare-500.0) > 1e-9 {
			t.Errorf("BaseFare = %v, want 500.0", created.BaseFare)
		}
		if math.Abs(created.WaitingFee-200.0) > 1e-9 {
			t.Errorf("WaitingFee = %v, want 200.0", created.WaitingFee)
		}
		if math.Abs(created.TotalFee-925.0) > 1e-9 {
			t.Errorf("TotalFee = %v, want 925.0", created.TotalFee)
		}
		if created.CreatedAt == 0 || created.UpdatedAt == 0 {
			t.Error("expected timestamps to be set")
		}

		// Persisted copy matches the returned one.
		stored, err := receipts.GetReceipt(ctx, created.ReceiptID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if stored.TotalFee != created.TotalFee {
			t.Errorf("stored TotalFee = %v, want %v", stored.TotalFee, created.TotalFee)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*ReceiptInput)
		}{
			{"blank boarding location", func(in *ReceiptInput) { in.BoardingLocation = "  " }},
			{"blank destination", func(in *ReceiptInput) { in.Destination = "" }},
			{"missing trip start", func(in *ReceiptInput) { in.TripStartDate = 0 }},
			{"negative price per km", func(in *ReceiptInput) { in.PricePerKm = -1 }},
			{"negative total km", func(in *ReceiptInput) { in.TotalKm = -0.5 }},
			{"negative waiting hours", func(in *ReceiptInput) { in.WaitingHrs = -2 }},
			{"negative bata", func(in *ReceiptInput) { in.Bata = -10 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput()
				tt.mutate(in)
				_, err := receipts.CreateReceipt(ctx, in)
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			})
		}
	})
}

func TestUpdateReceiptPreservesIdentity(t *testing.T) {
	receipts, _ := newTestServices(t)
	ctx := context.Background()

	created, err := receipts.CreateReceipt(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	in := validInput()
	in.TotalKm = 80.0
	in.TollParking = 0
	updated, err := receipts.UpdateReceipt(ctx, created.ReceiptID, in)
	if err != nil {
		t.Fatalf("UpdateReceipt failed: %v", err)
	}

	if updated.ReceiptID != created.ReceiptID {
		t.Errorf("ReceiptID changed on update: %q -> %q", created.ReceiptID, updated.ReceiptID)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("CreatedAt changed on update: %d -> %d", created.CreatedAt, updated.CreatedAt)
	}
	if math.Abs(updated.BaseFare-1000.0) > 1e-9 {
		t.Errorf("BaseFare = %v, want recomputed 1000.0", updated.BaseFare)
	}
	if math.Abs(updated.TotalFee-1350.0) > 1e-9 {
		t.Errorf("TotalFee = %v, want recomputed 1350.0", updated.TotalFee)
	}
	if updated.UpdatedAt < created.UpdatedAt {
		t.Errorf("UpdatedAt went backwards: %d -> %d", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateMissingReceipt(t *testing.T) {
	receipts, _ := newTestServices(t)

	_, err := receipts.UpdateReceipt(context.Background(), "1700000000000-MISSNG", validInput())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListReceiptsPagination(t *testing.T) {
	receipts, _ := newTestServices(t)
	ctx := context.Background()

	base := time.Now().UnixMilli()
	for i := 0; i < 7; i++ {
		in := validInput()
		in.TripStartDate = base + int64(i*1000)
		if _, err := receipts.CreateReceipt(ctx, in); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
	}

	page1, err := receipts.ListReceipts(ctx, ListQuery{Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if page1.TotalCount != 7 {
		t.Errorf("TotalCount = %d, want 7", page1.TotalCount)
	}
	if len(page1.Receipts) != 3 {
		t.Errorf("page 1 size = %d, want 3", len(page1.Receipts))
	}
	// Newest trip first.
	if page1.Receipts[0].TripStartDate != base+6000 {
		t.Errorf("page 1 starts at %d, want newest %d", page1.Receipts[0].TripStartDate, base+6000)
	}

	page3, err := receipts.ListReceipts(ctx, ListQuery{Page: 3, PageSize: 3})
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(page3.Receipts) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3.Receipts))
	}

	empty, err := receipts.ListReceipts(ctx, ListQuery{Page: 4, PageSize: 3})
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(empty.Receipts) != 0 {
		t.Errorf("page past the end returned %d receipts", len(empty.Receipts))
	}
}

func TestListReceiptsSearchAndDateFilter(t *testing.T) {
	receipts, _ := newTestServices(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	for i, dest := range []string{"Airport", "Station", "Airport Terminal 2"} {
		in := validInput()
		in.Destination = dest
		in.TripStartDate = day.Add(time.Duration(i) * time.Hour).UnixMilli()
		if _, err := receipts.CreateReceipt(ctx, in); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
	}

	search, err := receipts.ListReceipts(ctx, ListQuery{Query: "air"})
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if search.TotalCount != 2 {
		t.Errorf("search TotalCount = %d, want 2", search.TotalCount)
	}

	filtered, err := receipts.ListReceipts(ctx, ListQuery{
		From: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli(),
		To:   time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC).UnixMilli(),
	})
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if filtered.TotalCount != 3 {
		t.Errorf("date filter TotalCount = %d, want 3", filtered.TotalCount)
	}
}

func TestStats(t *testing.T) {
	receipts, _ := newTestServices(t)
	ctx := context.Background()

	empty, err := receipts.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if empty.TotalReceipts != 0 || empty.TotalKilometers != 0 || empty.TotalRevenue != 0 {
		t.Errorf("empty stats = %+v, want zeros", empty)
	}

	for i := 0; i < 2; i++ {
		if _, err := receipts.CreateReceipt(ctx, validInput()); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
	}

	stats, err := receipts.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalReceipts != 2 {
		t.Errorf("TotalReceipts = %d, want 2", stats.TotalReceipts)
	}
	if math.Abs(stats.TotalKilometers-80.0) > 1e-9 {
		t.Errorf("TotalKilometers = %v, want 80.0", stats.TotalKilometers)
	}
	if math.Abs(stats.TotalRevenue-1850.0) > 1e-9 {
		t.Errorf("TotalRevenue = %v, want 1850.0", stats.TotalRevenue)
	}
}

func TestProfileService(t *testing.T) {
	_, profiles := newTestServices(t)
	ctx := context.Background()

	t.Run("absent before setup", func(t *testing.T) {
		info, err := profiles.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if info != nil {
			t.Errorf("expected nil before setup, got %+v", info)
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := profiles.Upsert(ctx, &ProfileInput{CabName: "X"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("upsert preserves createdAt", func(t *testing.T) {
		first, err := profiles.Upsert(ctx, &ProfileInput{
			CabName:        "City Cabs",
			CabAddress:     "1 Beach Road",
			PrimaryContact: "9800000000",
			Email:          "city@example.com",
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		second, err := profiles.Upsert(ctx, &ProfileInput{
			CabName:        "City Cabs Renamed",
			CabAddress:     "1 Beach Road",
			PrimaryContact: "9800000000",
			Email:          "city@example.com",
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		if second.CreatedAt != first.CreatedAt {
			t.Errorf("CreatedAt changed on update: %d -> %d", first.CreatedAt, second.CreatedAt)
		}
		if second.UpdatedAt < first.UpdatedAt {
			t.Errorf("UpdatedAt went backwards")
		}
		if second.CabName != "City Cabs Renamed" {
			t.Errorf("CabName = %q", second.CabName)
		}
	})
}
