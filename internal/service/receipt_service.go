package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thalha/cabslip/internal/fare"
	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/receiptid"
	"github.com/thalha/cabslip/internal/storage"
)

// DefaultPageSize is used when a caller does not specify one.
const DefaultPageSize = 20

// ReceiptService orchestrates the receipt lifecycle: validation, fare
// computation at write time, id generation on create, and paginated
// queries.
type ReceiptService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewReceiptService creates a ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store, logger *slog.Logger) *ReceiptService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptService{store: store, logger: logger}
}

// ReceiptInput carries the caller-supplied fields of a receipt. Derived
// fares, id, and timestamps are filled in by the service.
type ReceiptInput struct {
	BoardingLocation   string
	Destination        string
	TripStartDate      int64
	TripEndDate        *int64
	PricePerKm         float64
	WaitingChargePerHr float64
	WaitingHrs         float64
	TotalKm            float64
	TollParking        float64
	Bata               float64
	DriverName         string
	DriverMobile       string
	VehicleNumber      string
	OwnerSignaturePath *string
}

func validateReceiptInput(in *ReceiptInput) error {
	switch {
	case strings.TrimSpace(in.BoardingLocation) == "":
		return requiredError("boardingLocation")
	case strings.TrimSpace(in.Destination) == "":
		return requiredError("destination")
	case in.TripStartDate <= 0:
		return requiredError("tripStartDate")
	case in.PricePerKm < 0:
		return negativeError("pricePerKm")
	case in.TotalKm < 0:
		return negativeError("totalKm")
	case in.WaitingChargePerHr < 0:
		return negativeError("waitingChargePerHr")
	case in.WaitingHrs < 0:
		return negativeError("waitingHrs")
	case in.TollParking < 0:
		return negativeError("tollParking")
	case in.Bata < 0:
		return negativeError("bata")
	}
	return nil
}

// applyInput copies caller fields onto a receipt and recomputes the
// derived fare fields.
func applyInput(receipt *models.Receipt, in *ReceiptInput) {
	breakdown := fare.Calculate(fare.Inputs{
		PricePerKm:         in.PricePerKm,
		TotalKm:            in.TotalKm,
		WaitingChargePerHr: in.WaitingChargePerHr,
		WaitingHrs:         in.WaitingHrs,
		TollParking:        in.TollParking,
		Bata:               in.Bata,
	})

	receipt.BoardingLocation = in.BoardingLocation
	receipt.Destination = in.Destination
	receipt.TripStartDate = in.TripStartDate
	receipt.TripEndDate = in.TripEndDate
	receipt.PricePerKm = in.PricePerKm
	receipt.WaitingChargePerHr = in.WaitingChargePerHr
	receipt.WaitingHrs = in.WaitingHrs
	receipt.TotalKm = in.TotalKm
	receipt.TollParking = in.TollParking
	receipt.Bata = in.Bata
	receipt.DriverName = in.DriverName
	receipt.DriverMobile = in.DriverMobile
	receipt.VehicleNumber = in.VehicleNumber
	receipt.OwnerSignaturePath = in.OwnerSignaturePath
	receipt.BaseFare = breakdown.BaseFare
	receipt.WaitingFee = breakdown.WaitingFee
	receipt.TotalFee = breakdown.TotalFee
}

// CreateReceipt validates the input, computes the fare breakdown,
// generates a unique receipt id, and persists the new receipt.
func (s *ReceiptService) CreateReceipt(ctx context.Context, in *ReceiptInput) (*models.Receipt, error) {
	if err := validateReceiptInput(in); err != nil {
		return nil, err
	}

	id, err := receiptid.Generate(ctx, s.store.ReceiptIDExists)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	receipt := &models.Receipt{
		ReceiptID: id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(receipt, in)

	if err := s.store.InsertReceipt(ctx, receipt); err != nil {
		s.logger.Error("failed to insert receipt", "receipt_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("receipt created", "receipt_id", id, "total_fee", receipt.TotalFee)
	return receipt, nil
}

// UpdateReceipt validates the input, recomputes the fare breakdown, and
// replaces the stored receipt. ReceiptID and CreatedAt never change.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id string, in *ReceiptInput) (*models.Receipt, error) {
	if err := validateReceiptInput(in); err != nil {
		return nil, err
	}

	receipt, err := s.store.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	applyInput(receipt, in)
	receipt.UpdatedAt = time.Now().UnixMilli()

	if err := s.store.UpdateReceipt(ctx, receipt); err != nil {
		s.logger.Error("failed to update receipt", "receipt_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("receipt updated", "receipt_id", id, "total_fee", receipt.TotalFee)
	return receipt, nil
}

// GetReceipt retrieves a single receipt by id.
func (s *ReceiptService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.store.GetReceipt(ctx, id)
}

// DeleteReceipt removes a receipt by id.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id string) error {
	if err := s.store.DeleteReceipt(ctx, id); err != nil {
		return err
	}
	s.logger.Info("receipt deleted", "receipt_id", id)
	return nil
}

// ListQuery selects which receipts to return. Query and the date range
// are mutually exclusive; when both are set, the text search wins,
// matching the original workflow where the search box cleared the date
// filter.
type ListQuery struct {
	// Query is a case-insensitive substring matched against driver name,
	// receipt id, and destination.
	Query string
	// From/To bound the trip start date, inclusive, epoch ms. Active when
	// To > 0.
	From int64
	To   int64
	// Page is 1-based. PageSize defaults to DefaultPageSize.
	Page     int
	PageSize int
}

// ReceiptPage is one page of results plus the total for the predicate, so
// callers know when pagination is exhausted.
type ReceiptPage struct {
	Receipts   []*models.Receipt `json:"receipts"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

// ListReceipts returns a page of receipts ordered by trip start date
// descending, selected by text search, date range, or neither.
func (s *ReceiptService) ListReceipts(ctx context.Context, q ListQuery) (*ReceiptPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	offset := (q.Page - 1) * q.PageSize

	var (
		receipts []*models.Receipt
		total    int
		err      error
	)
	switch {
	case q.Query != "":
		receipts, err = s.store.SearchReceipts(ctx, q.Query, q.PageSize, offset)
		if err == nil {
			total, err = s.store.CountSearchReceipts(ctx, q.Query)
		}
	case q.To > 0:
		receipts, err = s.store.FilterReceiptsByDateRange(ctx, q.From, q.To, q.PageSize, offset)
		if err == nil {
			total, err = s.store.CountReceiptsInDateRange(ctx, q.From, q.To)
		}
	default:
		receipts, err = s.store.ListReceipts(ctx, q.PageSize, offset)
		if err == nil {
			total, err = s.store.CountReceipts(ctx)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	if receipts == nil {
		receipts = []*models.Receipt{}
	}
	return &ReceiptPage{
		Receipts:   receipts,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

// Stats are the dashboard summary aggregates.
type Stats struct {
	TotalReceipts   int     `json:"totalReceipts"`
	TotalKilometers float64 `json:"totalKilometers"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// Stats returns the dashboard aggregates; an empty store yields zeros.
func (s *ReceiptService) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.store.CountReceipts(ctx)
	if err != nil {
		return nil, err
	}
	km, err := s.store.TotalKilometers(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalReceipts: count, TotalKilometers: km, TotalRevenue: revenue}, nil
}
