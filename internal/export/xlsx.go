// Package export produces spreadsheet exports of the receipt collection
// for bookkeeping outside the application.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thalha/cabslip/internal/fare"
	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage"
)

// Service is a small façade over the store that produces XLSX bytes.
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

// NewService creates an export service over the given store.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

var headers = []string{
	"Receipt ID", "Boarding", "Destination", "Trip Start", "Trip End",
	"Driver", "Driver Mobile", "Vehicle No",
	"Total Km", "Price/Km", "Base Fare", "Waiting Hrs", "Waiting Fee",
	"Toll/Parking", "Bata", "Total Fee",
}

// ReceiptsXLSX returns an XLSX workbook of receipts. When to > 0 only
// trips starting in [from, to] are included, otherwise all receipts.
// Monetary cells carry presentation rounding; the stored values are
// untouched.
func (s *Service) ReceiptsXLSX(ctx context.Context, from, to int64) ([]byte, error) {
	start := time.Now()

	var count int
	var err error
	if to > 0 {
		count, err = s.store.CountReceiptsInDateRange(ctx, from, to)
	} else {
		count, err = s.store.CountReceipts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts for export: %w", err)
	}

	var receipts []*models.Receipt
	if count > 0 {
		if to > 0 {
			receipts, err = s.store.FilterReceiptsByDateRange(ctx, from, to, count, 0)
		} else {
			receipts, err = s.store.ListReceipts(ctx, count, 0)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read receipts for export: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Receipts"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for rowIdx, r := range receipts {
		end := ""
		if r.TripEndDate != nil {
			end = formatMillis(*r.TripEndDate)
		}
		values := []interface{}{
			r.ReceiptID, r.BoardingLocation, r.Destination,
			formatMillis(r.TripStartDate), end,
			r.DriverName, r.DriverMobile, r.VehicleNumber,
			r.TotalKm, r.PricePerKm, fare.Round2(r.BaseFare),
			r.WaitingHrs, fare.Round2(r.WaitingFee),
			fare.Round2(r.TollParking), fare.Round2(r.Bata), fare.Round2(r.TotalFee),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("receipts exported to xlsx", "rows", len(receipts), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

// FileName returns the conventional export file name for the given time.
func FileName(t time.Time) string {
	return fmt.Sprintf("cabslip_receipts_%s.xlsx", t.Format("2006-01-02_15-04-05"))
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
