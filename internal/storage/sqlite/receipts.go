package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage"
)

// receiptColumns is the column list shared by every receipt SELECT, in
// scanReceipt order.
const receiptColumns = `receipt_id, boarding_location, destination, trip_start_date, trip_end_date,
	price_per_km, waiting_charge_per_hr, waiting_hrs, total_km, toll_parking, bata,
	driver_name, driver_mobile, vehicle_number, owner_signature_path,
	base_fare, waiting_fee, total_fee, created_at, updated_at`

// searchPredicate matches receipts whose driver name, receipt id, or
// destination contains the query. SQLite LIKE is case-insensitive for
// ASCII; lower() keeps the behavior explicit.
const searchPredicate = `lower(driver_name) LIKE lower(?)
	OR lower(receipt_id) LIKE lower(?)
	OR lower(destination) LIKE lower(?)`

// Listings are ordered by trip start date descending; rowid breaks ties in
// insertion order so pagination windows are stable between calls.
const listOrder = ` ORDER BY trip_start_date DESC, rowid ASC`

// ListReceipts returns a page of receipts ordered by trip start date descending.
func (s *SQLiteStore) ListReceipts(ctx context.Context, limit, offset int) ([]*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts` + listOrder + ` LIMIT ? OFFSET ?`
	return s.queryReceipts(ctx, query, limit, offset)
}

// SearchReceipts returns a page of receipts matching a case-insensitive
// substring search over driver name, receipt id, and destination.
func (s *SQLiteStore) SearchReceipts(ctx context.Context, query string, limit, offset int) ([]*models.Receipt, error) {
	q := `SELECT ` + receiptColumns + ` FROM receipts WHERE ` + searchPredicate + listOrder + ` LIMIT ? OFFSET ?`
	pattern := likePattern(query)
	return s.queryReceipts(ctx, q, pattern, pattern, pattern, limit, offset)
}

// FilterReceiptsByDateRange returns a page of receipts with trip start
// date in [from, to], both bounds inclusive.
func (s *SQLiteStore) FilterReceiptsByDateRange(ctx context.Context, from, to int64, limit, offset int) ([]*models.Receipt, error) {
	q := `SELECT ` + receiptColumns + ` FROM receipts WHERE trip_start_date >= ? AND trip_start_date <= ?` +
		listOrder + ` LIMIT ? OFFSET ?`
	return s.queryReceipts(ctx, q, from, to, limit, offset)
}

// CountReceipts returns the total number of receipts.
func (s *SQLiteStore) CountReceipts(ctx context.Context) (int, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM receipts`)
}

// CountSearchReceipts returns the number of receipts matching a search query.
func (s *SQLiteStore) CountSearchReceipts(ctx context.Context, query string) (int, error) {
	pattern := likePattern(query)
	return s.countQuery(ctx, `SELECT COUNT(*) FROM receipts WHERE `+searchPredicate, pattern, pattern, pattern)
}

// CountReceiptsInDateRange returns the number of receipts with trip start
// date in [from, to].
func (s *SQLiteStore) CountReceiptsInDateRange(ctx context.Context, from, to int64) (int, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM receipts WHERE trip_start_date >= ? AND trip_start_date <= ?`, from, to)
}

// GetReceipt retrieves a receipt by id. Returns storage.ErrNotFound when
// no such receipt exists.
func (s *SQLiteStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	receipt, err := scanReceipt(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}

// ReceiptIDExists reports whether a receipt with the given id exists.
func (s *SQLiteStore) ReceiptIDExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts WHERE receipt_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check receipt id: %w", err)
	}
	return n > 0, nil
}

// InsertReceipt persists a new receipt. Returns storage.ErrDuplicateID
// when the id is already taken.
func (s *SQLiteStore) InsertReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := insertReceipt(ctx, s.db, receipt); err != nil {
		return err
	}
	s.notifier.Publish(storage.TableReceipts)
	return nil
}

// execer covers *sql.DB and *sql.Tx so inserts can run standalone or
// inside the restore transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertReceipt(ctx context.Context, db execer, receipt *models.Receipt) error {
	query := `
		INSERT INTO receipts (receipt_id, boarding_location, destination, trip_start_date, trip_end_date,
		                      price_per_km, waiting_charge_per_hr, waiting_hrs, total_km, toll_parking, bata,
		                      driver_name, driver_mobile, vehicle_number, owner_signature_path,
		                      base_fare, waiting_fee, total_fee, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		receipt.ReceiptID,
		receipt.BoardingLocation,
		receipt.Destination,
		receipt.TripStartDate,
		nullInt64(receipt.TripEndDate),
		receipt.PricePerKm,
		receipt.WaitingChargePerHr,
		receipt.WaitingHrs,
		receipt.TotalKm,
		receipt.TollParking,
		receipt.Bata,
		receipt.DriverName,
		receipt.DriverMobile,
		receipt.VehicleNumber,
		nullString(receipt.OwnerSignaturePath),
		receipt.BaseFare,
		receipt.WaitingFee,
		receipt.TotalFee,
		receipt.CreatedAt,
		receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("receipt %s: %w", receipt.ReceiptID, storage.ErrDuplicateID)
		}
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

// UpdateReceipt replaces a receipt by id. Returns storage.ErrNotFound when
// no such receipt exists.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	query := `
		UPDATE receipts SET
			boarding_location = ?, destination = ?, trip_start_date = ?, trip_end_date = ?,
			price_per_km = ?, waiting_charge_per_hr = ?, waiting_hrs = ?, total_km = ?,
			toll_parking = ?, bata = ?, driver_name = ?, driver_mobile = ?, vehicle_number = ?,
			owner_signature_path = ?, base_fare = ?, waiting_fee = ?, total_fee = ?, updated_at = ?
		WHERE receipt_id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		receipt.BoardingLocation,
		receipt.Destination,
		receipt.TripStartDate,
		nullInt64(receipt.TripEndDate),
		receipt.PricePerKm,
		receipt.WaitingChargePerHr,
		receipt.WaitingHrs,
		receipt.TotalKm,
		receipt.TollParking,
		receipt.Bata,
		receipt.DriverName,
		receipt.DriverMobile,
		receipt.VehicleNumber,
		nullString(receipt.OwnerSignaturePath),
		receipt.BaseFare,
		receipt.WaitingFee,
		receipt.TotalFee,
		receipt.UpdatedAt,
		receipt.ReceiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s: %w", receipt.ReceiptID, storage.ErrNotFound)
	}

	s.notifier.Publish(storage.TableReceipts)
	return nil
}

// DeleteReceipt removes a receipt by id. Returns storage.ErrNotFound when
// no such receipt exists.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE receipt_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s: %w", id, storage.ErrNotFound)
	}

	s.notifier.Publish(storage.TableReceipts)
	return nil
}

// DeleteAllReceipts clears the entire receipt collection.
func (s *SQLiteStore) DeleteAllReceipts(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM receipts`); err != nil {
		return fmt.Errorf("failed to delete all receipts: %w", err)
	}
	s.notifier.Publish(storage.TableReceipts)
	return nil
}

// TotalKilometers returns the sum of total_km across all receipts.
func (s *SQLiteStore) TotalKilometers(ctx context.Context) (float64, error) {
	return s.sumQuery(ctx, `SELECT COALESCE(SUM(total_km), 0) FROM receipts`)
}

// TotalRevenue returns the sum of total_fee across all receipts.
func (s *SQLiteStore) TotalRevenue(ctx context.Context) (float64, error) {
	return s.sumQuery(ctx, `SELECT COALESCE(SUM(total_fee), 0) FROM receipts`)
}

// ReplaceAll atomically swaps the store contents in a single transaction:
// delete all receipts, replace (or remove) the profile, insert the given
// receipts verbatim. Either everything applies or nothing does.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, info *models.CabInfo, receipts []*models.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM receipts`); err != nil {
		return fmt.Errorf("failed to clear receipts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cab_info`); err != nil {
		return fmt.Errorf("failed to clear cab info: %w", err)
	}

	if info != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cab_info (id, cab_name, cab_address, primary_contact, secondary_contact,
			                      email, logo_path, owner_signature_path, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			models.CabInfoID,
			info.CabName,
			info.CabAddress,
			info.PrimaryContact,
			nullString(info.SecondaryContact),
			info.Email,
			nullString(info.LogoPath),
			nullString(info.OwnerSignaturePath),
			info.CreatedAt,
			info.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore cab info: %w", err)
		}
	}

	for _, receipt := range receipts {
		if err := insertReceipt(ctx, tx, receipt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notifier.Publish(storage.TableReceipts)
	s.notifier.Publish(storage.TableCabInfo)
	return nil
}

// queryReceipts runs a receipt SELECT and scans all rows.
func (s *SQLiteStore) queryReceipts(ctx context.Context, query string, args ...interface{}) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	return receipts, nil
}

func (s *SQLiteStore) countQuery(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) sumQuery(ctx context.Context, query string) (float64, error) {
	var sum float64
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum receipts: %w", err)
	}
	return sum, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row scanner) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var tripEndDate sql.NullInt64
	var signaturePath sql.NullString

	err := row.Scan(
		&receipt.ReceiptID,
		&receipt.BoardingLocation,
		&receipt.Destination,
		&receipt.TripStartDate,
		&tripEndDate,
		&receipt.PricePerKm,
		&receipt.WaitingChargePerHr,
		&receipt.WaitingHrs,
		&receipt.TotalKm,
		&receipt.TollParking,
		&receipt.Bata,
		&receipt.DriverName,
		&receipt.DriverMobile,
		&receipt.VehicleNumber,
		&signaturePath,
		&receipt.BaseFare,
		&receipt.WaitingFee,
		&receipt.TotalFee,
		&receipt.CreatedAt,
		&receipt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tripEndDate.Valid {
		v := tripEndDate.Int64
		receipt.TripEndDate = &v
	}
	receipt.OwnerSignaturePath = nullableString(signaturePath)

	return receipt, nil
}

func nullInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// likePattern wraps a search query for substring matching.
func likePattern(query string) string {
	return "%" + query + "%"
}

// isUniqueViolation detects a primary key collision from the driver.
// modernc.org/sqlite reports constraint failures in the error text
// (SQLITE_CONSTRAINT_PRIMARYKEY, code 1555).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed")
}
