package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS cab_info (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    cab_name TEXT NOT NULL,
    cab_address TEXT NOT NULL,
    primary_contact TEXT NOT NULL,
    secondary_contact TEXT,
    email TEXT NOT NULL,
    logo_path TEXT,
    owner_signature_path TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS receipts (
    receipt_id TEXT PRIMARY KEY,
    boarding_location TEXT NOT NULL,
    destination TEXT NOT NULL,
    trip_start_date INTEGER NOT NULL,
    trip_end_date INTEGER,
    price_per_km REAL NOT NULL,
    waiting_charge_per_hr REAL NOT NULL,
    waiting_hrs REAL NOT NULL,
    total_km REAL NOT NULL,
    toll_parking REAL NOT NULL,
    bata REAL NOT NULL,
    driver_name TEXT NOT NULL,
    driver_mobile TEXT NOT NULL,
    vehicle_number TEXT NOT NULL,
    owner_signature_path TEXT,
    base_fare REAL NOT NULL,
    waiting_fee REAL NOT NULL,
    total_fee REAL NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_trip_start_date ON receipts(trip_start_date DESC);
CREATE INDEX IF NOT EXISTS idx_receipts_driver_name ON receipts(driver_name);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
