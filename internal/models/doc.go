// Package models defines the core domain records for cabslip.
//
// Two record types are persisted:
//   - CabInfo: the single operator profile describing the cab business
//     issuing receipts (singleton row, fixed id).
//   - Receipt: one trip record with its computed fare breakdown.
//
// BackupDocument (see the backup package) mirrors both for the portable
// JSON interchange format and is never persisted itself.
//
// # Design principles
//
//  1. Timestamps are epoch milliseconds (int64) everywhere, matching the
//     interchange format.
//  2. Optional fields are pointers so that "absent" round-trips through
//     JSON as null rather than a zero value.
//  3. Derived fare fields (BaseFare, WaitingFee, TotalFee) are computed at
//     write time and stored; the persisted value is authoritative.
package models
