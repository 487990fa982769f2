package models

// CabInfoID is the fixed primary key of the singleton profile row.
// Creation and update are the same upsert keyed by this id.
const CabInfoID = 1

// CabInfo is the operator profile: the single record describing the cab
// business issuing receipts. Exactly zero or one instance exists.
type CabInfo struct {
	// ID is always CabInfoID.
	ID int `json:"id"`

	// CabName is the business name printed on receipts.
	CabName string `json:"cabName"`

	// CabAddress is the postal address of the business.
	CabAddress string `json:"cabAddress"`

	// PrimaryContact is the required phone number.
	PrimaryContact string `json:"primaryContact"`

	// SecondaryContact is an optional second phone number.
	SecondaryContact *string `json:"secondaryContact"`

	// Email is the required contact email.
	Email string `json:"email"`

	// LogoPath is an opaque file-path reference to the business logo.
	// The binary image is not part of backups, only the path string.
	LogoPath *string `json:"logoPath"`

	// OwnerSignaturePath is an opaque file-path reference to the stored
	// owner signature, used as the fallback signature on receipts.
	OwnerSignaturePath *string `json:"ownerSignaturePath"`

	// CreatedAt is the epoch-millisecond creation time.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the epoch-millisecond time of the last upsert.
	UpdatedAt int64 `json:"updatedAt"`
}
