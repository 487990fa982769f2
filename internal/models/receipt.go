package models

// Receipt is one trip record with its computed fare breakdown.
//
// Lifecycle: created once with a generated immutable ReceiptID, mutated in
// place by edits (fields and UpdatedAt change, ReceiptID and CreatedAt do
// not), deleted explicitly.
type Receipt struct {
	// ReceiptID is the unique generated identifier, format
	// {epoch_millis}-{6 uppercase alphanumerics}, e.g. 1750680320562-AW0D4V.
	ReceiptID string `json:"receiptId"`

	// BoardingLocation is where the trip started.
	BoardingLocation string `json:"boardingLocation"`

	// Destination is where the trip ended.
	Destination string `json:"destination"`

	// TripStartDate is the epoch-millisecond trip start. Receipts are
	// listed ordered by this field, newest first.
	TripStartDate int64 `json:"tripStartDate"`

	// TripEndDate is the optional epoch-millisecond trip end.
	TripEndDate *int64 `json:"tripEndDate"`

	// Fare inputs. All non-negative; PricePerKm and TotalKm are validated,
	// the rest default to zero when unset.
	PricePerKm         float64 `json:"pricePerKm"`
	WaitingChargePerHr float64 `json:"waitingChargePerHr"`
	WaitingHrs         float64 `json:"waitingHrs"`
	TotalKm            float64 `json:"totalKm"`
	TollParking        float64 `json:"tollParking"`
	Bata               float64 `json:"bata"`

	// Driver and vehicle details printed on the receipt.
	DriverName    string `json:"driverName"`
	DriverMobile  string `json:"driverMobile"`
	VehicleNumber string `json:"vehicleNumber"`

	// OwnerSignaturePath is an opaque file-path reference to the signature
	// image used on this receipt's PDF. Falls back to the profile's stored
	// signature when nil.
	OwnerSignaturePath *string `json:"ownerSignaturePath"`

	// Derived fare fields, computed at write time and stored. Invariant:
	//   BaseFare   = PricePerKm * TotalKm
	//   WaitingFee = WaitingChargePerHr * WaitingHrs
	//   TotalFee   = BaseFare + TollParking + Bata + WaitingFee
	BaseFare   float64 `json:"baseFare"`
	WaitingFee float64 `json:"waitingFee"`
	TotalFee   float64 `json:"totalFee"`

	// CreatedAt and UpdatedAt are epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
