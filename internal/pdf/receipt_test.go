package pdf

import (
	"bytes"
	"testing"

	"github.com/thalha/cabslip/internal/models"
)

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		ReceiptID:          "1700000000000-PDFT01",
		BoardingLocation:   "Hotel Plaza",
		Destination:        "Airport",
		TripStartDate:      1700000000000,
		PricePerKm:         12.0,
		WaitingChargePerHr: 100.0,
		WaitingHrs:         1.0,
		TotalKm:            30.0,
		TollParking:        50.0,
		Bata:               100.0,
		DriverName:         "Ravi",
		DriverMobile:       "9876543210",
		VehicleNumber:      "TN 01 AB 1234",
		BaseFare:           360.0,
		WaitingFee:         100.0,
		TotalFee:           610.0,
		CreatedAt:          1700000000000,
		UpdatedAt:          1700000000000,
	}
}

func TestGenerateReceipt(t *testing.T) {
	info := &models.CabInfo{
		ID:             models.CabInfoID,
		CabName:        "Star Cabs",
		CabAddress:     "12 Main Road",
		PrimaryContact: "9800011122",
		Email:          "star@example.com",
	}

	out, err := GenerateReceipt(sampleReceipt(), info)
	if err != nil {
		t.Fatalf("GenerateReceipt failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
}

func TestGenerateReceiptWithoutProfile(t *testing.T) {
	// First-run: PDF generation must still work before setup.
	out, err := GenerateReceipt(sampleReceipt(), nil)
	if err != nil {
		t.Fatalf("GenerateReceipt failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestGenerateReceiptMissingImageFiles(t *testing.T) {
	// Paths that point nowhere must be skipped, not fail the render.
	logo := "/nonexistent/logo.png"
	sig := "/nonexistent/signature.png"
	info := &models.CabInfo{
		ID:                 models.CabInfoID,
		CabName:            "Star Cabs",
		CabAddress:         "12 Main Road",
		PrimaryContact:     "9800011122",
		Email:              "star@example.com",
		LogoPath:           &logo,
		OwnerSignaturePath: &sig,
	}

	if _, err := GenerateReceipt(sampleReceipt(), info); err != nil {
		t.Fatalf("GenerateReceipt failed on missing image files: %v", err)
	}
}
