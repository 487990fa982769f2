// Package pdf renders a trip receipt and the operator profile into a
// shareable PDF document.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/thalha/cabslip/internal/fare"
	"github.com/thalha/cabslip/internal/models"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	marginX    = 15.0
	contentW   = pageWidth - 2*marginX
	labelWidth = 55.0
)

// GenerateReceipt renders one receipt with the operator header. Monetary
// values are rounded to two decimals here and only here; stored values
// keep full precision. The cab info may be nil when first-run setup has
// not happened, in which case the header carries a placeholder.
func GenerateReceipt(receipt *models.Receipt, info *models.CabInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 15, marginX)
	pdf.AddPage()

	drawHeader(pdf, info)
	drawTitle(pdf, receipt)
	drawTripDetails(pdf, receipt)
	drawFareTable(pdf, receipt)
	drawSignature(pdf, receipt, info)
	if err := drawQRCode(pdf, receipt.ReceiptID); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, info *models.CabInfo) {
	// Logo on the left when the referenced file exists.
	if info != nil && info.LogoPath != nil {
		if _, err := os.Stat(*info.LogoPath); err == nil {
			opts := gofpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(*info.LogoPath, marginX, 15, 24, 0, false, opts, 0, "")
		}
	}

	pdf.SetFont("Arial", "B", 16)
	if info != nil {
		pdf.CellFormat(contentW, 8, info.CabName, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(contentW, 5, info.CabAddress, "", 1, "C", false, 0, "")
		contact := info.PrimaryContact
		if info.SecondaryContact != nil {
			contact += " / " + *info.SecondaryContact
		}
		pdf.CellFormat(contentW, 5, contact+"  |  "+info.Email, "", 1, "C", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 8, "Trip Receipt", "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(marginX, pdf.GetY(), pageWidth-marginX, pdf.GetY())
	pdf.Ln(4)
}

func drawTitle(pdf *gofpdf.Fpdf, receipt *models.Receipt) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(contentW, 7, "TRIP RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW, 5, "Receipt No: "+receipt.ReceiptID, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func drawTripDetails(pdf *gofpdf.Fpdf, receipt *models.Receipt) {
	rows := [][2]string{
		{"Boarding", receipt.BoardingLocation},
		{"Destination", receipt.Destination},
		{"Trip Start", formatMillis(receipt.TripStartDate)},
	}
	if receipt.TripEndDate != nil {
		rows = append(rows, [2]string{"Trip End", formatMillis(*receipt.TripEndDate)})
	}
	rows = append(rows,
		[2]string{"Driver", receipt.DriverName},
		[2]string{"Driver Mobile", receipt.DriverMobile},
		[2]string{"Vehicle No", receipt.VehicleNumber},
	)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelWidth, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(contentW-labelWidth, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func drawFareTable(pdf *gofpdf.Fpdf, receipt *models.Receipt) {
	type line struct {
		label  string
		detail string
		amount float64
	}
	lines := []line{
		{"Base Fare", fmt.Sprintf("%.2f km x %.2f", receipt.TotalKm, receipt.PricePerKm), receipt.BaseFare},
		{"Waiting Fee", fmt.Sprintf("%.2f hr x %.2f", receipt.WaitingHrs, receipt.WaitingChargePerHr), receipt.WaitingFee},
		{"Toll / Parking", "", receipt.TollParking},
		{"Bata", "", receipt.Bata},
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(70, 7, "Charge", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Detail", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, l := range lines {
		pdf.CellFormat(70, 7, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, l.detail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", fare.Round2(l.amount)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(130, 8, "Total Fee", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", fare.Round2(receipt.TotalFee)), "1", 1, "R", true, 0, "")
	pdf.Ln(8)
}

// drawSignature places the owner signature image when the referenced file
// exists: the receipt's own signature first, the profile's stored
// signature as fallback.
func drawSignature(pdf *gofpdf.Fpdf, receipt *models.Receipt, info *models.CabInfo) {
	path := ""
	if receipt.OwnerSignaturePath != nil {
		path = *receipt.OwnerSignaturePath
	} else if info != nil && info.OwnerSignaturePath != nil {
		path = *info.OwnerSignaturePath
	}

	y := pdf.GetY()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			opts := gofpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(path, pageWidth-marginX-40, y, 40, 0, false, opts, 0, "")
			y += 20
		}
	}

	pdf.SetY(y)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW, 5, "Authorized Signature", "", 1, "R", false, 0, "")
}

// drawQRCode puts a small QR of the receipt id in the bottom-left corner
// for quick lookup.
func drawQRCode(pdf *gofpdf.Fpdf, receiptID string) error {
	png, err := qrcode.Encode(receiptID, qrcode.Low, 256)
	if err != nil {
		return fmt.Errorf("failed to encode receipt qr: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("receipt_qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("receipt_qr", marginX, 255, 22, 22, false, opts, 0, "")

	pdf.SetXY(marginX, 278)
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(60, 4, receiptID, "", 0, "L", false, 0, "")
	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("02 Jan 2006 15:04")
}
