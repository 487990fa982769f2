package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/thalha/cabslip/internal/pdf"
	"github.com/thalha/cabslip/internal/service"
)

// receiptRequest is the wire shape of a receipt write. Fares, id, and
// timestamps are never accepted from the client.
type receiptRequest struct {
	BoardingLocation   string  `json:"boardingLocation"`
	Destination        string  `json:"destination"`
	TripStartDate      int64   `json:"tripStartDate"`
	TripEndDate        *int64  `json:"tripEndDate"`
	PricePerKm         float64 `json:"pricePerKm"`
	WaitingChargePerHr float64 `json:"waitingChargePerHr"`
	WaitingHrs         float64 `json:"waitingHrs"`
	TotalKm            float64 `json:"totalKm"`
	TollParking        float64 `json:"tollParking"`
	Bata               float64 `json:"bata"`
	DriverName         string  `json:"driverName"`
	DriverMobile       string  `json:"driverMobile"`
	VehicleNumber      string  `json:"vehicleNumber"`
	OwnerSignaturePath *string `json:"ownerSignaturePath"`
}

func (b *receiptRequest) toInput() *service.ReceiptInput {
	return &service.ReceiptInput{
		BoardingLocation:   b.BoardingLocation,
		Destination:        b.Destination,
		TripStartDate:      b.TripStartDate,
		TripEndDate:        b.TripEndDate,
		PricePerKm:         b.PricePerKm,
		WaitingChargePerHr: b.WaitingChargePerHr,
		WaitingHrs:         b.WaitingHrs,
		TotalKm:            b.TotalKm,
		TollParking:        b.TollParking,
		Bata:               b.Bata,
		DriverName:         b.DriverName,
		DriverMobile:       b.DriverMobile,
		VehicleNumber:      b.VehicleNumber,
		OwnerSignaturePath: b.OwnerSignaturePath,
	}
}

// listReceipts serves the paginated collection. Query params: q for text
// search, from/to (epoch ms) for a trip date window, page and pageSize.
func (r *Router) listReceipts(w http.ResponseWriter, req *http.Request) {
	params := req.URL.Query()
	q := service.ListQuery{
		Query:    params.Get("q"),
		From:     queryInt64(params.Get("from")),
		To:       queryInt64(params.Get("to")),
		Page:     queryInt(params.Get("page")),
		PageSize: queryInt(params.Get("pageSize")),
	}

	page, err := r.receipts.ListReceipts(req.Context(), q)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (r *Router) createReceipt(w http.ResponseWriter, req *http.Request) {
	var body receiptRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := r.receipts.CreateReceipt(req.Context(), body.toInput())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

func (r *Router) getReceipt(w http.ResponseWriter, req *http.Request) {
	receipt, err := r.receipts.GetReceipt(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (r *Router) updateReceipt(w http.ResponseWriter, req *http.Request) {
	var body receiptRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := r.receipts.UpdateReceipt(req.Context(), mux.Vars(req)["id"], body.toInput())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (r *Router) deleteReceipt(w http.ResponseWriter, req *http.Request) {
	if err := r.receipts.DeleteReceipt(req.Context(), mux.Vars(req)["id"]); err != nil {
		r.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// receiptPDF streams the rendered PDF for one receipt. The operator
// profile goes into the header when present.
func (r *Router) receiptPDF(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	receipt, err := r.receipts.GetReceipt(req.Context(), id)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	info, err := r.profile.Get(req.Context())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	out, err := pdf.GenerateReceipt(receipt, info)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%s.pdf", id))
	w.Write(out)
}

func (r *Router) getStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.receipts.Stats(req.Context())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func queryInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func queryInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
