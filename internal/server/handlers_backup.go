package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/thalha/cabslip/internal/backup"
	"github.com/thalha/cabslip/internal/export"
)

// exportBackup streams a full JSON backup as a download.
func (r *Router) exportBackup(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", backup.FileName(time.Now())))

	if err := r.backup.Export(req.Context(), w); err != nil {
		// Headers are already out; all we can do is log and cut the body
		// short so the client sees a broken download, not a valid file.
		r.logger.Error("backup export failed", "error", err)
	}
}

// restoreBackup validates an uploaded backup document and, unless
// dryRun=1 is set, destructively replaces the store contents with it.
func (r *Router) restoreBackup(w http.ResponseWriter, req *http.Request) {
	doc, err := backup.Parse(req.Body)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	summary := map[string]interface{}{
		"version":    doc.Version,
		"receipts":   len(doc.Receipts),
		"hasCabInfo": doc.CabInfo != nil,
	}

	if req.URL.Query().Get("dryRun") == "1" {
		summary["dryRun"] = true
		respondJSON(w, http.StatusOK, summary)
		return
	}

	if err := r.backup.Restore(req.Context(), doc); err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// exportXLSX streams a spreadsheet of receipts, optionally limited to a
// trip date window via from/to query params (epoch ms).
func (r *Router) exportXLSX(w http.ResponseWriter, req *http.Request) {
	params := req.URL.Query()
	from := queryInt64(params.Get("from"))
	to := queryInt64(params.Get("to"))

	out, err := r.export.ReceiptsXLSX(req.Context(), from, to)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", export.FileName(time.Now())))
	w.Write(out)
}
