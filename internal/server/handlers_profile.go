package server

import (
	"encoding/json"
	"net/http"

	"github.com/thalha/cabslip/internal/service"
)

// profileRequest is the wire shape of a profile write.
type profileRequest struct {
	CabName            string  `json:"cabName"`
	CabAddress         string  `json:"cabAddress"`
	PrimaryContact     string  `json:"primaryContact"`
	SecondaryContact   *string `json:"secondaryContact"`
	Email              string  `json:"email"`
	LogoPath           *string `json:"logoPath"`
	OwnerSignaturePath *string `json:"ownerSignaturePath"`
}

// getCabInfo returns the operator profile, or a JSON null before
// first-run setup has happened.
func (r *Router) getCabInfo(w http.ResponseWriter, req *http.Request) {
	info, err := r.profile.Get(req.Context())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (r *Router) putCabInfo(w http.ResponseWriter, req *http.Request) {
	var body profileRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := r.profile.Upsert(req.Context(), &service.ProfileInput{
		CabName:            body.CabName,
		CabAddress:         body.CabAddress,
		PrimaryContact:     body.PrimaryContact,
		SecondaryContact:   body.SecondaryContact,
		Email:              body.Email,
		LogoPath:           body.LogoPath,
		OwnerSignaturePath: body.OwnerSignaturePath,
	})
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}
