package server

import (
	"io"
	"net/http"

	"github.com/thalha/cabslip/internal/images"
)

// maxImageUpload bounds logo/signature uploads at 10 MiB.
const maxImageUpload = 10 << 20

// uploadImage stores a logo or signature image and returns the opaque
// path to put into the profile or receipt. The kind query param selects
// the slot; the file arrives as the multipart form field "image".
func (r *Router) uploadImage(w http.ResponseWriter, req *http.Request) {
	kind := images.Kind(req.URL.Query().Get("kind"))
	if !kind.Valid() {
		respondError(w, http.StatusBadRequest, "kind must be logo or signature")
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxImageUpload)
	if err := req.ParseMultipartForm(maxImageUpload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := req.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	path, err := r.images.Save(data, kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unsupported image data")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"path": path})
}
