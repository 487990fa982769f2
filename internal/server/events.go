package server

import (
	"fmt"
	"net/http"
)

// streamEvents pushes data-change notifications over server-sent events.
// Each write to the store produces one "change" event whose data is the
// affected table name; clients re-query whatever views they have open.
func (r *Router) streamEvents(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Subscribe before the headers go out, so a client that has seen the
	// response start will not miss events published right after.
	events, cancel := r.store.Notifier().Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case table, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", table)
			flusher.Flush()
		}
	}
}
