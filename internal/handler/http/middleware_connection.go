package http

import (
	"net/http"

	"github.com/MKhiriev/merlin-client/internal/connection"
)

// withConnection attaches the published snapshot, if any, to the request
// context so a handler reads one consistent view for the whole request.
func (h *Handler) withConnection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := h.conn.View(); s != nil {
			r = r.WithContext(connection.WithConnection(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}
