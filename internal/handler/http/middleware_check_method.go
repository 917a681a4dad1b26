// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is the MethodNotAllowed handler of the bridge router. A
// known path requested with a method it does not serve answers 404, so the
// bridge does not advertise which actions exist. Patterns are compared with
// the raw path; the bridge has no parameterised routes.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}
		http.NotFound(w, r)
	}
}
