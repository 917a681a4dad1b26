package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getVersion)

	router.With(h.withConnection).Get("/api/connection", h.getConnection)
	router.Post("/api/connection/relay", h.toggleRelay)
	router.Post("/api/connection/connector", h.setConnector)
	router.Post("/api/connection/logout", h.logout)
	router.Post("/api/connection/tx", h.setTx)
	router.Post("/api/connection/balances", h.refreshBalances)

	// host wallet and relay callbacks
	router.Group(func(r chi.Router) {
		r.Post("/api/bridge/safe", h.attachSafe)
		r.Delete("/api/bridge/safe", h.detachSafe)
		r.Post("/api/walletconnect/session", h.storeWalletConnectSession)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
