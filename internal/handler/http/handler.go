package http

import (
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/service"
	"github.com/MKhiriev/merlin-client/internal/store"
)

type Handler struct {
	conn     Connection
	storage  store.LocalStorage
	services *service.ClientServices

	logger *logger.Logger
}

func NewHandler(conn Connection, storage store.LocalStorage, services *service.ClientServices, logger *logger.Logger) *Handler {
	logger.Info().Msg("http bridge handler created")
	return &Handler{
		conn:     conn,
		storage:  storage,
		services: services,
		logger:   logger,
	}
}
