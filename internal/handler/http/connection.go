package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/utils"
	"github.com/MKhiriev/merlin-client/models"
)

func (h *Handler) getConnection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resp := models.ConnectionResponse{State: h.conn.State().String()}
	if s, ok := connection.FromContext(r.Context()); ok {
		resp.Ready = true
		resp.Connector = s.Connector
		resp.Account = s.Account
		resp.RawAccount = s.RawAccount
		resp.NetworkID = s.NetworkID
		resp.RawNetworkID = s.RawNetworkID
		resp.Network = models.NetworkLabel(s.NetworkID)
		resp.Relay = s.Relay
		resp.Proxy = s.Proxy
		resp.TxHash = s.TxHash
		resp.TxState = s.TxState.String()
		if s.Provider != nil {
			resp.ProviderURL = s.Provider.URL()
		}
		balances := s.Balances
		resp.Balances = &balances
	}

	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getConnection").Msg("error writing connection")
	}
}

func (h *Handler) toggleRelay(w http.ResponseWriter, r *http.Request) {
	if err := h.conn.ToggleRelay(); err != nil {
		h.fail(w, r, "*Handler.toggleRelay", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) refreshBalances(w http.ResponseWriter, r *http.Request) {
	if err := h.conn.RefreshBalances(); err != nil {
		h.fail(w, r, "*Handler.refreshBalances", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) setConnector(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectorRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.fail(w, r, "*Handler.setConnector", errors.Join(ErrInvalidBody, err))
		return
	}

	if err := h.conn.SetConnector(r.Context(), req.Connector); err != nil {
		h.fail(w, r, "*Handler.setConnector", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.conn.Logout(r.Context()); err != nil {
		h.fail(w, r, "*Handler.logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setTx(w http.ResponseWriter, r *http.Request) {
	var req models.TxRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.fail(w, r, "*Handler.setTx", errors.Join(ErrInvalidBody, err))
		return
	}

	var step models.TransactionStep
	if req.State != nil {
		var ok bool
		if step, ok = models.ParseTransactionStep(*req.State); !ok {
			h.fail(w, r, "*Handler.setTx", fmt.Errorf("%w: %q", ErrUnknownTxState, *req.State))
			return
		}
	}

	if req.Hash != nil {
		if err := h.conn.SetTxHash(*req.Hash); err != nil {
			h.fail(w, r, "*Handler.setTx", err)
			return
		}
	}
	if req.State != nil {
		if err := h.conn.SetTxState(step); err != nil {
			h.fail(w, r, "*Handler.setTx", err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail logs err and answers with the status mapped from it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Msg("request rejected")
	}
	http.Error(w, err.Error(), status)
}
