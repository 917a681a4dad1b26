package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/internal/utils"
	"github.com/MKhiriev/merlin-client/models"
)

// attachSafe is called by an embedding Safe host with its address and
// network name.
func (h *Handler) attachSafe(w http.ResponseWriter, r *http.Request) {
	var info models.SafeAppInfo
	if err := utils.ReadJSON(r, &info); err != nil {
		h.fail(w, r, "*Handler.attachSafe", errors.Join(ErrInvalidBody, err))
		return
	}
	if !common.IsHexAddress(info.SafeAddress) {
		h.fail(w, r, "*Handler.attachSafe", fmt.Errorf("%w: %q", ErrInvalidSafeAddress, info.SafeAddress))
		return
	}
	if _, ok := models.NetworkIDByName(info.Network); !ok {
		h.fail(w, r, "*Handler.attachSafe", fmt.Errorf("%w: %q", ErrUnknownNetwork, info.Network))
		return
	}

	if err := h.conn.SetBridge(&info); err != nil {
		h.fail(w, r, "*Handler.attachSafe", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) detachSafe(w http.ResponseWriter, r *http.Request) {
	if err := h.conn.SetBridge(nil); err != nil {
		h.fail(w, r, "*Handler.detachSafe", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// storeWalletConnectSession persists a session delivered by a relay. A
// pending WalletConnect handshake picks it up from storage.
func (h *Handler) storeWalletConnectSession(w http.ResponseWriter, r *http.Request) {
	var session models.WalletConnectSession
	if err := utils.ReadJSON(r, &session); err != nil {
		h.fail(w, r, "*Handler.storeWalletConnectSession", errors.Join(ErrInvalidBody, err))
		return
	}
	if len(session.Accounts) == 0 {
		h.fail(w, r, "*Handler.storeWalletConnectSession", ErrEmptySession)
		return
	}

	raw, err := json.Marshal(session)
	if err != nil {
		h.fail(w, r, "*Handler.storeWalletConnectSession", err)
		return
	}
	if err = h.storage.Set(r.Context(), models.StorageKeyWalletConnect, string(raw)); err != nil {
		h.fail(w, r, "*Handler.storeWalletConnectSession", fmt.Errorf("store walletconnect session: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
