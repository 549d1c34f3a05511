package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest"
)

type ReturnRequest struct {
	RefTradeID string `json:"ref_trade_id"`
	OdStatus   string `json:"od_status"`
}

// HandleReturn processes the partner's post-payment callback and redirects the
// customer to the purchase's return_url. The URL was validated at creation, so
// following it cross-host is safe.
func (h *Handlers) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidRequestError(err), h.logger)
		return
	}

	purchase, err := h.returnService.HandleReturn(r.Context(), req.RefTradeID, req.OdStatus)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, purchase.ReturnURL, http.StatusFound)
}
