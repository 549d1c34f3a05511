package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest"
)

type CheckRequest struct {
	RefTradeID string `json:"ref_trade_id"`
}

type CheckResponse struct {
	RefTradeID string `json:"ref_trade_id"`
	Status     string `json:"status"`
}

// HandleCheck reports the purchase status for a trade id. Token and od_id are
// never disclosed here.
func (h *Handlers) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidRequestError(err), h.logger)
		return
	}

	result, err := h.checkService.Check(r.Context(), req.RefTradeID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, CheckResponse{
		RefTradeID: result.RefTradeID,
		Status:     string(result.Status),
	})
}
