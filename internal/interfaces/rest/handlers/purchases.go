package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest"
	"github.com/shopspring/decimal"
)

type CreatePurchaseRequest struct {
	Purchase *PurchaseParams `json:"purchase" validate:"required"`
}

type PurchaseParams struct {
	RefTradeID string          `json:"ref_trade_id"`
	RefUserID  string          `json:"ref_user_id"`
	OdCurrency string          `json:"od_currency"`
	OdPrice    decimal.Decimal `json:"od_price"`
	ReturnURL  string          `json:"return_url"`
}

// HandleCreatePurchase initiates a purchase and answers with the
// auto-submitting redirect form on success.
func (h *Handlers) HandleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidRequestError(err), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewInvalidRequestError(errors.New("purchase payload is required")), h.logger)
		return
	}

	page, err := h.initiateService.Initiate(r.Context(), services.InitiateCommand{
		RefTradeID: req.Purchase.RefTradeID,
		RefUserID:  req.Purchase.RefUserID,
		OdCurrency: req.Purchase.OdCurrency,
		OdPrice:    req.Purchase.OdPrice,
		ReturnURL:  req.Purchase.ReturnURL,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	html, err := page.Render()
	if err != nil {
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
