// Package handlers wires the three purchase operations to HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/go-playground/validator"
)

type PurchaseInitiator interface {
	Initiate(ctx context.Context, cmd services.InitiateCommand) (*application.RedirectPage, error)
}

type ReturnHandler interface {
	HandleReturn(ctx context.Context, refTradeID, odStatus string) (*domain.Purchase, error)
}

type StatusChecker interface {
	Check(ctx context.Context, refTradeID string) (*services.CheckResult, error)
}

type Handlers struct {
	initiateService PurchaseInitiator
	returnService   ReturnHandler
	checkService    StatusChecker
	validate        *validator.Validate
	logger          *slog.Logger
}

func NewHandlers(
	initiateService PurchaseInitiator,
	returnService ReturnHandler,
	checkService StatusChecker,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		initiateService: initiateService,
		returnService:   returnService,
		checkService:    checkService,
		validate:        validator.New(),
		logger:          logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/purchases", h.HandleCreatePurchase)
	mux.HandleFunc("POST /api/v1/customer/returns", h.HandleReturn)
	mux.HandleFunc("POST /api/v1/purchases/check", h.HandleCheck)
}

type dataResponse struct {
	Data any `json:"data"`
}

func respondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dataResponse{Data: data})
}
