package application

import (
	"context"

	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/partner"
)

// TokenExchanger is the port for the partner token exchange.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, req partner.TokenRequest) (*partner.TokenResponse, error)
}

// StatusNotifier is the port for the downstream notification target.
type StatusNotifier interface {
	NotifyStatus(ctx context.Context, purchaseID string, status domain.PurchaseStatus) error
}

// PurchaseRepository is the port for persistence.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	FindByRefTradeID(ctx context.Context, refTradeID string) (*domain.Purchase, error)
	UpdatePartnerToken(ctx context.Context, id, accessToken, odID string) error
	UpdateStatus(ctx context.Context, id string, status domain.PurchaseStatus) error
}
