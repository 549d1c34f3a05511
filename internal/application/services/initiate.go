// Package services holds the purchase lifecycle orchestration.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/partner"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InitiateCommand struct {
	RefTradeID string
	RefUserID  string
	OdCurrency string
	OdPrice    decimal.Decimal
	ReturnURL  string
}

type InitiateService struct {
	purchaseRepo application.PurchaseRepository
	tokenClient  application.TokenExchanger
	logger       *slog.Logger
}

func NewInitiateService(
	purchaseRepo application.PurchaseRepository,
	tokenClient application.TokenExchanger,
	logger *slog.Logger,
) *InitiateService {
	return &InitiateService{
		purchaseRepo: purchaseRepo,
		tokenClient:  tokenClient,
		logger:       logger,
	}
}

// Initiate validates and persists a new purchase, exchanges its trade details
// for a partner access token, and builds the redirect payload.
//
// The purchase is persisted as pending before the token exchange is attempted.
// If the exchange fails the record deliberately stays behind, pending and
// tokenless; it is not rolled back.
func (s *InitiateService) Initiate(ctx context.Context, cmd InitiateCommand) (*application.RedirectPage, error) {
	purchase, err := domain.NewPurchase(uuid.New().String(), domain.NewPurchaseInput{
		RefTradeID: cmd.RefTradeID,
		RefUserID:  cmd.RefUserID,
		OdCurrency: cmd.OdCurrency,
		OdPrice:    cmd.OdPrice,
		ReturnURL:  cmd.ReturnURL,
	})
	if err != nil {
		return nil, application.NewInvalidRequestError(err)
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		if errors.Is(err, postgres.ErrDuplicateTradeID) {
			return nil, application.NewInvalidRequestError(err)
		}
		return nil, application.NewInternalError(err)
	}

	tokenResp, err := s.tokenClient.ExchangeToken(ctx, partner.TokenRequest{
		TradeID:  purchase.RefTradeID,
		UserID:   purchase.RefUserID,
		Currency: purchase.OdCurrency,
		Price:    purchase.OdPrice,
	})
	if err != nil {
		s.logger.Error("partner token exchange failed",
			"ref_trade_id", purchase.RefTradeID,
			"error", err,
		)
		return nil, application.NewUpstreamFailureError(err)
	}

	if err := purchase.AttachPartnerToken(tokenResp.AccessToken, tokenResp.OdID); err != nil {
		return nil, application.NewInternalError(err)
	}

	if err := s.purchaseRepo.UpdatePartnerToken(ctx, purchase.ID, tokenResp.AccessToken, tokenResp.OdID); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("purchase initiated",
		"ref_trade_id", purchase.RefTradeID,
		"purchase_id", purchase.ID,
	)

	return &application.RedirectPage{
		ReturnURL:   purchase.ReturnURL,
		AccessToken: tokenResp.AccessToken,
		OdID:        tokenResp.OdID,
	}, nil
}
