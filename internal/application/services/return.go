package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
)

type ReturnService struct {
	purchaseRepo application.PurchaseRepository
	notifier     application.StatusNotifier
	logger       *slog.Logger
}

func NewReturnService(
	purchaseRepo application.PurchaseRepository,
	notifier application.StatusNotifier,
	logger *slog.Logger,
) *ReturnService {
	return &ReturnService{
		purchaseRepo: purchaseRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// HandleReturn processes the partner's post-payment callback: it resolves the
// purchase, persists the final status, then notifies the downstream target.
//
// The status is committed before the notification goes out. A notification
// failure therefore surfaces as an error while the stored status keeps its new
// value; callers must not treat the error as a rollback.
func (s *ReturnService) HandleReturn(ctx context.Context, refTradeID, odStatus string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByRefTradeID(ctx, refTradeID)
	if err != nil {
		if errors.Is(err, postgres.ErrPurchaseNotFound) {
			return nil, application.NewNotFoundError(
				fmt.Sprintf("Purchase not found for ref_trade_id: %s", refTradeID),
			)
		}
		return nil, application.NewInternalError(err)
	}

	status := purchase.ApplyReturn(odStatus)

	if err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, status); err != nil {
		return nil, application.NewInternalError(err)
	}

	if err := s.notifier.NotifyStatus(ctx, purchase.ID, status); err != nil {
		s.logger.Error("status notification failed after commit",
			"ref_trade_id", purchase.RefTradeID,
			"purchase_id", purchase.ID,
			"status", status,
			"error", err,
		)
		return purchase, application.NewNotificationFailureError(err)
	}

	s.logger.Info("purchase return handled",
		"ref_trade_id", purchase.RefTradeID,
		"purchase_id", purchase.ID,
		"status", status,
	)

	return purchase, nil
}
