package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
)

// CheckResult is the minimal status disclosure for a purchase. The access
// token and od_id never appear here.
type CheckResult struct {
	RefTradeID string
	Status     domain.PurchaseStatus
}

type CheckService struct {
	purchaseRepo application.PurchaseRepository
}

func NewCheckService(purchaseRepo application.PurchaseRepository) *CheckService {
	return &CheckService{
		purchaseRepo: purchaseRepo,
	}
}

// Check reports the current status for a trade id. Read-only; repeated calls
// never mutate the record.
func (s *CheckService) Check(ctx context.Context, refTradeID string) (*CheckResult, error) {
	if strings.TrimSpace(refTradeID) == "" {
		return nil, application.NewInvalidRequestError(errors.New("missing ref_trade_id"))
	}

	purchase, err := s.purchaseRepo.FindByRefTradeID(ctx, refTradeID)
	if err != nil {
		if errors.Is(err, postgres.ErrPurchaseNotFound) {
			return nil, application.NewNotFoundError(
				fmt.Sprintf("Purchase not found for ref_trade_id: %s", refTradeID),
			)
		}
		return nil, application.NewInternalError(err)
	}

	return &CheckResult{
		RefTradeID: purchase.RefTradeID,
		Status:     purchase.Status,
	}, nil
}
