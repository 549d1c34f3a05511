package testhelpers

import (
	"context"
	"testing"

	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// CreatePendingPurchase runs InitiateService end to end and returns the
// stored purchase, which holds the partner token issued during initiation.
func CreatePendingPurchase(
	t *testing.T,
	ctx context.Context,
	initiateService *services.InitiateService,
	repo interface {
		FindByRefTradeID(ctx context.Context, refTradeID string) (*domain.Purchase, error)
	},
) *domain.Purchase {
	cmd := DefaultInitiateCommand()

	page, err := initiateService.Initiate(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, page)

	purchase, err := repo.FindByRefTradeID(ctx, cmd.RefTradeID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, purchase.Status)

	return purchase
}

// DefaultInitiateCommand returns a valid initiate command for testing.
func DefaultInitiateCommand() services.InitiateCommand {
	return services.InitiateCommand{
		RefTradeID: "trade-" + uuid.New().String(),
		RefUserID:  "user-" + uuid.New().String(),
		OdCurrency: "KRW",
		OdPrice:    decimal.NewFromInt(10000),
		ReturnURL:  "https://shop.example.com/orders/done",
	}
}

// NewPurchase builds a validated pending purchase without touching any service.
func NewPurchase(t *testing.T) *domain.Purchase {
	cmd := DefaultInitiateCommand()

	purchase, err := domain.NewPurchase(uuid.New().String(), domain.NewPurchaseInput{
		RefTradeID: cmd.RefTradeID,
		RefUserID:  cmd.RefUserID,
		OdCurrency: cmd.OdCurrency,
		OdPrice:    cmd.OdPrice,
		ReturnURL:  cmd.ReturnURL,
	})
	require.NoError(t, err)

	return purchase
}
