package services_test

import (
	"context"
	"testing"

	"github.com/AndreiMGagiu/TrustPass/internal/application"
	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ReturnsStatusOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPurchaseRepository()
	service := services.NewCheckService(repo)
	seedPurchase(t, repo, "trade-12345")

	result, err := service.Check(ctx, "trade-12345")

	require.NoError(t, err)
	assert.Equal(t, "trade-12345", result.RefTradeID)
	assert.Equal(t, domain.StatusPending, result.Status)
}

func TestCheck_BlankTradeID(t *testing.T) {
	ctx := context.Background()
	service := services.NewCheckService(NewMockPurchaseRepository())

	for _, refTradeID := range []string{"", "   ", "\t"} {
		result, err := service.Check(ctx, refTradeID)

		require.Error(t, err)
		assert.Nil(t, result)
		svcErr, ok := application.IsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, application.ErrCodeInvalidRequest, svcErr.Code)
	}
}

func TestCheck_NotFound(t *testing.T) {
	ctx := context.Background()
	service := services.NewCheckService(NewMockPurchaseRepository())

	result, err := service.Check(ctx, "unknown-id")

	require.Error(t, err)
	assert.Nil(t, result)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
	assert.Contains(t, svcErr.Message, "unknown-id")
}

func TestCheck_RepeatedCallsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPurchaseRepository()
	checkService := services.NewCheckService(repo)
	returnService := services.NewReturnService(repo, &MockStatusNotifier{}, testLogger())
	seedPurchase(t, repo, "trade-12345")

	for range 3 {
		result, err := checkService.Check(ctx, "trade-12345")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, result.Status)
	}
	assert.Zero(t, repo.UpdateStatusCalls)

	_, err := returnService.HandleReturn(ctx, "trade-12345", "10")
	require.NoError(t, err)

	for range 3 {
		result, err := checkService.Check(ctx, "trade-12345")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, result.Status)
	}
}
