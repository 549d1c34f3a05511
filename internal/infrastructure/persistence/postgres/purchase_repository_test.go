package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/AndreiMGagiu/TrustPass/internal/application/services/testhelpers"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	td := testhelpers.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := postgres.NewPurchaseRepository(td.DB)
	ctx := context.Background()

	t.Run("create and find round-trips the purchase", func(t *testing.T) {
		td.CleanTables(t)

		purchase := testhelpers.NewPurchase(t)
		purchase.OdPrice = decimal.RequireFromString("10000.50")

		require.NoError(t, repo.Create(ctx, purchase))

		found, err := repo.FindByRefTradeID(ctx, purchase.RefTradeID)
		require.NoError(t, err)

		assert.Equal(t, purchase.ID, found.ID)
		assert.Equal(t, purchase.RefTradeID, found.RefTradeID)
		assert.Equal(t, purchase.RefUserID, found.RefUserID)
		assert.Equal(t, "KRW", found.OdCurrency)
		assert.True(t, found.OdPrice.Equal(decimal.RequireFromString("10000.50")),
			"expected od_price 10000.50, got %s", found.OdPrice)
		assert.Equal(t, purchase.ReturnURL, found.ReturnURL)
		assert.Equal(t, domain.StatusPending, found.Status)
		assert.Nil(t, found.AccessToken)
		assert.Nil(t, found.OdID)
		assert.WithinDuration(t, time.Now(), found.CreatedAt, time.Minute)
		assert.Equal(t, found.CreatedAt, found.UpdatedAt)
	})

	t.Run("duplicate ref_trade_id is rejected", func(t *testing.T) {
		td.CleanTables(t)

		first := testhelpers.NewPurchase(t)
		require.NoError(t, repo.Create(ctx, first))

		second := testhelpers.NewPurchase(t)
		second.RefTradeID = first.RefTradeID

		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, postgres.ErrDuplicateTradeID)
	})

	t.Run("find unknown trade id", func(t *testing.T) {
		td.CleanTables(t)

		_, err := repo.FindByRefTradeID(ctx, "no-such-trade")
		assert.ErrorIs(t, err, postgres.ErrPurchaseNotFound)
	})

	t.Run("update partner token", func(t *testing.T) {
		td.CleanTables(t)

		purchase := testhelpers.NewPurchase(t)
		require.NoError(t, repo.Create(ctx, purchase))

		require.NoError(t, repo.UpdatePartnerToken(ctx, purchase.ID, "tok-123", "od-456"))

		found, err := repo.FindByRefTradeID(ctx, purchase.RefTradeID)
		require.NoError(t, err)
		require.NotNil(t, found.AccessToken)
		require.NotNil(t, found.OdID)
		assert.Equal(t, "tok-123", *found.AccessToken)
		assert.Equal(t, "od-456", *found.OdID)
		assert.True(t, found.UpdatedAt.After(found.CreatedAt) || found.UpdatedAt.Equal(found.CreatedAt))
	})

	t.Run("update partner token on missing purchase", func(t *testing.T) {
		td.CleanTables(t)

		err := repo.UpdatePartnerToken(ctx, uuid.New().String(), "tok", "od")
		assert.ErrorIs(t, err, postgres.ErrPurchaseNotFound)
	})

	t.Run("update status", func(t *testing.T) {
		td.CleanTables(t)

		purchase := testhelpers.NewPurchase(t)
		require.NoError(t, repo.Create(ctx, purchase))

		require.NoError(t, repo.UpdateStatus(ctx, purchase.ID, domain.StatusPaid))

		found, err := repo.FindByRefTradeID(ctx, purchase.RefTradeID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, found.Status)

		require.NoError(t, repo.UpdateStatus(ctx, purchase.ID, domain.StatusFailed))

		found, err = repo.FindByRefTradeID(ctx, purchase.RefTradeID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, found.Status)
	})

	t.Run("update status on missing purchase", func(t *testing.T) {
		td.CleanTables(t)

		err := repo.UpdateStatus(ctx, uuid.New().String(), domain.StatusPaid)
		assert.ErrorIs(t, err, postgres.ErrPurchaseNotFound)
	})
}
