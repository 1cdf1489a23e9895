package postgresql_test

import (
	"context"
	"testing"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessUnitRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewBusinessUnitRepository(testDB.DB)

	desc := "Heating and cooling"
	created, err := repo.Create(ctx, businessunit.BusinessUnit{
		Name:         "HVAC Services",
		Description:  &desc,
		Enabled:      true,
		LeadGenRate:  decimal.NewFromInt(2),
		SalesRate:    decimal.NewFromInt(3),
		WorkDoneRate: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.AutoAdded)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "HVAC Services", found.Name)
	assert.True(t, found.WorkDoneRate.Equal(decimal.NewFromInt(45)))

	// Name lookup folds case and whitespace the same way dataset names do
	folded, err := repo.GetByName(ctx, "  hvac services ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, folded.ID)

	_, err = repo.GetByName(ctx, "Roofing")
	assert.ErrorIs(t, err, businessunit.ErrBusinessUnitNotFound)
}

func TestBusinessUnitRepository_List_EnabledOnly(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewBusinessUnitRepository(testDB.DB)

	createTestUnit(t, ctx, "Electrical")
	_, err := repo.Create(ctx, businessunit.BusinessUnit{
		Name:    "Legacy Water Heaters",
		Enabled: false,
	})
	require.NoError(t, err)

	all, err := repo.List(ctx, businessunit.BusinessUnitFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enabled, err := repo.List(ctx, businessunit.BusinessUnitFilter{EnabledOnly: true})
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "Electrical", enabled[0].Name)

	search := "water"
	matched, err := repo.List(ctx, businessunit.BusinessUnitFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Legacy Water Heaters", matched[0].Name)
}

func TestBusinessUnitRepository_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewBusinessUnitRepository(testDB.DB)
	created := createTestUnit(t, ctx, "Drain Cleaning")

	rate := decimal.NewFromFloat(32.5)
	enabled := false
	updated, err := repo.Update(ctx, businessunit.UpdateBusinessUnitRequest{
		ID:           created.ID,
		WorkDoneRate: &rate,
		Enabled:      &enabled,
	})
	require.NoError(t, err)
	assert.True(t, updated.WorkDoneRate.Equal(rate))
	assert.False(t, updated.Enabled)
	// Untouched rates survive
	assert.True(t, updated.LeadGenRate.Equal(created.LeadGenRate))
	assert.Equal(t, "Drain Cleaning", updated.Name)
}

func TestBusinessUnitRepository_Count(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewBusinessUnitRepository(testDB.DB)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	createTestUnit(t, ctx, "Plumbing")
	createTestUnit(t, ctx, "Electrical")

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBusinessUnitRepository_EnsureExists(t *testing.T) {
	ctx := context.Background()
	setupTest(t, ctx)
	repo := postgresql.NewBusinessUnitRepository(testDB.DB)
	createTestUnit(t, ctx, "Plumbing")

	created, err := repo.EnsureExists(ctx, []string{"plumbing", "Septic"})
	require.NoError(t, err)
	// Only the genuinely new name is inserted; matching folds case
	require.Len(t, created, 1)
	assert.Equal(t, "Septic", created[0].Name)
	assert.True(t, created[0].AutoAdded)
	assert.False(t, created[0].Enabled)
	assert.True(t, created[0].LeadGenRate.IsZero())
	assert.True(t, created[0].SalesRate.IsZero())
	assert.True(t, created[0].WorkDoneRate.IsZero())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// A second pass is a no-op
	again, err := repo.EnsureExists(ctx, []string{"Septic", "Plumbing"})
	require.NoError(t, err)
	assert.Empty(t, again)
}
