package businessunit

import "context"

// BusinessUnitService defines business logic for unit configuration.
type BusinessUnitService interface {
	Create(ctx context.Context, req CreateBusinessUnitRequest) (BusinessUnitResponse, error)
	GetByID(ctx context.Context, id string) (BusinessUnitResponse, error)
	List(ctx context.Context, filter BusinessUnitFilter) ([]BusinessUnitResponse, error)
	Update(ctx context.Context, req UpdateBusinessUnitRequest) (BusinessUnitResponse, error)

	// ValidateSetup reports configuration problems that would degrade a
	// calculation run: enabled units with no rates, rate sums above 100%,
	// and (when scoped to a period) names in the stored jobs that resolve
	// to no employee or unit.
	ValidateSetup(ctx context.Context, req ValidateSetupRequest) (ValidateSetupResponse, error)
}
