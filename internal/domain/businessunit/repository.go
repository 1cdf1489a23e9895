package businessunit

import "context"

// BusinessUnitRepository defines data access methods for business units.
type BusinessUnitRepository interface {
	Create(ctx context.Context, unit BusinessUnit) (BusinessUnit, error)
	GetByID(ctx context.Context, id string) (BusinessUnit, error)
	GetByName(ctx context.Context, name string) (BusinessUnit, error)
	List(ctx context.Context, filter BusinessUnitFilter) ([]BusinessUnit, error)
	Update(ctx context.Context, req UpdateBusinessUnitRequest) (BusinessUnit, error)
	Count(ctx context.Context) (int64, error)

	// EnsureExists inserts names that are not present yet as disabled,
	// auto-added units with zero rates and reports which were created.
	EnsureExists(ctx context.Context, names []string) ([]BusinessUnit, error)
}
