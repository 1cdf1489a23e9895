package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type businessUnitRepositoryImpl struct {
	db *database.DB
}

func NewBusinessUnitRepository(db *database.DB) businessunit.BusinessUnitRepository {
	return &businessUnitRepositoryImpl{db: db}
}

// Create implements businessunit.BusinessUnitRepository.
func (b *businessUnitRepositoryImpl) Create(ctx context.Context, unit businessunit.BusinessUnit) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO business_units (name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
	`

	var created businessunit.BusinessUnit
	err := q.QueryRow(ctx, query,
		unit.Name, unit.Description, unit.Enabled, unit.AutoAdded,
		unit.LeadGenRate, unit.SalesRate, unit.WorkDoneRate,
	).Scan(
		&created.ID, &created.Name, &created.Description, &created.Enabled, &created.AutoAdded,
		&created.LeadGenRate, &created.SalesRate, &created.WorkDoneRate,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return businessunit.BusinessUnit{}, fmt.Errorf("failed to create business unit: %w", err)
	}
	return created, nil
}

// GetByID implements businessunit.BusinessUnitRepository.
func (b *businessUnitRepositoryImpl) GetByID(ctx context.Context, id string) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
		FROM business_units
		WHERE id = $1
	`

	var found businessunit.BusinessUnit
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.Name, &found.Description, &found.Enabled, &found.AutoAdded,
		&found.LeadGenRate, &found.SalesRate, &found.WorkDoneRate,
		&found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return businessunit.BusinessUnit{}, businessunit.ErrBusinessUnitNotFound
		}
		return businessunit.BusinessUnit{}, fmt.Errorf("failed to get business unit by id: %w", err)
	}
	return found, nil
}

// GetByName implements businessunit.BusinessUnitRepository. Matching is
// trimmed and case-insensitive to line up with dataset unit names.
func (b *businessUnitRepositoryImpl) GetByName(ctx context.Context, name string) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
		FROM business_units
		WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
	`

	var found businessunit.BusinessUnit
	err := q.QueryRow(ctx, query, name).Scan(
		&found.ID, &found.Name, &found.Description, &found.Enabled, &found.AutoAdded,
		&found.LeadGenRate, &found.SalesRate, &found.WorkDoneRate,
		&found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return businessunit.BusinessUnit{}, businessunit.ErrBusinessUnitNotFound
		}
		return businessunit.BusinessUnit{}, fmt.Errorf("failed to get business unit by name: %w", err)
	}
	return found, nil
}

// List implements businessunit.BusinessUnitRepository.
func (b *businessUnitRepositoryImpl) List(ctx context.Context, filter businessunit.BusinessUnitFilter) ([]businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EnabledOnly {
		conditions = append(conditions, "enabled = TRUE")
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
		FROM business_units
		WHERE %s
		ORDER BY name ASC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}
	defer rows.Close()

	var units []businessunit.BusinessUnit
	for rows.Next() {
		var unit businessunit.BusinessUnit
		err := rows.Scan(
			&unit.ID, &unit.Name, &unit.Description, &unit.Enabled, &unit.AutoAdded,
			&unit.LeadGenRate, &unit.SalesRate, &unit.WorkDoneRate,
			&unit.CreatedAt, &unit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business unit: %w", err)
		}
		units = append(units, unit)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}

// Update implements businessunit.BusinessUnitRepository.
func (b *businessUnitRepositoryImpl) Update(ctx context.Context, req businessunit.UpdateBusinessUnitRequest) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	updates := make(map[string]interface{})

	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		if *req.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *req.Description
		}
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.LeadGenRate != nil {
		updates["lead_gen_rate"] = *req.LeadGenRate
	}
	if req.SalesRate != nil {
		updates["sales_rate"] = *req.SalesRate
	}
	if req.WorkDoneRate != nil {
		updates["work_done_rate"] = *req.WorkDoneRate
	}

	if len(updates) == 0 {
		return b.GetByID(ctx, req.ID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	query := fmt.Sprintf(`
		UPDATE business_units SET %s WHERE id = $%d
		RETURNING id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
	`, strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updated businessunit.BusinessUnit
	err := q.QueryRow(ctx, query, args...).Scan(
		&updated.ID, &updated.Name, &updated.Description, &updated.Enabled, &updated.AutoAdded,
		&updated.LeadGenRate, &updated.SalesRate, &updated.WorkDoneRate,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return businessunit.BusinessUnit{}, businessunit.ErrBusinessUnitNotFound
		}
		return businessunit.BusinessUnit{}, fmt.Errorf("failed to update business unit: %w", err)
	}
	return updated, nil
}

// Count implements businessunit.BusinessUnitRepository.
func (b *businessUnitRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, b.db)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM business_units").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count business units: %w", err)
	}
	return total, nil
}

// EnsureExists implements businessunit.BusinessUnitRepository. Unknown names
// are inserted as disabled, auto-added units with zero rates so uploads never
// silently invent paying configuration.
func (b *businessUnitRepositoryImpl) EnsureExists(ctx context.Context, names []string) ([]businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO business_units (name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate)
		SELECT $1, NULL, FALSE, TRUE, 0, 0, 0
		WHERE NOT EXISTS (
			SELECT 1 FROM business_units WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
		)
		RETURNING id, name, description, enabled, auto_added, lead_gen_rate, sales_rate, work_done_rate, created_at, updated_at
	`

	var created []businessunit.BusinessUnit
	for _, name := range names {
		var unit businessunit.BusinessUnit
		err := q.QueryRow(ctx, query, name).Scan(
			&unit.ID, &unit.Name, &unit.Description, &unit.Enabled, &unit.AutoAdded,
			&unit.LeadGenRate, &unit.SalesRate, &unit.WorkDoneRate,
			&unit.CreatedAt, &unit.UpdatedAt,
		)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, fmt.Errorf("failed to auto-add business unit %q: %w", name, err)
		}
		created = append(created, unit)
	}
	return created, nil
}
