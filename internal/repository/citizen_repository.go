package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dinhviettung/citizen-registry/internal/domain"
)

// Stored functions backing the citizen operations.
const (
	procAddCitizen    = "usp_add_citizen_with_optional_head"
	procQuickSearch   = "usp_citizen_quick_search"
	procDeleteCitizen = "usp_delete_citizen_by_national_id"
)

// CitizenRepository invokes the citizen stored procedures.
type CitizenRepository interface {
	Add(ctx context.Context, citizen domain.NewCitizen) (domain.Record, error)
	QuickSearch(ctx context.Context, nationalID string) (domain.Record, error)
	Delete(ctx context.Context, nationalID string) (domain.Record, error)
}

type citizenRepository struct {
	db *sql.DB
}

// NewCitizenRepository returns a Postgres-backed implementation.
func NewCitizenRepository(db *sql.DB) CitizenRepository {
	return &citizenRepository{db: db}
}

// Add returns the procedure's first row, or nil when it returned none.
func (r *citizenRepository) Add(ctx context.Context, c domain.NewCitizen) (domain.Record, error) {
	return callProcedure(ctx, r.db, procAddCitizen,
		c.NationalID,
		c.FullName,
		nullableDate(c.DateOfBirth),
		nullableString(c.Gender),
		c.AreaName,
		c.AreaType,
		c.HouseholdAddress,
		c.IsHead,
		c.HasCriminalRecord,
		c.SetWanted,
		c.SetQuanChe,
	)
}

func (r *citizenRepository) QuickSearch(ctx context.Context, nationalID string) (domain.Record, error) {
	record, err := callProcedure(ctx, r.db, procQuickSearch, nationalID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Delete maps the procedure's no_data_found signal to ErrNotFound. A nil record with a
// nil error means the procedure returned no row.
func (r *citizenRepository) Delete(ctx context.Context, nationalID string) (domain.Record, error) {
	record, err := callProcedure(ctx, r.db, procDeleteCitizen, nationalID)
	if err != nil {
		if isNoDataFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
