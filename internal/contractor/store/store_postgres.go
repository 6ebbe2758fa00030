package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nachweis/internal/contractor/models"
	id "nachweis/pkg/domain"
	"nachweis/pkg/platform/sentinel"
)

// Postgres persists contractors in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed contractor store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, c *models.Contractor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contractors (id, name, status, requires_employees,
			has_non_eu_workers, employees_not_employed_in_germany,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(c.ID), c.Name, string(c.Status),
		nullBool(c.Flags.RequiresEmployees),
		nullBool(c.Flags.HasNonEUWorkers),
		nullBool(c.Flags.EmployeesNotEmployedInGermany),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create contractor: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, c *models.Contractor) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contractors
		SET name = $2, status = $3, requires_employees = $4,
		    has_non_eu_workers = $5, employees_not_employed_in_germany = $6,
		    updated_at = $7
		WHERE id = $1`,
		uuid.UUID(c.ID), c.Name, string(c.Status),
		nullBool(c.Flags.RequiresEmployees),
		nullBool(c.Flags.HasNonEUWorkers),
		nullBool(c.Flags.EmployeesNotEmployedInGermany),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contractor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contractor rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, contractorID id.ContractorID) (*models.Contractor, error) {
	var (
		cid                   uuid.UUID
		name, status          string
		reqEmp, nonEU, posted sql.NullBool
		createdAt, updatedAt  time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, requires_employees, has_non_eu_workers,
		       employees_not_employed_in_germany, created_at, updated_at
		FROM contractors
		WHERE id = $1`, uuid.UUID(contractorID)).
		Scan(&cid, &name, &status, &reqEmp, &nonEU, &posted, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contractor by id: %w", err)
	}
	return &models.Contractor{
		ID:     id.ContractorID(cid),
		Name:   name,
		Status: models.ContractorStatus(status),
		Flags: models.ComplianceFlags{
			RequiresEmployees:             nullableBool(reqEmp),
			HasNonEUWorkers:               nullableBool(nonEU),
			EmployeesNotEmployedInGermany: nullableBool(posted),
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullableBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
