package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nachweis/internal/catalog"
	"nachweis/internal/requirement/models"
	"nachweis/internal/validity"
	id "nachweis/pkg/domain"
	"nachweis/pkg/platform/sentinel"
)

// Postgres persists requirement records in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed requirement store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const documentColumns = `id, contractor_id, type_id, name, status, requirement,
	file_name, uploaded_at, accepted_at, valid_until, validity_source,
	rejection_reason, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, doc *models.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		uuid.UUID(doc.ID), uuid.UUID(doc.ContractorID), doc.TypeID.String(), doc.Name,
		doc.Status.String(), string(doc.Requirement),
		nullString(doc.FileName), doc.UploadedAt, doc.AcceptedAt, doc.ValidUntil,
		string(doc.ValiditySource), nullString(doc.RejectionReason),
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, doc *models.Document) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET status = $2, requirement = $3, file_name = $4, uploaded_at = $5,
		    accepted_at = $6, valid_until = $7, validity_source = $8,
		    rejection_reason = $9, updated_at = $10
		WHERE id = $1`,
		uuid.UUID(doc.ID), doc.Status.String(), string(doc.Requirement),
		nullString(doc.FileName), doc.UploadedAt, doc.AcceptedAt, doc.ValidUntil,
		string(doc.ValiditySource), nullString(doc.RejectionReason), doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, reqID id.RequirementID) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = $1`, uuid.UUID(reqID))
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return doc, nil
}

func (s *Postgres) ListByContractor(ctx context.Context, contractorID id.ContractorID) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE contractor_id = $1
		ORDER BY type_id`, uuid.UUID(contractorID))
	if err != nil {
		return nil, fmt.Errorf("list documents by contractor: %w", err)
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		docID, contractorID            uuid.UUID
		typeID, name, status, req, src string
		fileName, rejectionReason      sql.NullString
		uploadedAt, acceptedAt         sql.NullTime
		validUntil                     sql.NullTime
		createdAt, updatedAt           time.Time
	)
	err := row.Scan(&docID, &contractorID, &typeID, &name, &status, &req,
		&fileName, &uploadedAt, &acceptedAt, &validUntil, &src,
		&rejectionReason, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return &models.Document{
		ID:              id.RequirementID(docID),
		ContractorID:    id.ContractorID(contractorID),
		TypeID:          catalog.DocumentTypeID(typeID),
		Name:            name,
		Status:          models.Status(status),
		Requirement:     models.Requirement(req),
		FileName:        fileName.String,
		UploadedAt:      nullableTime(uploadedAt),
		AcceptedAt:      nullableTime(acceptedAt),
		ValidUntil:      nullableTime(validUntil),
		ValiditySource:  validity.Source(src),
		RejectionReason: rejectionReason.String,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
