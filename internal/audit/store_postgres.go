package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (ts, contractor_id, requirement_id, actor,
			action, status, reason, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.Timestamp, event.ContractorID, nullString(event.RequirementID),
		nullString(event.Actor), string(event.Action), nullString(event.Status),
		nullString(event.Reason), nullString(event.RequestID),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByContractor(ctx context.Context, contractorID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, contractor_id, requirement_id, actor, action, status,
		       reason, request_id
		FROM audit_events
		WHERE contractor_id = $1
		ORDER BY ts`, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ts         time.Time
			contractor string
			action     string

			requirement, actor, status, reason, reqID sql.NullString
		)
		if err := rows.Scan(&ts, &contractor, &requirement, &actor, &action, &status, &reason, &reqID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, Event{
			Timestamp:     ts,
			ContractorID:  contractor,
			RequirementID: requirement.String,
			Actor:         actor.String,
			Action:        Action(action),
			Status:        status.String,
			Reason:        reason.String,
			RequestID:     reqID.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
