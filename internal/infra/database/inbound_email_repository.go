package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop-api/internal/entity"
)

type InboundEmailRepository struct {
	DB *sql.DB
}

func NewInboundEmailRepository(db *sql.DB) *InboundEmailRepository {
	return &InboundEmailRepository{DB: db}
}

func (r *InboundEmailRepository) Create(ctx context.Context, m *entity.InboundEmail) error {
	query := `
		INSERT INTO inbound_emails
			(id, user_id, from_address, to_address, subject, status, contact_id, call_event_id, error_message, parsed_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid, NULLIF($9, ''), $10, $11)
	`

	var parsed any
	if len(m.ParsedResult) > 0 {
		parsed = []byte(m.ParsedResult)
	}

	_, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.FromAddress,
		m.ToAddress,
		m.Subject,
		m.Status,
		m.ContactID,
		m.CallEventID,
		m.ErrorMessage,
		parsed,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inbound email insert failed: %w", err)
	}
	return nil
}

func (r *InboundEmailRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.InboundEmail, error) {
	query := `
		SELECT id, user_id, from_address, to_address, subject, status,
			COALESCE(contact_id::text, ''), COALESCE(call_event_id::text, ''),
			COALESCE(error_message, ''), COALESCE(parsed_result, 'null'), created_at
		FROM inbound_emails
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("inbound email list failed: %w", err)
	}
	defer rows.Close()

	emails := []*entity.InboundEmail{}
	for rows.Next() {
		m := &entity.InboundEmail{}
		var parsed []byte
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.FromAddress,
			&m.ToAddress,
			&m.Subject,
			&m.Status,
			&m.ContactID,
			&m.CallEventID,
			&m.ErrorMessage,
			&parsed,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("inbound email scan failed: %w", err)
		}
		if string(parsed) != "null" {
			m.ParsedResult = parsed
		}
		emails = append(emails, m)
	}
	return emails, rows.Err()
}
