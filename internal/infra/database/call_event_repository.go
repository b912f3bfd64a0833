package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hireloop/hireloop-api/internal/entity"
)

type CallEventRepository struct {
	DB *sql.DB
}

func NewCallEventRepository(db *sql.DB) *CallEventRepository {
	return &CallEventRepository{DB: db}
}

const callEventColumns = `id, contact_id, status, scheduled_at, created_at, updated_at`

func (r *CallEventRepository) Create(ctx context.Context, ev *entity.CallEvent) error {
	query := `
		INSERT INTO call_events (id, contact_id, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		ev.ID,
		ev.ContactID,
		ev.Status,
		ev.ScheduledAt,
		ev.CreatedAt,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("call event insert failed: %w", err)
	}
	return nil
}

// DeleteByID removes one event; the compensation path for a failed booking.
func (r *CallEventRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM call_events WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("call event delete failed: %w", err)
	}
	return nil
}

func (r *CallEventRepository) ListScheduled(ctx context.Context, userID, contactID string) ([]*entity.CallEvent, error) {
	query := `
		SELECT e.id, e.contact_id, e.status, e.scheduled_at, e.created_at, e.updated_at
		FROM call_events e
		JOIN contacts c ON c.id = e.contact_id
		WHERE e.contact_id = $1 AND c.user_id = $2 AND e.status = 'scheduled'
		ORDER BY e.scheduled_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID, userID)
	if err != nil {
		return nil, fmt.Errorf("scheduled call list failed: %w", err)
	}
	defer rows.Close()

	return collectCallEvents(rows)
}

func (r *CallEventRepository) ListUpcomingByUser(ctx context.Context, userID string) ([]*entity.CallEvent, error) {
	query := `
		SELECT e.id, e.contact_id, e.status, e.scheduled_at, e.created_at, e.updated_at
		FROM call_events e
		JOIN contacts c ON c.id = e.contact_id
		WHERE c.user_id = $1 AND e.status = 'scheduled'
		ORDER BY e.scheduled_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("upcoming call list failed: %w", err)
	}
	defer rows.Close()

	return collectCallEvents(rows)
}

// CompleteScheduled only touches rows still in 'scheduled' on a contact
// owned by userID; completed and canceled events are never altered.
// Returns the flipped ids.
func (r *CallEventRepository) CompleteScheduled(ctx context.Context, userID, contactID string) ([]string, error) {
	query := `
		UPDATE call_events
		SET status = 'completed', updated_at = NOW()
		FROM contacts
		WHERE contacts.id = call_events.contact_id
			AND call_events.contact_id = $1
			AND contacts.user_id = $2
			AND call_events.status = 'scheduled'
		RETURNING call_events.id
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID, userID)
	if err != nil {
		return nil, fmt.Errorf("scheduled call completion failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("call event scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReopenCompleted is the compensation for CompleteScheduled.
func (r *CallEventRepository) ReopenCompleted(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE call_events SET status = 'scheduled', updated_at = NOW() WHERE id = ANY($1)`
	if _, err := r.DB.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("call event reopen failed: %w", err)
	}
	return nil
}

func (r *CallEventRepository) DeleteScheduled(ctx context.Context, userID, contactID string) error {
	query := `
		DELETE FROM call_events
		USING contacts
		WHERE contacts.id = call_events.contact_id
			AND call_events.contact_id = $1
			AND contacts.user_id = $2
			AND call_events.status = 'scheduled'
	`
	if _, err := r.DB.ExecContext(ctx, query, contactID, userID); err != nil {
		return fmt.Errorf("scheduled call delete failed: %w", err)
	}
	return nil
}

func collectCallEvents(rows *sql.Rows) ([]*entity.CallEvent, error) {
	events := []*entity.CallEvent{}
	for rows.Next() {
		ev := &entity.CallEvent{}
		err := rows.Scan(&ev.ID, &ev.ContactID, &ev.Status, &ev.ScheduledAt, &ev.CreatedAt, &ev.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("call event scan failed: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
