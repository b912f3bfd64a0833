package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hireloop/hireloop-api/internal/entity"
)

// ErrConstraintViolation marks an insert/update the store refused on a
// schema constraint; callers surface it as a validation failure.
var ErrConstraintViolation = errors.New("constraint violation")

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `id, user_id, name, company, email, notes, stage, next_followup_at, created_at, updated_at`

func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("contact list failed: %w", err)
	}
	defer rows.Close()

	contacts := []*entity.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("contact scan failed: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) FindByID(ctx context.Context, userID, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	c, err := scanContact(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactNotFound
		}
		return nil, fmt.Errorf("contact lookup failed: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) FindByUserAndEmail(ctx context.Context, userID, email string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 AND LOWER(email) = LOWER($2) LIMIT 1`

	c, err := scanContact(r.DB.QueryRowContext(ctx, query, userID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactNotFound
		}
		return nil, fmt.Errorf("contact lookup failed: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, company, email, notes, stage, next_followup_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Company,
		c.Email,
		c.Notes,
		c.Stage,
		c.NextFollowupAt,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pqErr.Message)
		}
		return fmt.Errorf("contact insert failed: %w", err)
	}

	return nil
}

// Patch updates only the supplied fields and returns the fresh row. The
// row must belong to userID; anyone else's contact reads as not found.
func (r *ContactRepository) Patch(ctx context.Context, userID, id string, fields entity.ContactPatch) (*entity.Contact, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id, userID}

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		set("name", *fields.Name)
	}
	if fields.Company != nil {
		set("company", *fields.Company)
	}
	if fields.Email != nil {
		set("email", *fields.Email)
	}
	if fields.Notes != nil {
		set("notes", *fields.Notes)
	}
	if fields.Stage != nil {
		set("stage", *fields.Stage)
	}
	if fields.NextFollowupAt != nil {
		set("next_followup_at", *fields.NextFollowupAt)
	}

	query := fmt.Sprintf(
		`UPDATE contacts SET %s WHERE id = $1 AND user_id = $2 RETURNING `+contactColumns,
		strings.Join(sets, ", "),
	)

	c, err := scanContact(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
			return nil, fmt.Errorf("%w: %s", ErrConstraintViolation, pqErr.Message)
		}
		return nil, fmt.Errorf("contact patch failed: %w", err)
	}
	return c, nil
}

// Delete is idempotent from the caller's perspective: removing a row that
// is already gone looks exactly like success. Scoped to the owner, so it
// also never touches another user's row.
func (r *ContactRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`
	if _, err := r.DB.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("contact delete failed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	c := &entity.Contact{}
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Company,
		&c.Email,
		&c.Notes,
		&c.Stage,
		&c.NextFollowupAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
