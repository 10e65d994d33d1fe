package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"propaudit/internal/ledger/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
	txcontext "propaudit/pkg/platform/tx"
)

const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// PostgresStore persists the ledger in PostgreSQL. The debit is a conditional
// UPDATE so the used <= total invariant holds under any concurrency.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const creditColumns = `user_id, total_credits, used_credits, credits_per_property, created_at, updated_at`

func scanCredits(row interface{ Scan(...any) error }) (*models.UserCredits, error) {
	var (
		c   models.UserCredits
		uid uuid.UUID
	)
	if err := row.Scan(&uid, &c.TotalCredits, &c.UsedCredits, &c.CreditsPerProperty, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UserID = id.UserID(uid)
	return &c, nil
}

func (s *PostgresStore) GetCredits(ctx context.Context, userID id.UserID) (*models.UserCredits, error) {
	query := `SELECT ` + creditColumns + ` FROM user_credits WHERE user_id = $1`
	c, err := scanCredits(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(userID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get credits: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) CreateCredits(ctx context.Context, credits *models.UserCredits) (*models.UserCredits, bool, error) {
	if credits == nil {
		return nil, false, fmt.Errorf("credits are required")
	}
	query := `
		INSERT INTO user_credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + creditColumns
	c, err := scanCredits(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(credits.UserID),
		credits.TotalCredits,
		credits.UsedCredits,
		credits.CreditsPerProperty,
		credits.CreatedAt,
		credits.UpdatedAt,
	))
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("create credits: %w", translate(err))
	}
	// Another request created the row first.
	existing, err := s.GetCredits(ctx, credits.UserID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) DebitAndInsert(ctx context.Context, userID id.UserID, amount int, property *models.UserProperty) (*models.UserCredits, error) {
	if property == nil {
		return nil, fmt.Errorf("property is required")
	}
	details, err := json.Marshal(property.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal property details: %w", err)
	}

	var credits *models.UserCredits
	err = txcontext.RunInTx(ctx, s.db, nil, func(ctx context.Context) error {
		q := txcontext.QuerierFrom(ctx, s.db)

		debit := `
			UPDATE user_credits
			SET used_credits = used_credits + $2, updated_at = $3
			WHERE user_id = $1 AND used_credits + $2 <= total_credits
			RETURNING ` + creditColumns
		c, err := scanCredits(q.QueryRowContext(ctx, debit, uuid.UUID(userID), amount, property.CreatedAt))
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := q.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM user_credits WHERE user_id = $1)`, uuid.UUID(userID),
			).Scan(&exists); err != nil {
				return fmt.Errorf("check credits row: %w", translate(err))
			}
			if !exists {
				return sentinel.ErrNotFound
			}
			return sentinel.ErrInsufficientBalance
		}
		if err != nil {
			return fmt.Errorf("debit credits: %w", translate(err))
		}

		insert := `
			INSERT INTO user_properties (id, user_id, details, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := q.ExecContext(ctx, insert,
			uuid.UUID(property.ID),
			uuid.UUID(userID),
			details,
			string(property.Status),
			property.CreatedAt,
			property.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert property: %w", translate(err))
		}
		credits = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return credits, nil
}

func (s *PostgresStore) GrantCredits(ctx context.Context, userID id.UserID, amount int, now time.Time) (*models.UserCredits, error) {
	query := `
		UPDATE user_credits
		SET total_credits = total_credits + $2, updated_at = $3
		WHERE user_id = $1
		RETURNING ` + creditColumns
	c, err := scanCredits(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(userID), amount, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("grant credits: %w", translate(err))
	}
	return c, nil
}

const propertyColumns = `id, user_id, details, status, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*models.UserProperty, error) {
	var (
		p       models.UserProperty
		pid     uuid.UUID
		uid     uuid.UUID
		details []byte
		status  string
	)
	if err := row.Scan(&pid, &uid, &details, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &p.Details); err != nil {
		return nil, fmt.Errorf("decode property details: %w", err)
	}
	p.ID = id.PropertyID(pid)
	p.UserID = id.UserID(uid)
	p.Status = models.PropertyStatus(status)
	return &p, nil
}

func (s *PostgresStore) GetProperty(ctx context.Context, propertyID id.PropertyID) (*models.UserProperty, error) {
	query := `SELECT ` + propertyColumns + ` FROM user_properties WHERE id = $1`
	p, err := scanProperty(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(propertyID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListProperties(ctx context.Context, userID id.UserID, status *models.PropertyStatus) ([]*models.UserProperty, error) {
	query := `SELECT ` + propertyColumns + ` FROM user_properties WHERE user_id = $1`
	args := []any{uuid.UUID(userID)}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	result := make([]*models.UserProperty, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) UpdatePropertyStatus(ctx context.Context, propertyID id.PropertyID, from, to models.PropertyStatus, now time.Time) (*models.UserProperty, error) {
	query := `
		UPDATE user_properties
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + propertyColumns
	p, err := scanProperty(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(propertyID), string(from), string(to), now))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update property status: %w", translate(err))
	}
	if _, getErr := s.GetProperty(ctx, propertyID); getErr != nil {
		return nil, getErr
	}
	return nil, sentinel.ErrInvalidState
}

const archiveColumns = `id, user_id, property_ref, details, notes, rating, archived_at, updated_at`

func scanArchive(row interface{ Scan(...any) error }) (*models.ArchivedProperty, error) {
	var (
		a       models.ArchivedProperty
		aid     uuid.UUID
		uid     uuid.UUID
		details []byte
		rating  sql.NullInt32
	)
	if err := row.Scan(&aid, &uid, &a.PropertyRef, &details, &a.Notes, &rating, &a.ArchivedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &a.Details); err != nil {
		return nil, fmt.Errorf("decode archive details: %w", err)
	}
	a.ID = id.ArchiveID(aid)
	a.UserID = id.UserID(uid)
	if rating.Valid {
		r := int(rating.Int32)
		a.Rating = &r
	}
	return &a, nil
}

func (s *PostgresStore) SaveArchive(ctx context.Context, entry *models.ArchivedProperty) (*models.ArchivedProperty, error) {
	if entry == nil {
		return nil, fmt.Errorf("archive entry is required")
	}
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal archive details: %w", err)
	}
	var rating sql.NullInt32
	if entry.Rating != nil {
		rating = sql.NullInt32{Int32: int32(*entry.Rating), Valid: true}
	}
	query := `
		INSERT INTO property_archive (` + archiveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, property_ref) DO UPDATE SET
			details = EXCLUDED.details,
			notes = EXCLUDED.notes,
			rating = EXCLUDED.rating,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + archiveColumns
	a, err := scanArchive(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(entry.ID),
		uuid.UUID(entry.UserID),
		entry.PropertyRef,
		details,
		entry.Notes,
		rating,
		entry.ArchivedAt,
		entry.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("save archive: %w", translate(err))
	}
	return a, nil
}

func (s *PostgresStore) ListArchive(ctx context.Context, userID id.UserID) ([]*models.ArchivedProperty, error) {
	query := `SELECT ` + archiveColumns + ` FROM property_archive WHERE user_id = $1 ORDER BY updated_at DESC, property_ref ASC`
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ArchivedProperty, 0)
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive: %w", err)
	}
	return result, nil
}

// translate maps retryable and uniqueness failures onto sentinel.ErrConflict.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation, pqSerializationFailure, pqDeadlockDetected:
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, pqErr.Message)
		}
	}
	return err
}
