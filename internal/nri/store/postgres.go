package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"propaudit/internal/nri/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
	txcontext "propaudit/pkg/platform/tx"
)

// PostgresStore keeps each phase's items as a JSONB array.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const checklistColumns = `id, user_id, email, pre_items, post_items, created_at, updated_at`

func scanChecklist(row interface{ Scan(...any) error }) (*models.Checklist, error) {
	var (
		c         models.Checklist
		checkID   uuid.UUID
		userID    uuid.UUID
		email     string
		pre, post []byte
	)
	if err := row.Scan(&checkID, &userID, &email, &pre, &post, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pre, &c.PreItems); err != nil {
		return nil, fmt.Errorf("decode pre_items: %w", err)
	}
	if err := json.Unmarshal(post, &c.PostItems); err != nil {
		return nil, fmt.Errorf("decode post_items: %w", err)
	}
	c.ID = id.ChecklistID(checkID)
	c.UserID = id.UserID(userID)
	c.Email = id.Email(email)
	return &c, nil
}

func (s *PostgresStore) Get(ctx context.Context, email id.Email) (*models.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM nri_checklists WHERE email = $1`
	c, err := scanChecklist(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, string(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get checklist: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Create(ctx context.Context, checklist *models.Checklist) (*models.Checklist, bool, error) {
	pre, post, err := encodeItems(checklist)
	if err != nil {
		return nil, false, err
	}
	query := `
		INSERT INTO nri_checklists (` + checklistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + checklistColumns
	stored, err := scanChecklist(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(checklist.ID),
		uuid.UUID(checklist.UserID),
		string(checklist.Email),
		pre, post,
		checklist.CreatedAt,
		checklist.UpdatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("create checklist: %w", err)
	}
	existing, err := s.Get(ctx, checklist.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) Update(ctx context.Context, email id.Email, fn func(*models.Checklist) error) (*models.Checklist, error) {
	var updated *models.Checklist
	err := txcontext.RunInTx(ctx, s.db, nil, func(ctx context.Context) error {
		q := txcontext.QuerierFrom(ctx, s.db)
		query := `SELECT ` + checklistColumns + ` FROM nri_checklists WHERE email = $1 FOR UPDATE`
		c, err := scanChecklist(q.QueryRowContext(ctx, query, string(email)))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("lock checklist: %w", err)
		}
		if err := fn(c); err != nil {
			return err
		}
		pre, post, err := encodeItems(c)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx,
			`UPDATE nri_checklists SET pre_items = $2, post_items = $3, updated_at = $4 WHERE email = $1`,
			string(email), pre, post, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update checklist: %w", translate(err))
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func encodeItems(c *models.Checklist) (pre, post []byte, err error) {
	pre, err = json.Marshal(nonNil(c.PreItems))
	if err != nil {
		return nil, nil, fmt.Errorf("encode pre_items: %w", err)
	}
	post, err = json.Marshal(nonNil(c.PostItems))
	if err != nil {
		return nil, nil, fmt.Errorf("encode post_items: %w", err)
	}
	return pre, post, nil
}

func nonNil(items []models.ChecklistItem) []models.ChecklistItem {
	if items == nil {
		return []models.ChecklistItem{}
	}
	return items
}

func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == "40001" || pqErr.Code == "40P01") {
		return fmt.Errorf("%w: %s", sentinel.ErrConflict, pqErr.Message)
	}
	return err
}
