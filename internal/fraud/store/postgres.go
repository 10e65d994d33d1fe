package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propaudit/internal/fraud/models"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
	txcontext "propaudit/pkg/platform/tx"
)

// PostgresStore upserts one row per (user, property); factor results are JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const scoreColumns = `property_id, user_id, owner_name, address, state, factors, aggregate_score, risk_level, analyzed_at`

func (s *PostgresStore) Save(ctx context.Context, score *models.FraudScore) error {
	factors, err := json.Marshal(nonNil(score.Factors))
	if err != nil {
		return fmt.Errorf("encode factors: %w", err)
	}
	query := `
		INSERT INTO fraud_scores (` + scoreColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, property_id) DO UPDATE SET
			owner_name = EXCLUDED.owner_name,
			address = EXCLUDED.address,
			state = EXCLUDED.state,
			factors = EXCLUDED.factors,
			aggregate_score = EXCLUDED.aggregate_score,
			risk_level = EXCLUDED.risk_level,
			analyzed_at = EXCLUDED.analyzed_at`
	_, err = txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		score.PropertyID,
		uuid.UUID(score.UserID),
		score.OwnerName,
		score.Address,
		score.State,
		factors,
		score.AggregateScore,
		string(score.RiskLevel),
		score.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("save fraud score: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID id.UserID, propertyID string) (*models.FraudScore, error) {
	var (
		score   models.FraudScore
		owner   uuid.UUID
		factors []byte
		level   string
	)
	query := `SELECT ` + scoreColumns + ` FROM fraud_scores WHERE user_id = $1 AND property_id = $2`
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(userID), propertyID).Scan(
		&score.PropertyID, &owner, &score.OwnerName, &score.Address, &score.State,
		&factors, &score.AggregateScore, &level, &score.AnalyzedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get fraud score: %w", err)
	}
	if err := json.Unmarshal(factors, &score.Factors); err != nil {
		return nil, fmt.Errorf("decode factors: %w", err)
	}
	score.UserID = id.UserID(owner)
	score.RiskLevel = scoring.RiskLevel(level)
	return &score, nil
}

func nonNil(factors []models.FactorResult) []models.FactorResult {
	if factors == nil {
		return []models.FactorResult{}
	}
	return factors
}
