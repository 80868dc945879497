package analysis

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL analysis repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a finished analysis record.
func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO analyses (
			id, user_id, current_address, destination_address,
			safety_score, affordability_score, environment_score,
			lifestyle_score, convenience_score, overall_score, grade,
			payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.CurrentAddress,
		rec.DestinationAddress,
		rec.SafetyScore,
		rec.AffordabilityScore,
		rec.EnvironmentScore,
		rec.LifestyleScore,
		rec.ConvenienceScore,
		rec.OverallScore,
		rec.Grade,
		rec.Payload,
		rec.CreatedAt,
	)
	return err
}

// List returns the newest analyses for a user, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*Summary, error) {
	query := `
		SELECT id, current_address, destination_address, overall_score, grade, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ID,
			&s.CurrentAddress,
			&s.DestinationAddress,
			&s.OverallScore,
			&s.Grade,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Get retrieves one analysis owned by the user.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*Record, error) {
	query := `
		SELECT
			id, user_id, current_address, destination_address,
			safety_score, affordability_score, environment_score,
			lifestyle_score, convenience_score, overall_score, grade,
			payload, created_at
		FROM analyses
		WHERE id = $1 AND user_id = $2
	`

	var rec Record
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CurrentAddress,
		&rec.DestinationAddress,
		&rec.SafetyScore,
		&rec.AffordabilityScore,
		&rec.EnvironmentScore,
		&rec.LifestyleScore,
		&rec.ConvenienceScore,
		&rec.OverallScore,
		&rec.Grade,
		&rec.Payload,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Delete removes one analysis owned by the user.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM analyses WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
