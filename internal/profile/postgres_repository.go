package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a profile by user ID.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT
			user_id, work_hours, work_address, commute_mode,
			sleep_hours, noise_preference, hobbies, bedrooms,
			created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		p         Profile
		hobbies   []string
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.WorkHours,
		&p.WorkAddress,
		&p.CommuteMode,
		&p.SleepHours,
		&p.NoisePreference,
		&hobbies,
		&p.Bedrooms,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p.Hobbies = hobbies
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

// Upsert creates or replaces a profile.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO user_profiles (
			user_id, work_hours, work_address, commute_mode,
			sleep_hours, noise_preference, hobbies, bedrooms,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			work_hours = EXCLUDED.work_hours,
			work_address = EXCLUDED.work_address,
			commute_mode = EXCLUDED.commute_mode,
			sleep_hours = EXCLUDED.sleep_hours,
			noise_preference = EXCLUDED.noise_preference,
			hobbies = EXCLUDED.hobbies,
			bedrooms = EXCLUDED.bedrooms,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.WorkHours,
		p.WorkAddress,
		p.CommuteMode,
		p.SleepHours,
		p.NoisePreference,
		p.Hobbies,
		p.Bedrooms,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Delete removes a user's profile.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM user_profiles WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
