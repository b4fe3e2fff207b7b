package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// UserRepo persists and loads users from PostgreSQL.
type UserRepo struct{ Pool PgxPool }

// NewUserRepo constructs a UserRepo with the given pool.
func NewUserRepo(p PgxPool) *UserRepo { return &UserRepo{Pool: p} }

// CreateOrGetByEmail inserts a user or returns the existing row for the
// unique email, refreshing the display name either way.
func (r *UserRepo) CreateOrGetByEmail(ctx domain.Context, email, name string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.CreateOrGetByEmail")
	defer span.End()
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email required", domain.ErrInvalidArgument)
	}
	q := `INSERT INTO users (id, email, name, total_interviews, average_score, created_at)
	VALUES ($1,$2,$3,0,0,$4)
	ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
	RETURNING id, email, name, total_interviews, average_score, created_at`
	row := r.Pool.QueryRow(ctx, q, uuid.New().String(), email, name, time.Now().UTC())
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.TotalInterviews, &u.AverageScore, &u.CreatedAt); err != nil {
		return domain.User{}, fmt.Errorf("op=user.create_or_get: %w", err)
	}
	return u, nil
}

// Get loads a user by id.
func (r *UserRepo) Get(ctx domain.Context, id string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.Get")
	defer span.End()
	q := `SELECT id, email, name, total_interviews, average_score, created_at FROM users WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.TotalInterviews, &u.AverageScore, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, fmt.Errorf("op=user.get: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("op=user.get: %w", err)
	}
	return u, nil
}

// UpdateAggregates stores the user's interview count and running average.
func (r *UserRepo) UpdateAggregates(ctx domain.Context, id string, totalInterviews int, averageScore float64) error {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.UpdateAggregates")
	defer span.End()
	q := `UPDATE users SET total_interviews=$2, average_score=$3 WHERE id=$1`
	_, err := r.Pool.Exec(ctx, q, id, totalInterviews, averageScore)
	if err != nil {
		return fmt.Errorf("op=user.update_aggregates: %w", err)
	}
	return nil
}
