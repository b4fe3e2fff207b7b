package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// SessionRepo persists and loads interview sessions from PostgreSQL.
type SessionRepo struct{ Pool PgxPool }

// NewSessionRepo constructs a SessionRepo with the given pool.
func NewSessionRepo(p PgxPool) *SessionRepo { return &SessionRepo{Pool: p} }

const sessionColumns = `id, user_id, session_token, status, started_at, completed_at, total_questions, questions_answered, overall_score, metadata`

func scanSession(row pgx.Row) (domain.InterviewSession, error) {
	var s domain.InterviewSession
	var metadata []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.SessionToken, &s.Status, &s.StartedAt, &s.CompletedAt,
		&s.TotalQuestions, &s.QuestionsAnswered, &s.OverallScore, &metadata); err != nil {
		return domain.InterviewSession{}, err
	}
	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &s.Metadata)
	}
	return s, nil
}

// Create inserts a new session and returns the stored row.
func (r *SessionRepo) Create(ctx domain.Context, s domain.InterviewSession) (domain.InterviewSession, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Create")
	defer span.End()
	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}
	metadata, err := json.Marshal(s.Metadata)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.create: %w", err)
	}
	startedAt := s.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	q := `INSERT INTO interview_sessions (id, user_id, session_token, status, started_at, total_questions, questions_answered, overall_score, metadata)
	VALUES ($1,$2,$3,$4,$5,$6,0,0,$7)
	RETURNING ` + sessionColumns
	row := r.Pool.QueryRow(ctx, q, id, s.UserID, s.SessionToken, s.Status, startedAt, s.TotalQuestions, metadata)
	out, err := scanSession(row)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.create: %w", err)
	}
	return out, nil
}

// Get loads a session by id.
func (r *SessionRepo) Get(ctx domain.Context, id string) (domain.InterviewSession, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Get")
	defer span.End()
	q := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE id=$1`
	out, err := scanSession(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.InterviewSession{}, fmt.Errorf("op=session.get: %w", domain.ErrNotFound)
		}
		return domain.InterviewSession{}, fmt.Errorf("op=session.get: %w", err)
	}
	return out, nil
}

// Complete marks a session completed with its final aggregates.
func (r *SessionRepo) Complete(ctx domain.Context, id string, answered int, overallScore float64) (domain.InterviewSession, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Complete")
	defer span.End()
	q := `UPDATE interview_sessions
	SET status=$2, completed_at=$3, questions_answered=$4, overall_score=$5
	WHERE id=$1
	RETURNING ` + sessionColumns
	row := r.Pool.QueryRow(ctx, q, id, domain.SessionCompleted, time.Now().UTC(), answered, overallScore)
	out, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.InterviewSession{}, fmt.Errorf("op=session.complete: %w", domain.ErrNotFound)
		}
		return domain.InterviewSession{}, fmt.Errorf("op=session.complete: %w", err)
	}
	return out, nil
}

// UpdateStatus sets a session's status.
func (r *SessionRepo) UpdateStatus(ctx domain.Context, id string, status domain.SessionStatus) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.UpdateStatus")
	defer span.End()
	q := `UPDATE interview_sessions SET status=$2 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("op=session.update_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=session.update_status: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByUser returns a user's sessions, newest first. limit <= 0 means all.
func (r *SessionRepo) ListByUser(ctx domain.Context, userID string, limit int) ([]domain.InterviewSession, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.ListByUser")
	defer span.End()
	q := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE user_id=$1 ORDER BY started_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=session.list_by_user: %w", err)
	}
	defer rows.Close()
	var out []domain.InterviewSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("op=session.list_by_user: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=session.list_by_user: %w", err)
	}
	return out, nil
}
