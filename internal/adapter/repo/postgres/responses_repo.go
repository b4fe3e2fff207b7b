package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// ResponseRepo persists question responses, upserting on the unique
// (session_id, question_index) key.
type ResponseRepo struct{ Pool PgxPool }

// NewResponseRepo constructs a ResponseRepo with the given pool.
func NewResponseRepo(p PgxPool) *ResponseRepo { return &ResponseRepo{Pool: p} }

// Upsert inserts or overwrites the response for (session_id, question_index)
// and returns the row id.
func (r *ResponseRepo) Upsert(ctx domain.Context, resp domain.QuestionResponse) (string, error) {
	tracer := otel.Tracer("repo.responses")
	ctx, span := tracer.Start(ctx, "responses.Upsert")
	defer span.End()
	id := resp.ID
	if id == "" {
		id = uuid.New().String()
	}
	var score *float64
	var feedback *string
	var strengths, improvements []string
	if resp.Evaluation != nil {
		score = &resp.Evaluation.Overall
		feedback = &resp.Evaluation.Feedback
		strengths = resp.Evaluation.Strengths
		improvements = resp.Evaluation.Improvements
	}
	q := `INSERT INTO question_responses
	(id, session_id, question_index, question_text, user_answer, transcript_text, audio_duration, response_time,
	 evaluation_score, evaluation_feedback, evaluation_strengths, evaluation_improvements, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	ON CONFLICT (session_id, question_index)
	DO UPDATE SET question_text=EXCLUDED.question_text, user_answer=EXCLUDED.user_answer,
		transcript_text=EXCLUDED.transcript_text, audio_duration=EXCLUDED.audio_duration,
		response_time=EXCLUDED.response_time, evaluation_score=EXCLUDED.evaluation_score,
		evaluation_feedback=EXCLUDED.evaluation_feedback, evaluation_strengths=EXCLUDED.evaluation_strengths,
		evaluation_improvements=EXCLUDED.evaluation_improvements
	RETURNING id`
	row := r.Pool.QueryRow(ctx, q, id, resp.SessionID, resp.QuestionIndex, resp.QuestionText, resp.UserAnswer,
		resp.TranscriptText, resp.AudioDuration, resp.ResponseTime, score, feedback, strengths, improvements, time.Now().UTC())
	var storedID string
	if err := row.Scan(&storedID); err != nil {
		return "", fmt.Errorf("op=response.upsert: %w", err)
	}
	return storedID, nil
}

// ListBySession returns a session's responses ordered by question index.
func (r *ResponseRepo) ListBySession(ctx domain.Context, sessionID string) ([]domain.QuestionResponse, error) {
	tracer := otel.Tracer("repo.responses")
	ctx, span := tracer.Start(ctx, "responses.ListBySession")
	defer span.End()
	q := `SELECT id, session_id, question_index, question_text, user_answer, transcript_text, audio_duration, response_time,
	evaluation_score, evaluation_feedback, evaluation_strengths, evaluation_improvements, created_at
	FROM question_responses WHERE session_id=$1 ORDER BY question_index ASC`
	rows, err := r.Pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("op=response.list: %w", err)
	}
	defer rows.Close()
	var out []domain.QuestionResponse
	for rows.Next() {
		var resp domain.QuestionResponse
		var score *float64
		var feedback *string
		var strengths, improvements []string
		if err := rows.Scan(&resp.ID, &resp.SessionID, &resp.QuestionIndex, &resp.QuestionText, &resp.UserAnswer,
			&resp.TranscriptText, &resp.AudioDuration, &resp.ResponseTime,
			&score, &feedback, &strengths, &improvements, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=response.list: %w", err)
		}
		if score != nil && feedback != nil {
			resp.Evaluation = &domain.Evaluation{
				Overall:      *score,
				Feedback:     *feedback,
				Strengths:    strengths,
				Improvements: improvements,
			}
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=response.list: %w", err)
	}
	return out, nil
}

// QuestionStats aggregates answered counts and average scores per question
// index across all sessions.
func (r *ResponseRepo) QuestionStats(ctx domain.Context) ([]domain.QuestionStats, error) {
	tracer := otel.Tracer("repo.responses")
	ctx, span := tracer.Start(ctx, "responses.QuestionStats")
	defer span.End()
	q := `SELECT question_index, MAX(question_text), COUNT(*), COALESCE(AVG(evaluation_score), 0)
	FROM question_responses GROUP BY question_index ORDER BY question_index ASC`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=response.question_stats: %w", err)
	}
	defer rows.Close()
	var out []domain.QuestionStats
	for rows.Next() {
		var st domain.QuestionStats
		if err := rows.Scan(&st.QuestionIndex, &st.QuestionText, &st.Answered, &st.AverageScore); err != nil {
			return nil, fmt.Errorf("op=response.question_stats: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=response.question_stats: %w", err)
	}
	return out, nil
}
