package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// SessionService manages interview session lifecycle: start, lookup and
// completion with aggregate scoring.
type SessionService struct {
	Users          domain.UserRepository
	Sessions       domain.SessionRepository
	Responses      domain.ResponseRepository
	TotalQuestions int
}

// NewSessionService constructs a SessionService for a question bank of the
// given size.
func NewSessionService(u domain.UserRepository, s domain.SessionRepository, r domain.ResponseRepository, totalQuestions int) SessionService {
	return SessionService{Users: u, Sessions: s, Responses: r, TotalQuestions: totalQuestions}
}

// StartResult is returned to the client when a session begins.
type StartResult struct {
	SessionID    string `json:"sessionId"`
	SessionToken string `json:"sessionToken"`
	UserID       string `json:"userId"`
}

// Start creates or reuses the user record and opens a new in_progress
// session. An absent email gets a synthesized anonymous address so the
// unique-email constraint still holds.
func (s SessionService) Start(ctx domain.Context, email, name string) (StartResult, error) {
	if email == "" {
		email = fmt.Sprintf("anonymous_%d@temp.com", time.Now().Unix())
	}
	if name == "" {
		name = "Anonymous"
	}
	user, err := s.Users.CreateOrGetByEmail(ctx, email, name)
	if err != nil {
		return StartResult{}, fmt.Errorf("op=session.start: %w", err)
	}
	sess, err := s.Sessions.Create(ctx, domain.InterviewSession{
		UserID:         user.ID,
		SessionToken:   uuid.New().String(),
		Status:         domain.SessionInProgress,
		StartedAt:      time.Now().UTC(),
		TotalQuestions: s.TotalQuestions,
	})
	if err != nil {
		return StartResult{}, fmt.Errorf("op=session.start: %w", err)
	}
	observability.SessionsStartedTotal.Inc()
	return StartResult{SessionID: sess.ID, SessionToken: sess.SessionToken, UserID: user.ID}, nil
}

// Complete marks the session completed and recomputes its aggregates. The
// overall score averages over total_questions, counting unanswered or
// unevaluated questions as zero.
func (s SessionService) Complete(ctx domain.Context, sessionID string) (domain.InterviewSession, error) {
	if sessionID == "" {
		return domain.InterviewSession{}, fmt.Errorf("%w: session id required", domain.ErrInvalidArgument)
	}
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.complete: %w", err)
	}
	responses, err := s.Responses.ListBySession(ctx, sessionID)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.complete: %w", err)
	}
	var sum float64
	for _, r := range responses {
		if r.Evaluation != nil {
			sum += r.Evaluation.Overall
		}
	}
	total := sess.TotalQuestions
	if total == 0 {
		total = s.TotalQuestions
	}
	overall := 0.0
	if total > 0 {
		overall = sum / float64(total)
	}
	updated, err := s.Sessions.Complete(ctx, sessionID, len(responses), overall)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.complete: %w", err)
	}
	s.bumpUserAggregates(ctx, sess.UserID, overall)
	observability.SessionsCompletedTotal.Inc()
	return updated, nil
}

// bumpUserAggregates folds the finished session into the user's running
// average. Failure here is logged by the repo layer and deliberately does not
// fail the completion.
func (s SessionService) bumpUserAggregates(ctx domain.Context, userID string, overall float64) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return
	}
	n := user.TotalInterviews
	avg := (user.AverageScore*float64(n) + overall) / float64(n+1)
	_ = s.Users.UpdateAggregates(ctx, userID, n+1, avg)
}

// Get returns a session with its responses ordered by question index.
func (s SessionService) Get(ctx domain.Context, sessionID string) (domain.InterviewSession, []domain.QuestionResponse, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.InterviewSession{}, nil, fmt.Errorf("op=session.get: %w", err)
	}
	responses, err := s.Responses.ListBySession(ctx, sessionID)
	if err != nil {
		return domain.InterviewSession{}, nil, fmt.Errorf("op=session.get: %w", err)
	}
	return sess, responses, nil
}

// Abandon marks an in_progress session abandoned.
func (s SessionService) Abandon(ctx domain.Context, sessionID string) error {
	if err := s.Sessions.UpdateStatus(ctx, sessionID, domain.SessionAbandoned); err != nil {
		return fmt.Errorf("op=session.abandon: %w", err)
	}
	return nil
}
