// Package domain holds the core entities and ports of the interview platform.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// EmptySpeechSentinel is substituted for an answer when no transcript was
// captured. It doubles as display text and as the key the evaluation fallback
// matches on, so the literal must not change.
const EmptySpeechSentinel = "No speech was detected in the response."

// Session status values. in_progress transitions to completed or abandoned
// exactly once; both are terminal.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

type User struct {
	ID              string
	Email           string
	Name            string
	TotalInterviews int
	AverageScore    float64
	CreatedAt       time.Time
}

type InterviewSession struct {
	ID                string
	UserID            string
	SessionToken      string
	Status            SessionStatus
	StartedAt         time.Time
	CompletedAt       *time.Time
	TotalQuestions    int
	QuestionsAnswered int
	OverallScore      float64
	Metadata          map[string]any
}

// QuestionResponse is one answered question within a session, unique on
// (SessionID, QuestionIndex).
type QuestionResponse struct {
	ID             string
	SessionID      string
	QuestionIndex  int
	QuestionText   string
	UserAnswer     string
	TranscriptText string
	AudioDuration  float64
	ResponseTime   float64
	Evaluation     *Evaluation
	CreatedAt      time.Time
}

// Evaluation is a structured score for one answer. Valid only when all four
// fields are populated; the resolver substitutes a fallback otherwise.
type Evaluation struct {
	Overall      float64  `json:"overall"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Valid reports whether the evaluation satisfies the four-field invariant.
func (e Evaluation) Valid() bool {
	return e.Overall >= 1.0 && e.Overall <= 5.0 &&
		e.Feedback != "" && len(e.Strengths) > 0 && len(e.Improvements) > 0
}

// MetricEvent is an analytics data point recorded by the client or server.
type MetricEvent struct {
	SessionID string         `json:"session_id,omitempty"`
	Name      string         `json:"name"`
	Value     float64        `json:"value"`
	Tags      map[string]any `json:"tags,omitempty"`
	At        time.Time      `json:"at"`
}

// QuestionStats aggregates evaluation outcomes for one question index.
type QuestionStats struct {
	QuestionIndex int     `json:"question_index"`
	QuestionText  string  `json:"question_text"`
	Answered      int64   `json:"answered"`
	AverageScore  float64 `json:"average_score"`
}

// Repositories (ports)

//go:generate mockery --name=UserRepository --filename=user_repository_mock.go
//go:generate mockery --name=SessionRepository --filename=session_repository_mock.go
//go:generate mockery --name=ResponseRepository --filename=response_repository_mock.go
//go:generate mockery --name=AIClient --filename=aiclient_mock.go
//go:generate mockery --name=MetricSink --filename=metric_sink_mock.go
//go:generate mockery --name=AnalyticsCache --filename=analytics_cache_mock.go

type UserRepository interface {
	CreateOrGetByEmail(ctx Context, email, name string) (User, error)
	Get(ctx Context, id string) (User, error)
	UpdateAggregates(ctx Context, id string, totalInterviews int, averageScore float64) error
}

type SessionRepository interface {
	Create(ctx Context, s InterviewSession) (InterviewSession, error)
	Get(ctx Context, id string) (InterviewSession, error)
	Complete(ctx Context, id string, answered int, overallScore float64) (InterviewSession, error)
	UpdateStatus(ctx Context, id string, status SessionStatus) error
	ListByUser(ctx Context, userID string, limit int) ([]InterviewSession, error)
}

type ResponseRepository interface {
	Upsert(ctx Context, r QuestionResponse) (string, error)
	ListBySession(ctx Context, sessionID string) ([]QuestionResponse, error)
	QuestionStats(ctx Context) ([]QuestionStats, error)
}

// AIClient (port)

type AIClient interface {
	// ChatJSON sends a prompt to the scoring model and returns the raw text
	// response, which may wrap the JSON object in prose or markdown.
	ChatJSON(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// MetricSink (port) publishes analytics events to a stream; implementations
// must be safe to drop events when the backing transport is unavailable.
type MetricSink interface {
	Publish(ctx Context, ev MetricEvent) error
}

// AnalyticsCache (port) caches expensive aggregate queries. A miss is not an
// error; callers fall through to the repository.
type AnalyticsCache interface {
	GetQuestionStats(ctx Context) ([]QuestionStats, bool, error)
	SetQuestionStats(ctx Context, stats []QuestionStats) error
}

// Context aliases std context so entity files stay import-light.
type Context = context.Context
