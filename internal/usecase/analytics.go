package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// AnalyticsService answers read-side analytics queries and records client
// metric events.
type AnalyticsService struct {
	Users     domain.UserRepository
	Sessions  domain.SessionRepository
	Responses domain.ResponseRepository
	Cache     domain.AnalyticsCache
	Metrics   domain.MetricSink
}

// NewAnalyticsService constructs an AnalyticsService. Cache and Metrics may
// be nil when the backing services are not configured.
func NewAnalyticsService(u domain.UserRepository, s domain.SessionRepository, r domain.ResponseRepository, cache domain.AnalyticsCache, metrics domain.MetricSink) AnalyticsService {
	return AnalyticsService{Users: u, Sessions: s, Responses: r, Cache: cache, Metrics: metrics}
}

// PerformanceReport aggregates a user's interview outcomes.
type PerformanceReport struct {
	UserID            string  `json:"user_id"`
	Name              string  `json:"name"`
	TotalInterviews   int     `json:"total_interviews"`
	AverageScore      float64 `json:"average_score"`
	CompletedSessions int     `json:"completed_sessions"`
	BestScore         float64 `json:"best_score"`
}

// Performance summarizes a user's history into a report.
func (s AnalyticsService) Performance(ctx domain.Context, userID string) (PerformanceReport, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("op=analytics.performance: %w", err)
	}
	sessions, err := s.Sessions.ListByUser(ctx, userID, 0)
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("op=analytics.performance: %w", err)
	}
	report := PerformanceReport{
		UserID:          user.ID,
		Name:            user.Name,
		TotalInterviews: user.TotalInterviews,
		AverageScore:    user.AverageScore,
	}
	for _, sess := range sessions {
		if sess.Status != domain.SessionCompleted {
			continue
		}
		report.CompletedSessions++
		if sess.OverallScore > report.BestScore {
			report.BestScore = sess.OverallScore
		}
	}
	return report, nil
}

// History lists a user's most recent sessions, newest first.
func (s AnalyticsService) History(ctx domain.Context, userID string, limit int) ([]domain.InterviewSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	sessions, err := s.Sessions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("op=analytics.history: %w", err)
	}
	return sessions, nil
}

// QuestionAnalytics returns per-question aggregates, served from cache when
// warm; a cold or failing cache falls through to the repository.
func (s AnalyticsService) QuestionAnalytics(ctx domain.Context) ([]domain.QuestionStats, error) {
	if s.Cache != nil {
		if stats, ok, err := s.Cache.GetQuestionStats(ctx); err == nil && ok {
			return stats, nil
		} else if err != nil {
			slog.Warn("question stats cache read failed", slog.Any("error", err))
		}
	}
	stats, err := s.Responses.QuestionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("op=analytics.questions: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.SetQuestionStats(ctx, stats); err != nil {
			slog.Warn("question stats cache write failed", slog.Any("error", err))
		}
	}
	return stats, nil
}

// RecordMetric publishes a metric event to the analytics stream. With no
// sink configured the event is only logged.
func (s AnalyticsService) RecordMetric(ctx domain.Context, ev domain.MetricEvent) error {
	if ev.Name == "" {
		return fmt.Errorf("%w: metric name required", domain.ErrInvalidArgument)
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if s.Metrics == nil {
		slog.Debug("metric recorded without sink", slog.String("name", ev.Name), slog.Float64("value", ev.Value))
		return nil
	}
	if err := s.Metrics.Publish(ctx, ev); err != nil {
		return fmt.Errorf("op=analytics.metric: %w", err)
	}
	return nil
}
