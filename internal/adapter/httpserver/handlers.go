package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/balajircs83/AI-Interview-Platform/internal/config"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
	"github.com/balajircs83/AI-Interview-Platform/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Sessions   usecase.SessionService
	Evaluate   usecase.EvaluateService
	Analytics  usecase.AnalyticsService
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, sessions usecase.SessionService, eval usecase.EvaluateService, analytics usecase.AnalyticsService, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Sessions: sessions, Evaluate: eval, Analytics: analytics, DBCheck: dbCheck, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument)
	}
	if err := getValidator().Struct(dst); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		return fmt.Errorf("%w: validation failed: %v", domain.ErrInvalidArgument, verrs)
	}
	return nil
}

// StartHandler creates or reuses a user and opens a new interview session.
func (s *Server) StartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserEmail string `json:"userEmail" validate:"omitempty,email"`
			UserName  string `json:"userName" validate:"omitempty,max=200"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		res, err := s.Sessions.Start(r.Context(), req.UserEmail, req.UserName)
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// EvaluateHandler scores an answer and optionally persists the response row.
// The evaluation is always returned even when persistence fails; the failure
// is only reflected in the saved flag.
func (s *Server) EvaluateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question       string  `json:"question" validate:"required,max=2000"`
			Answer         string  `json:"answer" validate:"required,max=20000"`
			SessionID      string  `json:"sessionId" validate:"omitempty,uuid"`
			QuestionIndex  *int    `json:"questionIndex" validate:"omitempty,min=0"`
			TranscriptText string  `json:"transcriptText"`
			AudioDuration  float64 `json:"audioDuration"`
			ResponseTime   float64 `json:"responseTime"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		eval, saved, saveErr := s.Evaluate.EvaluateAndRecord(r.Context(), usecase.EvaluateInput{
			Question:       req.Question,
			Answer:         req.Answer,
			SessionID:      req.SessionID,
			QuestionIndex:  req.QuestionIndex,
			TranscriptText: req.TranscriptText,
			AudioDuration:  req.AudioDuration,
			ResponseTime:   req.ResponseTime,
		})
		if saveErr != nil {
			LoggerFrom(r).Error("response persistence failed", slog.Any("error", saveErr))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"overall":      eval.Overall,
			"feedback":     eval.Feedback,
			"strengths":    eval.Strengths,
			"improvements": eval.Improvements,
			"saved":        saved,
		})
	}
}

// CompleteHandler closes a session and recomputes its aggregates.
func (s *Server) CompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"sessionId" validate:"required,uuid"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		sess, err := s.Sessions.Complete(r.Context(), req.SessionID)
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "session": sessionPayload(sess)})
	}
}

// SessionHandler returns one session with its ordered responses.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if id == "" {
			s.writeError(w, r, fmt.Errorf("%w: session id missing", domain.ErrInvalidArgument), nil)
			return
		}
		sess, responses, err := s.Sessions.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		out := sessionPayload(sess)
		rs := make([]map[string]any, 0, len(responses))
		for _, resp := range responses {
			rs = append(rs, responsePayload(resp))
		}
		out["responses"] = rs
		writeJSON(w, http.StatusOK, out)
	}
}

// PerformanceHandler returns a user's aggregate performance report.
func (s *Server) PerformanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.Analytics.Performance(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// HistoryHandler lists a user's recent sessions.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		sessions, err := s.Analytics.History(r.Context(), chi.URLParam(r, "userID"), limit)
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		out := make([]map[string]any, 0, len(sessions))
		for _, sess := range sessions {
			out = append(out, sessionPayload(sess))
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
	}
}

// QuestionAnalyticsHandler returns per-question aggregates.
func (s *Server) QuestionAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Analytics.QuestionAnalytics(r.Context())
		if err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": stats})
	}
}

// MetricHandler records one analytics metric event.
func (s *Server) MetricHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string         `json:"sessionId" validate:"omitempty,uuid"`
			Name      string         `json:"name" validate:"required,max=200"`
			Value     float64        `json:"value"`
			Tags      map[string]any `json:"tags"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		ev := domain.MetricEvent{SessionID: req.SessionID, Name: req.Name, Value: req.Value, Tags: req.Tags, At: time.Now().UTC()}
		if err := s.Analytics.RecordMetric(r.Context(), ev); err != nil {
			s.writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// HealthHandler returns a liveness payload.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"service": s.Cfg.OTELServiceName,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadyzHandler probes the database and, when configured, Redis.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		st := http.StatusOK
		for _, c := range checks {
			if !c.OK {
				st = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

func sessionPayload(s domain.InterviewSession) map[string]any {
	m := map[string]any{
		"id":                 s.ID,
		"user_id":            s.UserID,
		"session_token":      s.SessionToken,
		"status":             string(s.Status),
		"started_at":         s.StartedAt,
		"total_questions":    s.TotalQuestions,
		"questions_answered": s.QuestionsAnswered,
		"overall_score":      s.OverallScore,
	}
	if s.CompletedAt != nil {
		m["completed_at"] = *s.CompletedAt
	}
	if s.Metadata != nil {
		m["metadata"] = s.Metadata
	}
	return m
}

func responsePayload(r domain.QuestionResponse) map[string]any {
	m := map[string]any{
		"id":              r.ID,
		"question_index":  r.QuestionIndex,
		"question_text":   r.QuestionText,
		"user_answer":     r.UserAnswer,
		"transcript_text": r.TranscriptText,
		"audio_duration":  r.AudioDuration,
		"response_time":   r.ResponseTime,
	}
	if r.Evaluation != nil {
		m["evaluation_score"] = r.Evaluation.Overall
		m["evaluation_feedback"] = r.Evaluation.Feedback
		m["evaluation_strengths"] = r.Evaluation.Strengths
		m["evaluation_improvements"] = r.Evaluation.Improvements
	}
	return m
}
