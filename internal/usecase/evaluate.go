// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/ai"
	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

const evaluationSystemPrompt = `You are an experienced technical interviewer evaluating a candidate's spoken answer to an interview question. Score strictly:
- Non-answers such as "I don't know" score between 1.0 and 2.0.
- Irrelevant or off-topic answers score between 1.5 and 2.5.
- Answers with little substance score between 2.0 and 3.0.
- Only genuinely detailed, relevant answers score 4.0 or above.
Respond with strict JSON only, no prose, using exactly these keys:
{"overall": <number 1.0-5.0>, "feedback": "<string>", "strengths": ["<string>", ...], "improvements": ["<string>", ...]}`

const evaluationMaxTokens = 800

// EvaluateService is the evaluation resolver: it converts a (question,
// answer) pair into a structured evaluation and never fails outward; every
// error path resolves to the deterministic fallback.
type EvaluateService struct {
	AI        domain.AIClient
	Responses domain.ResponseRepository
}

// NewEvaluateService constructs an EvaluateService with its dependencies.
func NewEvaluateService(aiClient domain.AIClient, responses domain.ResponseRepository) EvaluateService {
	return EvaluateService{AI: aiClient, Responses: responses}
}

func buildUserPrompt(question, answer string) string {
	return fmt.Sprintf("Interview question:\n%s\n\nCandidate's answer:\n%s\n\nEvaluate the answer.", question, answer)
}

// Evaluate scores one answer. A transport failure, unparsable response, or
// validation failure all degrade to the rule-based fallback evaluation, so
// the returned value always satisfies the four-field invariant.
func (s EvaluateService) Evaluate(ctx domain.Context, question, answer string) domain.Evaluation {
	raw, err := s.AI.ChatJSON(ctx, evaluationSystemPrompt, buildUserPrompt(question, answer), evaluationMaxTokens)
	if err != nil {
		slog.Warn("scoring call failed, using fallback", slog.Any("error", err))
		observability.EvaluationsTotal.WithLabelValues("fallback").Inc()
		ev := domain.FallbackEvaluation(answer)
		observability.EvaluationScoreHistogram.Observe(ev.Overall)
		return ev
	}
	ev, err := ai.ParseEvaluation(raw)
	if err != nil {
		slog.Warn("scoring response invalid, using fallback", slog.Any("error", err))
		observability.EvaluationsTotal.WithLabelValues("fallback").Inc()
		ev = domain.FallbackEvaluation(answer)
		observability.EvaluationScoreHistogram.Observe(ev.Overall)
		return ev
	}
	observability.EvaluationsTotal.WithLabelValues("model").Inc()
	observability.EvaluationScoreHistogram.Observe(ev.Overall)
	return ev
}

// EvaluateInput carries one answered question plus optional persistence keys.
type EvaluateInput struct {
	Question       string
	Answer         string
	SessionID      string
	QuestionIndex  *int
	TranscriptText string
	AudioDuration  float64
	ResponseTime   float64
}

// EvaluateAndRecord evaluates the answer and, when session id and question
// index are supplied, upserts the response row. Persistence failure never
// blocks the evaluation result; it is reported through saveErr so the
// handler can flag it while still returning the evaluation.
func (s EvaluateService) EvaluateAndRecord(ctx domain.Context, in EvaluateInput) (ev domain.Evaluation, saved bool, saveErr error) {
	ev = s.Evaluate(ctx, in.Question, in.Answer)
	if in.SessionID == "" || in.QuestionIndex == nil {
		return ev, false, nil
	}
	evCopy := ev
	_, saveErr = s.Responses.Upsert(ctx, domain.QuestionResponse{
		ID:             uuid.New().String(),
		SessionID:      in.SessionID,
		QuestionIndex:  *in.QuestionIndex,
		QuestionText:   in.Question,
		UserAnswer:     in.Answer,
		TranscriptText: in.TranscriptText,
		AudioDuration:  in.AudioDuration,
		ResponseTime:   in.ResponseTime,
		Evaluation:     &evCopy,
		CreatedAt:      time.Now().UTC(),
	})
	if saveErr != nil {
		slog.Error("response upsert failed", slog.String("session_id", in.SessionID), slog.Int("question_index", *in.QuestionIndex), slog.Any("error", saveErr))
		return ev, false, fmt.Errorf("op=evaluate.record: %w", saveErr)
	}
	return ev, true, nil
}
