// Package ai implements the scoring model client and the tolerant parsing of
// its free-form output into structured evaluations.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// ExtractJSONObject locates the first '{' and its balanced closing '}' in a
// response that may wrap the object in prose or markdown fences. When no such
// span exists the input is returned unchanged so the caller's parse attempt
// produces the real error.
func ExtractJSONObject(response string) string {
	response = stripMarkdownFences(response)
	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return response
}

func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// rawEvaluation mirrors the JSON shape the prompt instructs the model to emit.
type rawEvaluation struct {
	Overall      *float64 `json:"overall"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// ParseEvaluation extracts and validates an evaluation object from raw model
// output. The overall score is clamped to [1.0, 5.0]; any missing or empty
// field is an error so callers substitute the fallback rather than a
// partially-filled evaluation.
func ParseEvaluation(raw string) (domain.Evaluation, error) {
	candidate := ExtractJSONObject(raw)
	var re rawEvaluation
	if err := json.Unmarshal([]byte(candidate), &re); err != nil {
		return domain.Evaluation{}, fmt.Errorf("op=ai.parse_evaluation: %w", err)
	}
	if re.Overall == nil || re.Feedback == "" || len(re.Strengths) == 0 || len(re.Improvements) == 0 {
		return domain.Evaluation{}, fmt.Errorf("op=ai.parse_evaluation: %w: missing required fields", domain.ErrInvalidArgument)
	}
	return domain.Evaluation{
		Overall:      domain.ClampScore(*re.Overall),
		Feedback:     re.Feedback,
		Strengths:    re.Strengths,
		Improvements: re.Improvements,
	}, nil
}
