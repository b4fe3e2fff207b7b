package domain

import "strings"

// Fallback score tiers. A non-answer ("i don't know" or no detected speech)
// scores 1.2; any other evaluation failure degrades to a generic 1.5.
const (
	FallbackScoreNonAnswer = 1.2
	FallbackScoreGeneric   = 1.5
)

// FallbackEvaluation synthesizes a deterministic rule-based evaluation from
// lexical cues in the answer. It is used whenever the external scorer is
// unreachable or its output fails validation, and always satisfies the
// four-field validity invariant.
func FallbackEvaluation(answer string) Evaluation {
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "i don't know") || strings.Contains(lower, "i dont know") || answer == EmptySpeechSentinel {
		return Evaluation{
			Overall:   FallbackScoreNonAnswer,
			Feedback:  "The response indicates a lack of knowledge on the topic, or no speech was detected. Interviewers value candidates who can offer related experience or reasoning even when unsure of the exact answer.",
			Strengths: []string{"Honest about knowledge gaps"},
			Improvements: []string{
				"Prepare better for the interview",
				"Research common interview questions",
				"Provide alternative approaches or related experience",
			},
		}
	}
	return Evaluation{
		Overall:   FallbackScoreGeneric,
		Feedback:  "The answer could not be evaluated in detail due to a technical issue with the scoring service. Based on a basic review, the response would benefit from more specific and structured content.",
		Strengths: []string{"Attempted to provide a response"},
		Improvements: []string{
			"Provide more detailed and relevant information",
			"Structure your answer more clearly",
		},
	}
}

// ClampScore pulls an overall score to the nearest bound of [1.0, 5.0].
func ClampScore(v float64) float64 {
	switch {
	case v < 1.0:
		return 1.0
	case v > 5.0:
		return 5.0
	default:
		return v
	}
}
