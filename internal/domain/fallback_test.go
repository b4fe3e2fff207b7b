package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

func TestFallbackEvaluation_NonAnswer(t *testing.T) {
	t.Parallel()
	answers := []string{
		"I don't know",
		"Honestly, I DON'T KNOW anything about that topic",
		"i dont know",
		domain.EmptySpeechSentinel,
	}
	for _, answer := range answers {
		ev := domain.FallbackEvaluation(answer)
		require.True(t, ev.Valid(), "answer %q", answer)
		assert.InDelta(t, domain.FallbackScoreNonAnswer, ev.Overall, 1e-9, "answer %q", answer)
		assert.Contains(t, ev.Strengths, "Honest about knowledge gaps")
		assert.Len(t, ev.Improvements, 3)
	}
}

func TestFallbackEvaluation_Generic(t *testing.T) {
	t.Parallel()
	ev := domain.FallbackEvaluation("I used a caching layer to cut the p99 latency in half.")
	require.True(t, ev.Valid())
	assert.InDelta(t, domain.FallbackScoreGeneric, ev.Overall, 1e-9)
	assert.Contains(t, ev.Strengths, "Attempted to provide a response")
	assert.Len(t, ev.Improvements, 2)
}

func TestClampScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.0, domain.ClampScore(0.2))
	assert.Equal(t, 1.0, domain.ClampScore(-3))
	assert.Equal(t, 5.0, domain.ClampScore(7.5))
	assert.Equal(t, 3.3, domain.ClampScore(3.3))
	assert.Equal(t, 1.0, domain.ClampScore(1.0))
	assert.Equal(t, 5.0, domain.ClampScore(5.0))
}
