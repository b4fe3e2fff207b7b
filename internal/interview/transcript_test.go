package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptAccumulator_FinalsAppendInOrder(t *testing.T) {
	t.Parallel()
	acc := NewTranscriptAccumulator()
	acc.Push(TranscriptEvent{Text: "I worked on", Final: true})
	acc.Push(TranscriptEvent{Text: "  a payments system  ", Final: true})
	acc.Push(TranscriptEvent{Text: "for two years", Final: true})
	assert.Equal(t, "I worked on a payments system for two years", acc.Final())
}

func TestTranscriptAccumulator_InterimOnlyPreviews(t *testing.T) {
	t.Parallel()
	acc := NewTranscriptAccumulator()
	acc.Push(TranscriptEvent{Text: "my back", Final: false})
	acc.Push(TranscriptEvent{Text: "my background is", Final: false})
	assert.Equal(t, "my background is", acc.Preview())
	assert.Equal(t, "", acc.Final())

	// The final segment supersedes the interim preview.
	acc.Push(TranscriptEvent{Text: "my background is in Go", Final: true})
	assert.Equal(t, "my background is in Go", acc.Preview())
	assert.Equal(t, "my background is in Go", acc.Final())
}

func TestTranscriptAccumulator_PreviewCombinesFinalsAndInterim(t *testing.T) {
	t.Parallel()
	acc := NewTranscriptAccumulator()
	acc.Push(TranscriptEvent{Text: "first part.", Final: true})
	acc.Push(TranscriptEvent{Text: "second pa", Final: false})
	assert.Equal(t, "first part. second pa", acc.Preview())
	assert.Equal(t, "first part.", acc.Final())
}

func TestTranscriptAccumulator_BlankFinalsIgnored(t *testing.T) {
	t.Parallel()
	acc := NewTranscriptAccumulator()
	acc.Push(TranscriptEvent{Text: "   ", Final: true})
	acc.Push(TranscriptEvent{Text: "", Final: true})
	assert.Equal(t, "", acc.Final())
	assert.Equal(t, "", acc.Preview())
}
