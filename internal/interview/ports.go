// Package interview drives one candidate through an ordered list of interview
// questions, coordinating speech output, recording, transcript accumulation
// and evaluation submission. The controller owns all session state; speech and
// recording hardware are injected as capability ports so the state machine is
// testable with deterministic fakes.
package interview

import (
	"context"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// TranscriptEvent is one partial result from the speech engine. Final
// segments are appended permanently to the answer; interim segments only
// replace a transient preview.
type TranscriptEvent struct {
	Text  string
	Final bool
}

// TranscriptStream delivers ordered transcript events until stopped. The
// events channel is closed by Stop or when the underlying engine terminates.
type TranscriptStream interface {
	Events() <-chan TranscriptEvent
	Stop() error
}

// SpeechEngine abstracts text-to-speech and speech-to-text capabilities.
type SpeechEngine interface {
	// Speak synthesizes text and returns when playback completes. A failure
	// is non-fatal to the interview flow.
	Speak(ctx context.Context, text string) error
	// Listen opens an incremental transcript stream.
	Listen(ctx context.Context) (TranscriptStream, error)
}

// AudioArtifact is the encoded recording produced when capture stops.
type AudioArtifact struct {
	SizeBytes int64
	MIMEType  string
}

// RecordingHandle owns a live capture stream. Stop must release the
// underlying device on every path.
type RecordingHandle interface {
	Stop() (AudioArtifact, error)
}

// Recorder abstracts audio capture hardware.
type Recorder interface {
	Start(ctx context.Context) (RecordingHandle, error)
}

// Backend is the controller's view of the evaluation server.
type Backend interface {
	StartSession(ctx context.Context) (sessionID string, err error)
	Evaluate(ctx context.Context, req EvaluateRequest) (domain.Evaluation, error)
	CompleteSession(ctx context.Context, sessionID string) error
}

// EvaluateRequest carries one answered question to the backend resolver.
type EvaluateRequest struct {
	SessionID      string
	QuestionIndex  int
	Question       string
	Answer         string
	TranscriptText string
	AudioDuration  float64
	ResponseTime   float64
}
