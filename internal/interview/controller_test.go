package interview_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
	"github.com/balajircs83/AI-Interview-Platform/internal/interview"
)

type fakeStream struct {
	ch   chan interview.TranscriptEvent
	once sync.Once

	mu      sync.Mutex
	stopped bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{ch: make(chan interview.TranscriptEvent)}
}

func (s *fakeStream) Events() <-chan interview.TranscriptEvent { return s.ch }

func (s *fakeStream) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
	return nil
}

func (s *fakeStream) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type fakeHandle struct {
	artifact interview.AudioArtifact

	mu      sync.Mutex
	stopped bool
}

func (h *fakeHandle) Stop() (interview.AudioArtifact, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	return h.artifact, nil
}

func (h *fakeHandle) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

type fakeRecorder struct {
	startErr error

	mu      sync.Mutex
	handles []*fakeHandle
}

func (r *fakeRecorder) Start(context.Context) (interview.RecordingHandle, error) {
	if r.startErr != nil {
		return nil, r.startErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h := &fakeHandle{artifact: interview.AudioArtifact{SizeBytes: 48000, MIMEType: "audio/webm"}}
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeRecorder) lastHandle() *fakeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.handles) == 0 {
		return nil
	}
	return r.handles[len(r.handles)-1]
}

type fakeSpeech struct {
	speakErr  error
	listenErr error

	mu      sync.Mutex
	spoken  []string
	streams []*fakeStream
}

func (s *fakeSpeech) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	return s.speakErr
}

func (s *fakeSpeech) Listen(context.Context) (interview.TranscriptStream, error) {
	if s.listenErr != nil {
		return nil, s.listenErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := newFakeStream()
	s.streams = append(s.streams, st)
	return st, nil
}

func (s *fakeSpeech) lastStream() *fakeStream {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.streams) == 0 {
		return nil
	}
	return s.streams[len(s.streams)-1]
}

type fakeBackend struct {
	startErr    error
	evaluateErr error
	evaluation  domain.Evaluation

	mu        sync.Mutex
	evaluated []interview.EvaluateRequest
	completed []string
}

func (b *fakeBackend) StartSession(context.Context) (string, error) {
	if b.startErr != nil {
		return "", b.startErr
	}
	return "sess-1", nil
}

func (b *fakeBackend) Evaluate(_ context.Context, req interview.EvaluateRequest) (domain.Evaluation, error) {
	b.mu.Lock()
	b.evaluated = append(b.evaluated, req)
	b.mu.Unlock()
	if b.evaluateErr != nil {
		return domain.Evaluation{}, b.evaluateErr
	}
	return b.evaluation, nil
}

func (b *fakeBackend) CompleteSession(_ context.Context, sessionID string) error {
	b.mu.Lock()
	b.completed = append(b.completed, sessionID)
	b.mu.Unlock()
	return nil
}

func validEvaluation() domain.Evaluation {
	return domain.Evaluation{
		Overall:      4.2,
		Feedback:     "detailed and relevant",
		Strengths:    []string{"specific examples"},
		Improvements: []string{"mention outcomes"},
	}
}

func newTestController(t *testing.T, questions []string, backend *fakeBackend, speech *fakeSpeech, rec *fakeRecorder) *interview.Controller {
	t.Helper()
	c, err := interview.NewController(questions, backend, speech, rec,
		interview.WithSettle(func(context.Context) {}),
	)
	require.NoError(t, err)
	return c
}

func waitPreview(t *testing.T, c *interview.Controller, want string) {
	t.Helper()
	require.Eventually(t, func() bool { return c.TranscriptPreview() == want },
		2*time.Second, 5*time.Millisecond)
}

func TestController_RequiresQuestions(t *testing.T) {
	t.Parallel()
	_, err := interview.NewController(nil, &fakeBackend{}, &fakeSpeech{}, &fakeRecorder{})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestController_FullInterview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBackend{evaluation: validEvaluation()}
	speech := &fakeSpeech{}
	rec := &fakeRecorder{}
	c := newTestController(t, []string{"q one", "q two"}, backend, speech, rec)

	require.Equal(t, interview.StateWelcome, c.State())
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, "sess-1", c.SessionID())
	assert.Equal(t, interview.StateRecording, c.State())
	assert.Equal(t, []string{"q one"}, speech.spoken)

	speech.lastStream().ch <- interview.TranscriptEvent{Text: "I built a", Final: true}
	speech.lastStream().ch <- interview.TranscriptEvent{Text: "service in Go", Final: true}
	waitPreview(t, c, "I built a service in Go")

	require.NoError(t, c.StopRecording())
	require.Equal(t, interview.StateReview, c.State())
	assert.True(t, speech.lastStream().isStopped())
	assert.True(t, rec.lastHandle().isStopped())

	resp := c.Responses()[0]
	assert.Equal(t, "I built a service in Go", resp.UserAnswer)
	assert.Equal(t, "I built a service in Go", resp.TranscriptText)
	assert.InDelta(t, 3.0, resp.AudioDuration, 1e-9) // 48000 bytes at 16000 bytes/s

	require.NoError(t, c.Submit(ctx))
	require.Equal(t, interview.StateResults, c.State())
	resp = c.Responses()[0]
	require.NotNil(t, resp.Evaluation)
	assert.InDelta(t, 4.2, resp.Evaluation.Overall, 1e-9)

	require.NoError(t, c.Next(ctx))
	assert.Equal(t, 1, c.CurrentIndex())
	assert.Equal(t, "q two", c.CurrentQuestion())
	require.Equal(t, interview.StateRecording, c.State())

	require.NoError(t, c.StopRecording())
	require.NoError(t, c.Submit(ctx))

	// Next past the final question completes the interview.
	require.NoError(t, c.Next(ctx))
	require.Equal(t, interview.StateComplete, c.State())
	assert.Equal(t, []string{"sess-1"}, backend.completed)
}

func TestController_StartBackendFailureStaysWelcome(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBackend{startErr: errors.New("backend down")}
	c := newTestController(t, []string{"q"}, backend, &fakeSpeech{}, &fakeRecorder{})

	require.Error(t, c.Start(ctx))
	assert.Equal(t, interview.StateWelcome, c.State())

	// The action is retryable once the backend recovers.
	backend.startErr = nil
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, interview.StateRecording, c.State())
}

func TestController_SpeakFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	speech := &fakeSpeech{speakErr: errors.New("no audio device")}
	c := newTestController(t, []string{"q"}, &fakeBackend{}, speech, &fakeRecorder{})
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, interview.StateRecording, c.State())
}

func TestController_ListenFailureDegradesToSentinel(t *testing.T) {
	t.Parallel()
	speech := &fakeSpeech{listenErr: errors.New("speech engine unavailable")}
	c := newTestController(t, []string{"q"}, &fakeBackend{}, speech, &fakeRecorder{})
	require.NoError(t, c.Start(context.Background()))
	require.Equal(t, interview.StateRecording, c.State())

	require.NoError(t, c.StopRecording())
	resp := c.Responses()[0]
	assert.Equal(t, domain.EmptySpeechSentinel, resp.UserAnswer)
	assert.Equal(t, "", resp.TranscriptText)
}

func TestController_CountdownExpiryStopsRecording(t *testing.T) {
	t.Parallel()
	speech := &fakeSpeech{}
	c, err := interview.NewController([]string{"q"}, &fakeBackend{}, speech, &fakeRecorder{},
		interview.WithSettle(func(context.Context) {}),
		interview.WithCountdown(3),
	)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	require.Equal(t, 3, c.Countdown())

	c.Tick()
	c.Tick()
	assert.Equal(t, interview.StateRecording, c.State())
	c.Tick()
	assert.Equal(t, interview.StateReview, c.State())
	assert.True(t, speech.lastStream().isStopped())

	// Ticks after the countdown fired are ignored.
	c.Tick()
	assert.Equal(t, interview.StateReview, c.State())
}

func TestController_EmptyTranscriptGetsSentinel(t *testing.T) {
	t.Parallel()
	c := newTestController(t, []string{"q"}, &fakeBackend{}, &fakeSpeech{}, &fakeRecorder{})
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.StopRecording())
	assert.Equal(t, domain.EmptySpeechSentinel, c.Responses()[0].UserAnswer)
}

func TestController_SubmitFallbackOnEvaluateError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBackend{evaluateErr: errors.New("scorer unreachable")}
	speech := &fakeSpeech{}
	c := newTestController(t, []string{"q"}, backend, speech, &fakeRecorder{})
	require.NoError(t, c.Start(ctx))

	speech.lastStream().ch <- interview.TranscriptEvent{Text: "a real answer", Final: true}
	waitPreview(t, c, "a real answer")
	require.NoError(t, c.StopRecording())

	require.NoError(t, c.Submit(ctx))
	require.Equal(t, interview.StateResults, c.State())
	resp := c.Responses()[0]
	require.NotNil(t, resp.Evaluation)
	assert.InDelta(t, domain.FallbackScoreGeneric, resp.Evaluation.Overall, 1e-9)
	assert.True(t, resp.Evaluation.Valid())
}

func TestController_SubmitFallbackOnInvalidEvaluation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	// Backend answers without error but misses required fields.
	backend := &fakeBackend{evaluation: domain.Evaluation{Overall: 4.0}}
	c := newTestController(t, []string{"q"}, backend, &fakeSpeech{}, &fakeRecorder{})
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.StopRecording())
	require.NoError(t, c.Submit(ctx))

	resp := c.Responses()[0]
	require.NotNil(t, resp.Evaluation)
	// Empty-speech answer resolves to the non-answer tier.
	assert.InDelta(t, domain.FallbackScoreNonAnswer, resp.Evaluation.Overall, 1e-9)
}

func TestController_ReRecordDiscardsDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	speech := &fakeSpeech{}
	rec := &fakeRecorder{}
	c := newTestController(t, []string{"q"}, &fakeBackend{evaluation: validEvaluation()}, speech, rec)
	require.NoError(t, c.Start(ctx))

	speech.lastStream().ch <- interview.TranscriptEvent{Text: "first take", Final: true}
	waitPreview(t, c, "first take")
	require.NoError(t, c.StopRecording())
	require.Contains(t, c.Responses(), 0)

	require.NoError(t, c.ReRecord(ctx))
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, interview.StateRecording, c.State())
	assert.NotContains(t, c.Responses(), 0)
	assert.Equal(t, "", c.TranscriptPreview())

	speech.lastStream().ch <- interview.TranscriptEvent{Text: "second take", Final: true}
	waitPreview(t, c, "second take")
	require.NoError(t, c.StopRecording())
	assert.Equal(t, "second take", c.Responses()[0].UserAnswer)
}

func TestController_ReRecordRejectedInTerminalStates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestController(t, []string{"q"}, &fakeBackend{}, &fakeSpeech{}, &fakeRecorder{})
	require.ErrorIs(t, c.ReRecord(ctx), domain.ErrConflict)

	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.EndInterview(ctx))
	require.ErrorIs(t, c.ReRecord(ctx), domain.ErrConflict)
}

func TestController_EndInterviewReleasesResources(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBackend{}
	speech := &fakeSpeech{}
	rec := &fakeRecorder{}
	c := newTestController(t, []string{"q one", "q two"}, backend, speech, rec)
	require.NoError(t, c.Start(ctx))
	require.Equal(t, interview.StateRecording, c.State())

	require.NoError(t, c.EndInterview(ctx))
	assert.Equal(t, interview.StateComplete, c.State())
	assert.True(t, speech.lastStream().isStopped())
	assert.True(t, rec.lastHandle().isStopped())
	assert.Equal(t, []string{"sess-1"}, backend.completed)

	// Ending twice is a no-op, not an error.
	require.NoError(t, c.EndInterview(ctx))
	assert.Len(t, backend.completed, 1)
}

func TestController_InvalidTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestController(t, []string{"q"}, &fakeBackend{}, &fakeSpeech{}, &fakeRecorder{})

	require.ErrorIs(t, c.StopRecording(), domain.ErrConflict)
	require.ErrorIs(t, c.Submit(ctx), domain.ErrConflict)
	require.ErrorIs(t, c.Next(ctx), domain.ErrConflict)
	require.ErrorIs(t, c.EndInterview(ctx), domain.ErrConflict)

	require.NoError(t, c.Start(ctx))
	require.ErrorIs(t, c.Start(ctx), domain.ErrConflict)
	require.ErrorIs(t, c.Submit(ctx), domain.ErrConflict)
}

func TestController_RecorderStartFailureSurfaces(t *testing.T) {
	t.Parallel()
	rec := &fakeRecorder{startErr: errors.New("mic busy")}
	c := newTestController(t, []string{"q"}, &fakeBackend{}, &fakeSpeech{}, rec)
	require.Error(t, c.Start(context.Background()))
}

func TestController_EvaluateRequestCarriesDraftFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBackend{evaluation: validEvaluation()}
	speech := &fakeSpeech{}
	c := newTestController(t, []string{"q one"}, backend, speech, &fakeRecorder{})
	require.NoError(t, c.Start(ctx))

	speech.lastStream().ch <- interview.TranscriptEvent{Text: "answer text", Final: true}
	waitPreview(t, c, "answer text")
	require.NoError(t, c.StopRecording())
	require.NoError(t, c.Submit(ctx))

	require.Len(t, backend.evaluated, 1)
	req := backend.evaluated[0]
	assert.Equal(t, "sess-1", req.SessionID)
	assert.Equal(t, 0, req.QuestionIndex)
	assert.Equal(t, "q one", req.Question)
	assert.Equal(t, "answer text", req.Answer)
	assert.GreaterOrEqual(t, req.ResponseTime, 0.0)
}
