package interview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// State identifies where the controller is in the per-question cycle.
type State string

const (
	StateWelcome    State = "welcome"
	StateQuestion   State = "question"
	StateRecording  State = "recording"
	StateReview     State = "review"
	StateEvaluating State = "evaluating"
	StateResults    State = "results"
	StateComplete   State = "complete"
)

// recState tracks the ephemeral per-question recording session.
type recState int

const (
	recIdle recState = iota
	recArmed
	recRecording
	recStopped
)

// DefaultCountdownTicks is the recording countdown; reaching zero stops the
// recording exactly like an explicit stop.
const DefaultCountdownTicks = 30

// estimatedAudioBytesPerSecond converts artifact size to a duration estimate.
// This is a documented approximation, not a measured duration.
const estimatedAudioBytesPerSecond = 16000

// recordingSession owns the live capture handle and transcript stream for one
// question attempt. Both must be released on every exit path.
type recordingSession struct {
	state     recState
	handle    RecordingHandle
	stream    TranscriptStream
	acc       *TranscriptAccumulator
	countdown int
	artifact  AudioArtifact
}

// release stops the transcript stream and capture handle. Idempotent; errors
// are reported but never block the release of the remaining resource.
func (r *recordingSession) release(lg *slog.Logger) {
	if r.state == recStopped {
		return
	}
	r.state = recStopped
	if r.stream != nil {
		if err := r.stream.Stop(); err != nil {
			lg.Warn("transcript stream stop failed", slog.Any("error", err))
		}
		r.stream = nil
	}
	if r.handle != nil {
		art, err := r.handle.Stop()
		if err != nil {
			lg.Warn("recorder stop failed", slog.Any("error", err))
		} else {
			r.artifact = art
		}
		r.handle = nil
	}
}

// Controller is the interview session state machine. All exported methods are
// event entry points and are safe for concurrent use; state only changes
// under the controller's lock.
type Controller struct {
	mu sync.Mutex

	questions []string
	backend   Backend
	speech    SpeechEngine
	recorder  Recorder
	lg        *slog.Logger

	countdownTicks int
	now            func() time.Time
	settle         func(ctx context.Context)

	state           State
	sessionID       string
	idx             int
	responses       map[int]domain.QuestionResponse
	rec             *recordingSession
	questionShownAt time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithCountdown overrides the number of recording countdown ticks.
func WithCountdown(ticks int) Option {
	return func(c *Controller) { c.countdownTicks = ticks }
}

// WithSettle overrides the settle delay between speech synthesis completion
// and the start of recording.
func WithSettle(fn func(ctx context.Context)) Option {
	return func(c *Controller) { c.settle = fn }
}

// WithLogger sets the controller logger.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Controller) { c.lg = lg }
}

// NewController builds a controller in the Welcome state. Capture-device
// permission is assumed to have been granted already; a recorder that fails
// to start mid-interview surfaces as an error on the affected question only.
func NewController(questions []string, backend Backend, speech SpeechEngine, recorder Recorder, opts ...Option) (*Controller, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question required", domain.ErrInvalidArgument)
	}
	c := &Controller{
		questions:      questions,
		backend:        backend,
		speech:         speech,
		recorder:       recorder,
		lg:             slog.Default(),
		countdownTicks: DefaultCountdownTicks,
		now:            time.Now,
		settle:         func(ctx context.Context) { sleepCtx(ctx, time.Second) },
		state:          StateWelcome,
		responses:      map[int]domain.QuestionResponse{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the backend session identifier, empty before Start.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// CurrentIndex returns the zero-based index of the active question.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx
}

// CurrentQuestion returns the text of the active question.
func (c *Controller) CurrentQuestion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions[c.idx]
}

// Responses returns a copy of the completed question responses keyed by index.
func (c *Controller) Responses() map[int]domain.QuestionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]domain.QuestionResponse, len(c.responses))
	for k, v := range c.responses {
		out[k] = v
	}
	return out
}

// Countdown returns the remaining recording ticks.
func (c *Controller) Countdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rec == nil {
		return 0
	}
	return c.rec.countdown
}

// TranscriptPreview returns accumulated finals plus the pending interim text.
func (c *Controller) TranscriptPreview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rec == nil {
		return ""
	}
	return c.rec.acc.Preview()
}

// Start begins the interview: Welcome -> Question. A backend failure keeps
// the controller in Welcome so the action can be retried.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateWelcome {
		c.mu.Unlock()
		return fmt.Errorf("%w: start from %s", domain.ErrConflict, c.state)
	}
	c.mu.Unlock()

	sessionID, err := c.backend.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("op=interview.start: %w", err)
	}

	c.mu.Lock()
	c.sessionID = sessionID
	c.state = StateQuestion
	c.mu.Unlock()
	return c.presentQuestion(ctx)
}

// presentQuestion speaks the active question, waits out the settle delay and
// arms a fresh recording session. Synthesis failure is non-fatal.
func (c *Controller) presentQuestion(ctx context.Context) error {
	c.mu.Lock()
	question := c.questions[c.idx]
	c.questionShownAt = c.now()
	c.mu.Unlock()

	if err := c.speech.Speak(ctx, question); err != nil {
		c.lg.Warn("question synthesis failed, proceeding", slog.Int("question_index", c.CurrentIndex()), slog.Any("error", err))
	}
	c.settle(ctx)
	return c.beginRecording(ctx)
}

func (c *Controller) beginRecording(ctx context.Context) error {
	rec := &recordingSession{
		state:     recArmed,
		acc:       NewTranscriptAccumulator(),
		countdown: c.countdownTicks,
	}

	handle, err := c.recorder.Start(ctx)
	if err != nil {
		return fmt.Errorf("op=interview.record: %w", err)
	}
	rec.handle = handle

	// Transcript-stream errors are non-fatal: recording continues and the
	// answer degrades to the empty-speech sentinel.
	stream, err := c.speech.Listen(ctx)
	if err != nil {
		c.lg.Warn("transcript stream unavailable", slog.Any("error", err))
	} else {
		rec.stream = stream
	}

	c.mu.Lock()
	rec.state = recRecording
	c.rec = rec
	c.state = StateRecording
	c.mu.Unlock()

	if stream != nil {
		go c.pump(rec, stream)
	}
	return nil
}

// pump forwards transcript events into the accumulator while this recording
// session is still the live one.
func (c *Controller) pump(rec *recordingSession, stream TranscriptStream) {
	for ev := range stream.Events() {
		c.mu.Lock()
		if c.rec == rec && rec.state == recRecording {
			rec.acc.Push(ev)
		}
		c.mu.Unlock()
	}
}

// Tick advances the recording countdown by one time unit. Reaching zero takes
// the same path as an explicit stop. Ticks outside Recording are ignored.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording || c.rec == nil {
		return
	}
	c.rec.countdown--
	if c.rec.countdown <= 0 {
		c.stopRecordingLocked()
	}
}

// StopRecording ends capture for the active question: Recording -> Review.
func (c *Controller) StopRecording() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording {
		return fmt.Errorf("%w: stop from %s", domain.ErrConflict, c.state)
	}
	c.stopRecordingLocked()
	return nil
}

func (c *Controller) stopRecordingLocked() {
	c.rec.release(c.lg)
	answer := c.rec.acc.Final()
	if answer == "" {
		answer = domain.EmptySpeechSentinel
	}
	c.responses[c.idx] = domain.QuestionResponse{
		SessionID:      c.sessionID,
		QuestionIndex:  c.idx,
		QuestionText:   c.questions[c.idx],
		UserAnswer:     answer,
		TranscriptText: c.rec.acc.Final(),
		AudioDuration:  float64(c.rec.artifact.SizeBytes) / estimatedAudioBytesPerSecond,
	}
	c.state = StateReview
}

// Submit sends the reviewed answer for evaluation: Review -> Evaluating ->
// Results. The transition to Results always happens; a backend failure is
// absorbed with the deterministic fallback evaluation.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateReview {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit from %s", domain.ErrConflict, c.state)
	}
	idx := c.idx
	draft := c.responses[idx]
	draft.ResponseTime = c.now().Sub(c.questionShownAt).Seconds()
	c.responses[idx] = draft
	c.state = StateEvaluating
	req := EvaluateRequest{
		SessionID:      c.sessionID,
		QuestionIndex:  idx,
		Question:       draft.QuestionText,
		Answer:         draft.UserAnswer,
		TranscriptText: draft.TranscriptText,
		AudioDuration:  draft.AudioDuration,
		ResponseTime:   draft.ResponseTime,
	}
	c.mu.Unlock()

	eval, err := c.backend.Evaluate(ctx, req)
	if err != nil || !eval.Valid() {
		if err != nil {
			c.lg.Warn("evaluation call failed, using fallback", slog.Int("question_index", idx), slog.Any("error", err))
		}
		eval = domain.FallbackEvaluation(draft.UserAnswer)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent end-interview or re-record may have moved the machine on;
	// attach the evaluation only if this question is still the one in flight.
	if c.state != StateEvaluating || c.idx != idx {
		return nil
	}
	draft = c.responses[idx]
	draft.Evaluation = &eval
	c.responses[idx] = draft
	c.state = StateResults
	return nil
}

// Next advances past the displayed results: Results -> Question for the next
// index, or Results -> Complete after the final question.
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateResults {
		c.mu.Unlock()
		return fmt.Errorf("%w: next from %s", domain.ErrConflict, c.state)
	}
	if c.idx >= len(c.questions)-1 {
		c.mu.Unlock()
		return c.EndInterview(ctx)
	}
	c.idx++
	c.state = StateQuestion
	c.mu.Unlock()
	return c.presentQuestion(ctx)
}

// ReRecord discards the current question's draft and restarts its cycle. The
// index never moves. Allowed from any non-terminal state after Start.
func (c *Controller) ReRecord(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateWelcome, StateComplete:
		st := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: re-record from %s", domain.ErrConflict, st)
	}
	if c.rec != nil {
		c.rec.release(c.lg)
	}
	delete(c.responses, c.idx)
	c.state = StateQuestion
	c.mu.Unlock()
	return c.presentQuestion(ctx)
}

// EndInterview forces immediate completion from any non-terminal state,
// releasing any live recording resources and persisting final aggregates.
func (c *Controller) EndInterview(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateComplete {
		c.mu.Unlock()
		return nil
	}
	if c.state == StateWelcome {
		c.mu.Unlock()
		return fmt.Errorf("%w: end before start", domain.ErrConflict)
	}
	if c.rec != nil {
		c.rec.release(c.lg)
	}
	c.state = StateComplete
	sessionID := c.sessionID
	c.mu.Unlock()

	if err := c.backend.CompleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("op=interview.complete: %w", err)
	}
	return nil
}

// RunTicker drives Tick on a fixed interval until ctx is cancelled or the
// interview completes. Embedders that have their own timer can call Tick
// directly instead.
func (c *Controller) RunTicker(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if c.State() == StateComplete {
				return
			}
			c.Tick()
		}
	}
}
