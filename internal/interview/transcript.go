package interview

import "strings"

// TranscriptAccumulator folds an ordered stream of transcript events into a
// final answer. Final segments append in event order; the latest interim
// segment is only ever shown after all accumulated finals.
type TranscriptAccumulator struct {
	finals  []string
	interim string
}

// NewTranscriptAccumulator returns an empty accumulator.
func NewTranscriptAccumulator() *TranscriptAccumulator {
	return &TranscriptAccumulator{}
}

// Push folds one event into the accumulator.
func (a *TranscriptAccumulator) Push(ev TranscriptEvent) {
	if ev.Final {
		if s := strings.TrimSpace(ev.Text); s != "" {
			a.finals = append(a.finals, s)
		}
		a.interim = ""
		return
	}
	a.interim = ev.Text
}

// Preview returns accumulated finals followed by the current interim segment.
func (a *TranscriptAccumulator) Preview() string {
	s := strings.Join(a.finals, " ")
	if a.interim != "" {
		if s != "" {
			s += " "
		}
		s += a.interim
	}
	return s
}

// Final returns the trimmed answer built from final segments only. Interim
// text never contributes; a stream that produced no finals yields "".
func (a *TranscriptAccumulator) Final() string {
	return strings.TrimSpace(strings.Join(a.finals, " "))
}
