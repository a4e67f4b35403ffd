package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var ErrDeviceUnavailable = errors.New("audio device unavailable")

// Cue can be one of:
//   - phase-start
//   - low-warning
//   - celebratory
//   - gentle-complete
type Cue string

const (
	CuePhaseStart     Cue = "phase-start"
	CueLowWarning     Cue = "low-warning"
	CueCelebratory    Cue = "celebratory"
	CueGentleComplete Cue = "gentle-complete"
)

func (c Cue) String() string {
	return string(c)
}

// Sink plays cues fire-and-forget. PlayCue never fails; an unavailable device is a no-op.
// EnsureReady is called once, before the first cue.
type Sink interface {
	EnsureReady() error
	PlayCue(cue Cue)
}

var (
	_ Sink = (*TerminalSink)(nil)
	_ Sink = (*LogSink)(nil)
	_ Sink = NopSink{}
	_ Sink = Tee{}
)

var cuePatterns = map[Cue]string{
	CuePhaseStart:     "\a>> GO",
	CueLowWarning:     "\a.",
	CueCelebratory:    "\a\a\a** MISSION PHASE CLEARED **",
	CueGentleComplete: "\a~~ protocol complete ~~",
}

// TerminalSink rings the terminal bell and prints a short marker per cue.
type TerminalSink struct {
	out   io.Writer
	ready bool
	mutex sync.Mutex
}

func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{
		out: out,
	}
}

func (s *TerminalSink) EnsureReady() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.out == nil {
		return ErrDeviceUnavailable
	}
	if _, err := io.WriteString(s.out, ""); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	s.ready = true
	return nil
}

func (s *TerminalSink) PlayCue(cue Cue) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.ready {
		return
	}
	pattern, ok := cuePatterns[cue]
	if !ok {
		return
	}
	if _, err := fmt.Fprintln(s.out, pattern); err != nil {
		log.Debugf("terminal sink, play cue %s: %s, muting device", cue, err)
		s.ready = false
	}
}

// LogSink records cues in the log and metrics, used for headless runs.
type LogSink struct {
	metricsManager *metrics.Manager
}

func NewLogSink(metricsManager *metrics.Manager) *LogSink {
	return &LogSink{
		metricsManager: metricsManager,
	}
}

func (s *LogSink) EnsureReady() error {
	return nil
}

func (s *LogSink) PlayCue(cue Cue) {
	log.Tracef("audio cue: %s", cue)
	s.metricsManager.CounterAudioCues.WithLabelValues(cue.String()).Inc()
}

type NopSink struct{}

func (NopSink) EnsureReady() error {
	return nil
}

func (NopSink) PlayCue(Cue) {}

// Tee plays every cue on all sinks.
type Tee []Sink

func (t Tee) EnsureReady() error {
	var err error
	for _, s := range t {
		err = multierr.Append(err, s.EnsureReady())
	}
	return err
}

func (t Tee) PlayCue(cue Cue) {
	for _, s := range t {
		s.PlayCue(cue)
	}
}
