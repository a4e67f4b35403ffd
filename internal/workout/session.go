package workout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/operatorprotocol/internal/audio"
	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultTickInterval = time.Second
	SettleDelay         = 3500 * time.Millisecond
	logWriteTimeout     = 10 * time.Second
	lowWarningFrom      = 4
)

var (
	ErrSessionComplete   = errors.New("session already complete")
	ErrSessionClosed     = errors.New("session closed")
	ErrInvalidTransition = errors.New("invalid session transition")
)

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=workout_test

// LogRequest is the completion record of a finished routine.
type LogRequest struct {
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

type LogWriter interface {
	WriteLog(ctx context.Context, req LogRequest) error
}

type Navigator interface {
	Navigate(path string)
}

// State can be one of:
//   - idle: briefing shown, nothing scheduled
//   - running
//   - paused
//   - complete: all steps done, waiting for the settle delay before navigating
//   - exited: abandoned by the operator, never logged
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateComplete State = "complete"
	StateExited   State = "exited"
)

type Snapshot struct {
	State            State `json:"state"`
	StepIndex        int   `json:"stepIndex"`
	TotalSteps       int   `json:"totalSteps"`
	Step             Step  `json:"step"`
	SecondsRemaining int   `json:"secondsRemaining"`
	Muted            bool  `json:"muted"`
}

type NewSessionParams struct {
	Routine        Routine
	Sink           audio.Sink
	LogWriter      LogWriter
	Navigator      Navigator
	Scheduler      Scheduler
	Clock          calendar.Clock
	MetricsManager *metrics.Manager
	// TickInterval defaults to one second
	TickInterval time.Duration
}

// Session drives one run of a routine through its steps. All transitions are
// serialized on the session mutex; cues, log writes and navigation happen
// after it is released.
type Session struct {
	routine        Routine
	steps          []Step
	lastWorkIndex  int
	sink           audio.Sink
	logWriter      LogWriter
	navigator      Navigator
	scheduler      Scheduler
	clock          calendar.Clock
	metricsManager *metrics.Manager
	tickInterval   time.Duration

	mutex            sync.Mutex
	state            State
	stepIndex        int
	secondsRemaining int
	muted            bool
	closed           bool
	sinkPrepared     bool
	// tickGeneration tells the live interval from cancelled ones still in flight
	tickGeneration   uint64
	cancelTick       Cancel
	cancelSettle     Cancel
	logWritten       chan struct{}
}

func NewSession(params NewSessionParams) (*Session, error) {
	steps, err := params.Routine.Steps()
	if err != nil {
		return nil, err
	}
	if params.Sink == nil {
		params.Sink = audio.NopSink{}
	}
	if params.Scheduler == nil {
		params.Scheduler = ClockScheduler{}
	}
	if params.Clock == nil {
		params.Clock = calendar.SystemClock{}
	}
	if params.TickInterval <= 0 {
		params.TickInterval = DefaultTickInterval
	}
	if params.LogWriter == nil || params.Navigator == nil || params.MetricsManager == nil {
		return nil, errors.New("new session: log writer, navigator and metrics manager are required")
	}

	return &Session{
		routine:        params.Routine,
		steps:          steps,
		lastWorkIndex:  lastWorkIndex(steps),
		sink:           params.Sink,
		logWriter:      params.LogWriter,
		navigator:      params.Navigator,
		scheduler:      params.Scheduler,
		clock:          params.Clock,
		metricsManager: params.MetricsManager,
		tickInterval:   params.TickInterval,
		state:          StateIdle,
	}, nil
}

func (s *Session) Steps() []Step {
	steps := make([]Step, len(s.steps))
	copy(steps, s.steps)
	return steps
}

func (s *Session) State() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return Snapshot{
		State:            s.state,
		StepIndex:        s.stepIndex,
		TotalSteps:       len(s.steps),
		Step:             s.steps[min(s.stepIndex, len(s.steps)-1)],
		SecondsRemaining: s.secondsRemaining,
		Muted:            s.muted,
	}
}

// Start loads the first step and begins the countdown.
func (s *Session) Start() error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateIdle {
		state := s.state
		s.mutex.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, state)
	}

	s.state = StateRunning
	s.stepIndex = 0
	s.secondsRemaining = s.steps[0].Duration
	s.startTick()
	cues := s.cues(audio.CuePhaseStart)
	prepareSink := !s.sinkPrepared
	s.sinkPrepared = true
	s.mutex.Unlock()

	log.Debugf("workout [%s]: started, %d steps, %ds total", s.routine.ID, len(s.steps), TotalDuration(s.steps))
	if prepareSink {
		if err := s.sink.EnsureReady(); err != nil {
			log.Warnf("workout [%s]: audio not ready, running silent: %s", s.routine.ID, err)
		}
	}
	s.play(cues)
	return nil
}

// TogglePause suspends or resumes the countdown, keeping the remaining seconds.
func (s *Session) TogglePause() (State, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return s.state, ErrSessionClosed
	}

	switch s.state {
	case StateRunning:
		s.stopTick()
		s.state = StatePaused
	case StatePaused:
		s.startTick()
		s.state = StateRunning
	default:
		return s.state, fmt.Errorf("%w: toggle pause from %s", ErrInvalidTransition, s.state)
	}
	return s.state, nil
}

// ToggleMute silences cues without touching the timing.
func (s *Session) ToggleMute() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.muted = !s.muted
	return s.muted
}

// Exit abandons the session without logging and navigates away right away.
func (s *Session) Exit() error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return ErrSessionClosed
	}

	switch s.state {
	case StateComplete:
		s.mutex.Unlock()
		return ErrSessionComplete
	case StateExited:
		s.mutex.Unlock()
		return nil
	}

	s.stopTick()
	s.state = StateExited
	redirect := s.routine.RedirectPath()
	s.mutex.Unlock()

	log.Debugf("workout [%s]: exited", s.routine.ID)
	s.navigator.Navigate(redirect)
	return nil
}

// Close cancels every pending timer. No callback has any effect afterwards.
func (s *Session) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.closed = true
	s.stopTick()
	if s.cancelSettle != nil {
		s.cancelSettle()
		s.cancelSettle = nil
	}
}

func (s *Session) tick(generation uint64) {
	s.mutex.Lock()
	if s.closed || s.state != StateRunning || generation != s.tickGeneration {
		s.mutex.Unlock()
		return
	}

	if s.secondsRemaining > 1 {
		var cues []audio.Cue
		if s.secondsRemaining <= lowWarningFrom {
			cues = s.cues(audio.CueLowWarning)
		}
		s.secondsRemaining--
		s.mutex.Unlock()
		s.play(cues)
		return
	}

	var cues []audio.Cue
	if s.stepIndex == s.lastWorkIndex {
		cues = append(cues, s.cues(audio.CueCelebratory)...)
	}

	s.stepIndex++
	if s.stepIndex < len(s.steps) {
		next := s.steps[s.stepIndex]
		s.secondsRemaining = next.Duration
		if next.Phase == PhaseWork {
			cues = append(cues, s.cues(audio.CuePhaseStart)...)
		}
		s.mutex.Unlock()
		s.play(cues)
		return
	}

	// last step done
	s.stepIndex = len(s.steps) - 1
	s.secondsRemaining = 0
	s.state = StateComplete
	s.stopTick()
	logWritten := make(chan struct{})
	s.logWritten = logWritten
	s.cancelSettle = s.scheduler.After(SettleDelay, s.settle)
	cues = append(cues, s.cues(audio.CueGentleComplete)...)
	s.mutex.Unlock()

	log.Debugf("workout [%s]: complete", s.routine.ID)
	s.play(cues)
	if !s.routine.SkipLog {
		s.writeLog()
	}
	close(logWritten)
}

func (s *Session) settle() {
	s.mutex.Lock()
	if s.closed || s.state != StateComplete {
		s.mutex.Unlock()
		return
	}
	s.cancelSettle = nil
	logWritten := s.logWritten
	redirect := s.routine.RedirectPath()
	s.mutex.Unlock()

	// navigation waits for the completion log, however slow the writer is
	<-logWritten

	s.mutex.Lock()
	closed := s.closed
	s.mutex.Unlock()
	if closed {
		return
	}
	s.navigator.Navigate(redirect)
}

// writeLog failures never reverse the completion, they are only reported.
func (s *Session) writeLog() {
	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()

	req := LogRequest{
		Category: s.routine.Category,
		Date:     s.clock.Now(),
	}
	if err := s.logWriter.WriteLog(ctx, req); err != nil {
		s.metricsManager.CounterLogWriteFailures.Inc()
		log.Errorf("workout [%s]: write completion log: %s", s.routine.ID, err)
	}
}

// cues expects the mutex to be held.
func (s *Session) cues(cue audio.Cue) []audio.Cue {
	if s.muted {
		return nil
	}
	return []audio.Cue{cue}
}

func (s *Session) play(cues []audio.Cue) {
	for _, cue := range cues {
		s.sink.PlayCue(cue)
	}
}

// startTick expects the mutex to be held.
func (s *Session) startTick() {
	s.tickGeneration++
	generation := s.tickGeneration
	s.cancelTick = s.scheduler.Every(s.tickInterval, func() {
		s.tick(generation)
	})
}

// stopTick expects the mutex to be held.
func (s *Session) stopTick() {
	s.tickGeneration++
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
}
