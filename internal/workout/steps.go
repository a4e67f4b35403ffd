package workout

import (
	"errors"
	"fmt"
)

// IntroDuration is the get-ready countdown in seconds that opens every built routine.
const IntroDuration = 5

var ErrInvalidConfig = errors.New("invalid routine config")

// Phase can be one of:
//   - intro
//   - work
//   - rest
//   - cooldown
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhaseWork     Phase = "work"
	PhaseRest     Phase = "rest"
	PhaseCooldown Phase = "cooldown"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseIntro, PhaseWork, PhaseRest, PhaseCooldown:
		return true
	default:
		return false
	}
}

// Step is one timed segment of a routine. Duration is in seconds.
type Step struct {
	Label         string `yaml:"label" json:"label"`
	Duration      int    `yaml:"duration" json:"duration"`
	Phase         Phase  `yaml:"phase" json:"phase"`
	ExerciseIndex *int   `yaml:"exercise_index,omitempty" json:"exerciseIndex,omitempty"`
	RoundIndex    *int   `yaml:"round_index,omitempty" json:"roundIndex,omitempty"`
}

// RoutineConfig is the declarative form of a circuit. Durations are in seconds,
// a zero Cooldown means none.
type RoutineConfig struct {
	Exercises    []string `yaml:"exercises" json:"exercises"`
	WorkDuration int      `yaml:"work_duration" json:"workDuration"`
	RestDuration int      `yaml:"rest_duration" json:"restDuration"`
	Rounds       int      `yaml:"rounds" json:"rounds"`
	Cooldown     int      `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
}

// BuildSteps flattens the config: an intro, then every exercise of every round
// with rests in between (rounds included), and an optional cooldown. There is no
// rest after the very last work step.
func BuildSteps(cfg RoutineConfig) ([]Step, error) {
	if len(cfg.Exercises) == 0 {
		return nil, fmt.Errorf("%w: no exercises", ErrInvalidConfig)
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, cfg.Rounds)
	}
	if cfg.WorkDuration <= 0 {
		return nil, fmt.Errorf("%w: work duration must be positive, got %d", ErrInvalidConfig, cfg.WorkDuration)
	}
	if cfg.RestDuration < 0 || cfg.Cooldown < 0 {
		return nil, fmt.Errorf("%w: negative rest or cooldown", ErrInvalidConfig)
	}
	for i, exercise := range cfg.Exercises {
		if exercise == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrInvalidConfig, i)
		}
	}

	steps := make([]Step, 0, 2+2*cfg.Rounds*len(cfg.Exercises))
	steps = append(steps, Step{
		Label:    "GET READY",
		Duration: IntroDuration,
		Phase:    PhaseIntro,
	})

	lastRound, lastExercise := cfg.Rounds-1, len(cfg.Exercises)-1
	for round := 0; round < cfg.Rounds; round++ {
		for i, exercise := range cfg.Exercises {
			steps = append(steps, Step{
				Label:         exercise,
				Duration:      cfg.WorkDuration,
				Phase:         PhaseWork,
				ExerciseIndex: intPtr(i),
				RoundIndex:    intPtr(round),
			})

			final := round == lastRound && i == lastExercise
			if cfg.RestDuration == 0 || final {
				continue
			}
			steps = append(steps, Step{
				Label:         "REST",
				Duration:      cfg.RestDuration,
				Phase:         PhaseRest,
				ExerciseIndex: intPtr(i),
				RoundIndex:    intPtr(round),
			})
		}
	}

	if cfg.Cooldown > 0 {
		steps = append(steps, Step{
			Label:    "COOL DOWN",
			Duration: cfg.Cooldown,
			Phase:    PhaseCooldown,
		})
	}

	return steps, nil
}

// ValidateSteps checks a pre-flattened step list.
func ValidateSteps(steps []Step) error {
	if len(steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidConfig)
	}
	for i, step := range steps {
		if step.Duration <= 0 {
			return fmt.Errorf("%w: step %d [%s] duration must be positive", ErrInvalidConfig, i, step.Label)
		}
		if !step.Phase.IsValid() {
			return fmt.Errorf("%w: step %d [%s] unknown phase %q", ErrInvalidConfig, i, step.Label, step.Phase)
		}
	}
	return nil
}

// lastWorkIndex returns the index of the final work step, -1 if there is none.
func lastWorkIndex(steps []Step) int {
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].Phase == PhaseWork {
			return i
		}
	}
	return -1
}

func intPtr(i int) *int {
	return &i
}
