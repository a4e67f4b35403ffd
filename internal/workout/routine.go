package workout

import (
	"fmt"
)

const DefaultRedirect = "/dashboard"

// Routine is a runnable mission. Either Config or StepList is set.
type Routine struct {
	ID       string         `yaml:"id" json:"id"`
	Name     string         `yaml:"name" json:"name"`
	Category string         `yaml:"category" json:"category"`
	Briefing string         `yaml:"briefing,omitempty" json:"briefing,omitempty"`
	Config   *RoutineConfig `yaml:"config,omitempty" json:"config,omitempty"`
	StepList []Step         `yaml:"steps,omitempty" json:"steps,omitempty"`
	SkipLog  bool           `yaml:"skip_log,omitempty" json:"skipLog,omitempty"`
	Redirect string         `yaml:"redirect,omitempty" json:"redirect,omitempty"`
}

// Steps builds the step list from Config, or validates the pre-flattened StepList.
func (r Routine) Steps() ([]Step, error) {
	switch {
	case r.Config != nil && len(r.StepList) > 0:
		return nil, fmt.Errorf("routine %s: %w: both config and steps set", r.ID, ErrInvalidConfig)
	case r.Config != nil:
		steps, err := BuildSteps(*r.Config)
		if err != nil {
			return nil, fmt.Errorf("routine %s: %w", r.ID, err)
		}
		return steps, nil
	default:
		if err := ValidateSteps(r.StepList); err != nil {
			return nil, fmt.Errorf("routine %s: %w", r.ID, err)
		}
		steps := make([]Step, len(r.StepList))
		copy(steps, r.StepList)
		return steps, nil
	}
}

func (r Routine) RedirectPath() string {
	if r.Redirect == "" {
		return DefaultRedirect
	}
	return r.Redirect
}

// TotalDuration is the sum of all step durations, in seconds.
func TotalDuration(steps []Step) int {
	total := 0
	for _, s := range steps {
		total += s.Duration
	}
	return total
}
