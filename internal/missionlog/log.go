package missionlog

import (
	"errors"
	"time"

	"github.com/2beens/operatorprotocol/internal/calendar"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation error")
)

// Category can be one of:
//   - strength
//   - run
//   - surf
//   - yoga
//   - breathwork
//   - mobility
type Category string

const (
	CategoryStrength   Category = "strength"
	CategoryRun        Category = "run"
	CategorySurf       Category = "surf"
	CategoryYoga       Category = "yoga"
	CategoryBreathwork Category = "breathwork"
	CategoryMobility   Category = "mobility"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryStrength,
		CategoryRun,
		CategorySurf,
		CategoryYoga,
		CategoryBreathwork,
		CategoryMobility:
		return true
	default:
		return false
	}
}

// Log is one completed mission of an operator.
type Log struct {
	ID        int               `json:"id"`
	UserID    int               `json:"userId"`
	Category  Category          `json:"category"`
	Date      time.Time         `json:"date"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
}

type NewLog struct {
	Category Category          `json:"category"`
	Date     time.Time         `json:"date"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WeeklyStats feeds the streak engine: HabitsByDay maps yyyy-mm-dd to the
// categories logged that day, in log order.
type WeeklyStats struct {
	WeekID        calendar.WeekID       `json:"weekId"`
	StrengthCount int                   `json:"strengthCount"`
	RunCount      int                   `json:"runCount"`
	HabitsByDay   map[string][]Category `json:"habitsByDay"`
}
