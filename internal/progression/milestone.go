package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/operatorprotocol/internal/calendar"
)

// Achievement can be one of:
//   - GBC_UNLOCK
//   - GOLD_UNLOCK
//   - LIGHTNING_UNLOCK
//   - GOLD_STATUS
type Achievement string

const (
	AchievementGBCUnlock       Achievement = "GBC_UNLOCK"
	AchievementGoldUnlock      Achievement = "GOLD_UNLOCK"
	AchievementLightningUnlock Achievement = "LIGHTNING_UNLOCK"
	AchievementGoldStatus      Achievement = "GOLD_STATUS"
)

func (a Achievement) String() string {
	return string(a)
}

// Milestone is one entry of the append-only achievement log.
type Milestone struct {
	Date        time.Time       `json:"date"`
	Achievement Achievement     `json:"achievement"`
	Status      string          `json:"status"`
	WeekID      calendar.WeekID `json:"weekId"`
}

func unlockStatus(a Achievement) string {
	switch a {
	case AchievementGBCUnlock:
		return "COLOR HARDWARE ONLINE"
	case AchievementGoldUnlock:
		return "GOLD HARDWARE ONLINE"
	case AchievementLightningUnlock:
		return "STORM HARDWARE ONLINE"
	default:
		return string(a)
	}
}

func goldStatus(streak int) string {
	return fmt.Sprintf("GOLD STATUS: %d WEEK STREAK", streak)
}

// appendMilestone adds the milestone unless one with the same week and achievement
// is already logged. Returns true if it was appended.
func (s *ProgressionStore) appendMilestone(ctx context.Context, m Milestone) (bool, error) {
	milestones, err := s.Milestones(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range milestones {
		if existing.WeekID == m.WeekID && existing.Achievement == m.Achievement {
			return false, nil
		}
	}
	milestones = append(milestones, m)
	if err := s.SetMilestones(ctx, milestones); err != nil {
		return false, err
	}
	return true, nil
}
