package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/kvstore"

	log "github.com/sirupsen/logrus"
)

// durable keys
const (
	keyStreakCount        = "streak_count"
	keyStreakLastWeek     = "streak_last_week"
	keyStreakCelebrated   = "streak_celebrated_week"
	keyMasteryCount       = "mastery_count"
	keyMilestones         = "milestones"
	keyGBCUnlocked        = "gbc_unlocked"
	keyGBCAnnounced       = "gbc_announced"
	keyLightningUnlocked  = "lightning_unlocked"
	keyLightningAnnounced = "lightning_announced"
	keyHardwareTier       = "hardware_tier"
)

// session keys
const (
	keySessionGoldAnnounced      = "gold_announced"
	keySessionLightningAnnounced = "lightning_announced"
)

const trueValue = "true"

func DurablePrefix(userID int) string {
	return fmt.Sprintf("protocol:%d:", userID)
}

func SessionPrefix(sessionToken string) string {
	return "session:" + sessionToken + ":"
}

type StreakState struct {
	Count             int
	LastCompletedWeek calendar.WeekID // empty when absent
	CelebratedWeek    calendar.WeekID // empty when absent
}

type EvolutionFlags struct {
	GBCUnlocked        bool
	GBCAnnounced       bool
	LightningUnlocked  bool
	LightningAnnounced bool

	GoldAnnouncedThisSession      bool
	LightningAnnouncedThisSession bool
}

// ProgressionStore owns every persisted progression value of one operator, as seen
// from one session. Absent or corrupt values read as zero, false or empty.
type ProgressionStore struct {
	kv            kvstore.Store
	durablePrefix string
	sessionPrefix string
}

func NewProgressionStore(kv kvstore.Store, userID int, sessionToken string) *ProgressionStore {
	return &ProgressionStore{
		kv:            kv,
		durablePrefix: DurablePrefix(userID),
		sessionPrefix: SessionPrefix(sessionToken) + DurablePrefix(userID),
	}
}

func (s *ProgressionStore) StreakState(ctx context.Context) (StreakState, error) {
	count, err := s.readInt(ctx, keyStreakCount)
	if err != nil {
		return StreakState{}, err
	}
	lastWeek, err := s.readWeek(ctx, keyStreakLastWeek)
	if err != nil {
		return StreakState{}, err
	}
	celebrated, err := s.readWeek(ctx, keyStreakCelebrated)
	if err != nil {
		return StreakState{}, err
	}
	return StreakState{
		Count:             count,
		LastCompletedWeek: lastWeek,
		CelebratedWeek:    celebrated,
	}, nil
}

func (s *ProgressionStore) SetStreakState(ctx context.Context, state StreakState) error {
	if err := s.kv.SetDurable(ctx, s.durableKey(keyStreakCount), strconv.Itoa(state.Count)); err != nil {
		return err
	}
	if err := s.writeWeek(ctx, keyStreakLastWeek, state.LastCompletedWeek); err != nil {
		return err
	}
	return s.writeWeek(ctx, keyStreakCelebrated, state.CelebratedWeek)
}

func (s *ProgressionStore) Mastery(ctx context.Context) (int, error) {
	return s.readInt(ctx, keyMasteryCount)
}

func (s *ProgressionStore) SetMastery(ctx context.Context, mastery int) error {
	return s.kv.SetDurable(ctx, s.durableKey(keyMasteryCount), strconv.Itoa(mastery))
}

func (s *ProgressionStore) Milestones(ctx context.Context) ([]Milestone, error) {
	raw, ok, err := s.kv.GetDurable(ctx, s.durableKey(keyMilestones))
	if err != nil {
		return nil, err
	}
	milestones := make([]Milestone, 0)
	if !ok {
		return milestones, nil
	}
	if err := json.Unmarshal([]byte(raw), &milestones); err != nil {
		log.Debugf("progression store [%s]: corrupt milestones, reading as empty: %s", s.durablePrefix, err)
		return make([]Milestone, 0), nil
	}
	return milestones, nil
}

func (s *ProgressionStore) SetMilestones(ctx context.Context, milestones []Milestone) error {
	milestonesJson, err := json.Marshal(milestones)
	if err != nil {
		return fmt.Errorf("marshal milestones: %w", err)
	}
	return s.kv.SetDurable(ctx, s.durableKey(keyMilestones), string(milestonesJson))
}

func (s *ProgressionStore) EvolutionFlags(ctx context.Context) (EvolutionFlags, error) {
	var (
		flags EvolutionFlags
		err   error
	)
	if flags.GBCUnlocked, err = s.readBool(ctx, keyGBCUnlocked); err != nil {
		return EvolutionFlags{}, err
	}
	if flags.GBCAnnounced, err = s.readBool(ctx, keyGBCAnnounced); err != nil {
		return EvolutionFlags{}, err
	}
	if flags.LightningUnlocked, err = s.readBool(ctx, keyLightningUnlocked); err != nil {
		return EvolutionFlags{}, err
	}
	if flags.LightningAnnounced, err = s.readBool(ctx, keyLightningAnnounced); err != nil {
		return EvolutionFlags{}, err
	}
	if flags.GoldAnnouncedThisSession, err = s.readSessionBool(ctx, keySessionGoldAnnounced); err != nil {
		return EvolutionFlags{}, err
	}
	if flags.LightningAnnouncedThisSession, err = s.readSessionBool(ctx, keySessionLightningAnnounced); err != nil {
		return EvolutionFlags{}, err
	}
	return flags, nil
}

func (s *ProgressionStore) GBCUnlocked(ctx context.Context) (bool, error) {
	return s.readBool(ctx, keyGBCUnlocked)
}

func (s *ProgressionStore) LightningUnlocked(ctx context.Context) (bool, error) {
	return s.readBool(ctx, keyLightningUnlocked)
}

func (s *ProgressionStore) HardwareTier(ctx context.Context) (string, bool, error) {
	return s.kv.GetDurable(ctx, s.durableKey(keyHardwareTier))
}

func (s *ProgressionStore) SetHardwareTier(ctx context.Context, tier string) error {
	return s.kv.SetDurable(ctx, s.durableKey(keyHardwareTier), tier)
}

// Wipe drops every durable value of the operator plus this session's flags.
func (s *ProgressionStore) Wipe(ctx context.Context) error {
	if err := s.kv.ClearAllNamespaced(ctx, s.durablePrefix); err != nil {
		return err
	}
	return s.kv.ClearSession(ctx, s.sessionPrefix)
}

func (s *ProgressionStore) setDurableFlag(ctx context.Context, key string) error {
	return s.kv.SetDurable(ctx, s.durableKey(key), trueValue)
}

func (s *ProgressionStore) setSessionFlag(ctx context.Context, key string) error {
	return s.kv.SetSession(ctx, s.sessionKey(key), trueValue)
}

func (s *ProgressionStore) readInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := s.kv.GetDurable(ctx, s.durableKey(key))
	if err != nil || !ok {
		return 0, err
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		log.Debugf("progression store [%s]: corrupt int %s=%q, reading as 0", s.durablePrefix, key, raw)
		return 0, nil
	}
	return val, nil
}

func (s *ProgressionStore) readBool(ctx context.Context, key string) (bool, error) {
	raw, _, err := s.kv.GetDurable(ctx, s.durableKey(key))
	if err != nil {
		return false, err
	}
	return raw == trueValue, nil
}

func (s *ProgressionStore) readSessionBool(ctx context.Context, key string) (bool, error) {
	raw, _, err := s.kv.GetSession(ctx, s.sessionKey(key))
	if err != nil {
		return false, err
	}
	return raw == trueValue, nil
}

func (s *ProgressionStore) readWeek(ctx context.Context, key string) (calendar.WeekID, error) {
	raw, ok, err := s.kv.GetDurable(ctx, s.durableKey(key))
	if err != nil || !ok {
		return "", err
	}
	week, err := calendar.ParseWeekID(raw)
	if err != nil {
		log.Debugf("progression store [%s]: corrupt week %s=%q, reading as absent", s.durablePrefix, key, raw)
		return "", nil
	}
	return week, nil
}

func (s *ProgressionStore) writeWeek(ctx context.Context, key string, week calendar.WeekID) error {
	if week == "" {
		return s.kv.RemoveDurable(ctx, s.durableKey(key))
	}
	return s.kv.SetDurable(ctx, s.durableKey(key), week.String())
}

func (s *ProgressionStore) durableKey(key string) string {
	return s.durablePrefix + key
}

func (s *ProgressionStore) sessionKey(key string) string {
	return s.sessionPrefix + key
}
