package hardware

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTier = errors.New("unknown hardware tier")

// Tier is the visual hardware palette, ordered by unlock difficulty.
type Tier int

const (
	TierClassic Tier = iota
	TierColor
	TierGold
	TierStorm
)

var allTiers = []Tier{TierClassic, TierColor, TierGold, TierStorm}

var tierNames = map[Tier]string{
	TierClassic: "CLASSIC",
	TierColor:   "COLOR",
	TierGold:    "GOLD",
	TierStorm:   "STORM",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// RequiredStreak is the weekly streak that unlocks the tier. COLOR is unlocked
// by the first reveal, which a one week streak triggers.
func (t Tier) RequiredStreak() int {
	switch t {
	case TierColor:
		return 1
	case TierGold:
		return 2
	case TierStorm:
		return 5
	default:
		return 0
	}
}

func ParseTier(s string) (Tier, error) {
	for _, t := range allTiers {
		if strings.EqualFold(tierNames[t], strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return TierClassic, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnlockedTiers derives the unlocked set in display order. CLASSIC is always in it.
func UnlockedTiers(streak int, gbcUnlocked bool) []Tier {
	unlocked := []Tier{TierClassic}
	if gbcUnlocked {
		unlocked = append(unlocked, TierColor)
	}
	if streak >= TierGold.RequiredStreak() {
		unlocked = append(unlocked, TierGold)
	}
	if streak >= TierStorm.RequiredStreak() {
		unlocked = append(unlocked, TierStorm)
	}
	return unlocked
}

func contains(tiers []Tier, t Tier) bool {
	for _, candidate := range tiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// demote returns the highest unlocked tier not above current.
func demote(current Tier, unlocked []Tier) Tier {
	best := TierClassic
	for _, t := range unlocked {
		if t <= current && t > best {
			best = t
		}
	}
	return best
}
