package hardware_test

import (
	"encoding/json"
	"testing"

	"github.com/2beens/operatorprotocol/internal/hardware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected hardware.Tier
	}{
		{"CLASSIC", hardware.TierClassic},
		{"color", hardware.TierColor},
		{" Gold ", hardware.TierGold},
		{"STORM", hardware.TierStorm},
	} {
		tier, err := hardware.ParseTier(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected, tier)
	}

	_, err := hardware.ParseTier("PLATINUM")
	assert.ErrorIs(t, err, hardware.ErrUnknownTier)
	_, err = hardware.ParseTier("")
	assert.ErrorIs(t, err, hardware.ErrUnknownTier)
}

func TestTier_JSON(t *testing.T) {
	type view struct {
		Current  hardware.Tier   `json:"current"`
		Unlocked []hardware.Tier `json:"unlocked"`
	}

	viewJson, err := json.Marshal(view{
		Current:  hardware.TierGold,
		Unlocked: []hardware.Tier{hardware.TierClassic, hardware.TierGold},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":"GOLD","unlocked":["CLASSIC","GOLD"]}`, string(viewJson))

	var v view
	require.NoError(t, json.Unmarshal([]byte(`{"current":"STORM","unlocked":["CLASSIC"]}`), &v))
	assert.Equal(t, hardware.TierStorm, v.Current)

	assert.Error(t, json.Unmarshal([]byte(`{"current":"NEON"}`), &v))

	_, err = json.Marshal(view{Current: hardware.Tier(9)})
	assert.Error(t, err)
}

func TestUnlockedTiers(t *testing.T) {
	for _, tc := range []struct {
		streak      int
		gbcUnlocked bool
		expected    []hardware.Tier
	}{
		{0, false, []hardware.Tier{hardware.TierClassic}},
		{1, false, []hardware.Tier{hardware.TierClassic}},
		{1, true, []hardware.Tier{hardware.TierClassic, hardware.TierColor}},
		{2, false, []hardware.Tier{hardware.TierClassic, hardware.TierGold}},
		{4, true, []hardware.Tier{hardware.TierClassic, hardware.TierColor, hardware.TierGold}},
		{5, true, []hardware.Tier{hardware.TierClassic, hardware.TierColor, hardware.TierGold, hardware.TierStorm}},
	} {
		assert.Equal(t, tc.expected, hardware.UnlockedTiers(tc.streak, tc.gbcUnlocked), "streak %d gbc %t", tc.streak, tc.gbcUnlocked)
	}
}

func TestTier_RequiredStreak(t *testing.T) {
	assert.Equal(t, 0, hardware.TierClassic.RequiredStreak())
	assert.Equal(t, 1, hardware.TierColor.RequiredStreak())
	assert.Equal(t, 2, hardware.TierGold.RequiredStreak())
	assert.Equal(t, 5, hardware.TierStorm.RequiredStreak())
}
