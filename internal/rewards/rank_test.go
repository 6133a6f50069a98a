package rewards

import (
	"testing"

	"github.com/freeenergie/parrainage/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierIndex(cfg config.RewardConfig, eval RankEvaluation) int {
	for i, tier := range cfg.Tiers {
		if tier.Name == eval.Current.Name && tier.SubTier == eval.Current.SubTier {
			return i
		}
	}
	return -1
}

func TestEvaluateRank_InclusiveThresholds(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	cases := []struct {
		volume      int
		wantName    string
		wantSubTier string
	}{
		{0, "Junior", "Bronze"},
		{1, "Junior", "Argent"},
		{2, "Junior", "Or"},
		{3, "Initié", "Bronze"}, // exactly at threshold classifies at that tier
		{4, "Initié", "Bronze"},
		{5, "Initié", "Argent"},
		{7, "Initié", "Or"},
		{10, "Expert", "Bronze"},
		{20, "Expert", "Or"},
		{30, "Ambassadeur", "Bronze"},
		{74, "Ambassadeur", "Argent"},
		{75, "Ambassadeur", "Or"},
		{200, "Ambassadeur", "Or"},
	}

	for _, tc := range cases {
		eval := EvaluateRank(cfg, tc.volume, 0)
		assert.Equal(t, tc.wantName, eval.Current.Name, "volume=%d", tc.volume)
		assert.Equal(t, tc.wantSubTier, eval.Current.SubTier, "volume=%d", tc.volume)
	}
}

func TestEvaluateRank_Monotonic(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	prev := -1
	for volume := 0; volume <= 100; volume++ {
		idx := tierIndex(cfg, EvaluateRank(cfg, volume, 0))
		require.GreaterOrEqual(t, idx, prev, "volume=%d", volume)
		prev = idx
	}
}

func TestEvaluateRank_NetworkVolumeCounts(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	eval := EvaluateRank(cfg, 2, 8)
	assert.Equal(t, 10, eval.TotalVolume)
	assert.Equal(t, "Expert", eval.Current.Name)
	assert.Equal(t, "Bronze", eval.Current.SubTier)
}

func TestEvaluateRank_Progress(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	// Between Initié Or (7) and Expert Bronze (10): 8 is a third of the way.
	eval := EvaluateRank(cfg, 8, 0)
	require.NotNil(t, eval.Next)
	assert.Equal(t, "Expert", eval.Next.Name)
	assert.InDelta(t, 100.0/3.0, eval.ProgressPercent, 0.001)
	assert.Equal(t, 2, eval.InstallsNeeded)
}

func TestEvaluateRank_TopTierHasNoNext(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	eval := EvaluateRank(cfg, 80, 0)
	assert.True(t, eval.MaxReached)
	assert.Nil(t, eval.Next)
	assert.Equal(t, float64(100), eval.ProgressPercent)
	assert.Equal(t, 0, eval.InstallsNeeded)
}

func TestEvaluateRank_BenefitsAccumulateDeduplicated(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	eval := EvaluateRank(cfg, 3, 0)
	// Junior benefits plus Initié Bronze, "Accès App"/"Simulateur" only once.
	assert.Equal(t, []string{
		"Accès App",
		"Simulateur",
		"Accès Club",
		"Gains 150€/parrainage",
		"Club Partenaires",
	}, eval.UnlockedBenefits)
}

func TestEvaluateRank_LockedPreview(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	eval := EvaluateRank(cfg, 7, 0)
	require.NotNil(t, eval.Next)
	assert.Equal(t, []string{"Bonus Palier 500€", "Badge Expert"}, eval.LockedBenefits)

	// Next tier sharing all benefits with the current one locks nothing.
	evalSame := EvaluateRank(cfg, 0, 0)
	require.NotNil(t, evalSame.Next)
	assert.Empty(t, evalSame.LockedBenefits)
}
