package rewards

import (
	"testing"
	"time"

	"github.com/freeenergie/parrainage/internal/config"
	"github.com/stretchr/testify/assert"
)

func day(offset int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func dates(n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, day(i))
	}
	return out
}

func TestTokenBalance_CycleSums(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	// floor(N/3)*3 + (N mod 3): each full cycle of 3 contributes exactly 3.
	cases := []struct {
		installs int
		want     int64
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{5, 5},
		{6, 6},
		{7, 7},
		{10, 10},
	}

	for _, tc := range cases {
		got := TokenBalance(cfg, dates(tc.installs), 0)
		assert.Equal(t, tc.want, got, "installs=%d", tc.installs)
	}
}

func TestTokenBalance_BonusTokensOnly(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	assert.Equal(t, int64(4), TokenBalance(cfg, nil, 4))
	assert.Equal(t, int64(0), TokenBalance(cfg, nil, 0))
}

func TestCashEarnings_CycleSums(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	cases := []struct {
		installs int
		want     int64
	}{
		{0, 0},
		{1, 150},
		{2, 300},
		{3, 800},  // 150+150+500
		{4, 950},  // a 4th install adds another 150
		{5, 1100}, // still under the DAS2 ceiling
		{6, 1600}, // positions 3 and 6 pay 500 each
	}

	for _, tc := range cases {
		got := CashEarnings(cfg, dates(tc.installs))
		assert.Equal(t, tc.want, got, "installs=%d", tc.installs)
	}
}

func TestCashEarnings_DAS2FirstCrossingAtSixth(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	assert.LessOrEqual(t, CashEarnings(cfg, dates(5)), cfg.DAS2EurosCeiling)
	assert.Greater(t, CashEarnings(cfg, dates(6)), cfg.DAS2EurosCeiling)
}

func TestFold_OrderInsensitiveTotals(t *testing.T) {
	cfg := config.DefaultRewardConfig()
	rule := CashRule(cfg)

	shuffled := []time.Time{day(4), day(0), day(2), day(3), day(1), day(5)}
	assert.Equal(t, rule.Fold(dates(6)), rule.Fold(shuffled))
}

func TestFold_StableOnEqualDates(t *testing.T) {
	cfg := config.DefaultRewardConfig()
	rule := TokenRule(cfg)

	// Ties on dateCreated keep insertion order; the total is unaffected.
	same := []time.Time{day(0), day(0), day(0)}
	assert.Equal(t, int64(3), rule.Fold(same))
}

func TestProgressInCycle(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	cases := []struct {
		installs     int
		wantPosition int
		wantSteps    int
	}{
		{0, 0, 3}, // no install yet: full cycle ahead
		{1, 1, 2},
		{2, 2, 1},
		{3, 0, 3}, // cycle just completed
		{4, 1, 2},
	}

	for _, tc := range cases {
		got := ProgressInCycle(cfg, tc.installs)
		assert.Equal(t, tc.wantPosition, got.PositionInCycle, "installs=%d", tc.installs)
		assert.Equal(t, tc.wantSteps, got.StepsToBonus, "installs=%d", tc.installs)
	}
}
