// Package rewards holds the pure derivation rules of the referral program:
// the repeating 3-cycle reward pattern (tokens and cash), the rank tier
// evaluation and the cash-bonus cycle progress. Every function here is a
// pure projection over its inputs; nothing in this package touches storage.
package rewards

import (
	"sort"
	"time"

	"github.com/freeenergie/parrainage/internal/config"
)

// CycleRule is the repeating reward pattern: every Length-th qualifying
// install (by chronological position) yields Bonus, the others yield Base.
type CycleRule struct {
	Length int
	Base   int64
	Bonus  int64
}

// TokenRule builds the token accrual rule from configuration.
func TokenRule(cfg config.RewardConfig) CycleRule {
	return CycleRule{Length: cfg.CycleLength, Base: cfg.BaseTokens, Bonus: cfg.BonusTokens}
}

// CashRule builds the cash earnings rule from configuration.
func CashRule(cfg config.RewardConfig) CycleRule {
	return CycleRule{Length: cfg.CycleLength, Base: cfg.BaseCashEuros, Bonus: cfg.BonusCashEuros}
}

// Amount returns the reward for the install at 1-based position p.
func (r CycleRule) Amount(p int) int64 {
	if r.Length > 0 && p%r.Length == 0 {
		return r.Bonus
	}
	return r.Base
}

// Fold sorts the install dates ascending (stable, so ties keep insertion
// order) and folds the cycle rule over the 1-based positions.
func (r CycleRule) Fold(installDates []time.Time) int64 {
	dates := make([]time.Time, len(installDates))
	copy(dates, installDates)
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	var total int64
	for i := range dates {
		total += r.Amount(i + 1)
	}
	return total
}

// TokenBalance derives a sponsor's token balance: the token rule folded over
// the installed referral dates, plus manually granted bonus tokens. The
// balance is a pure projection; it is never stored, so there is no stored
// value to diff against and no recomputation feedback loop.
func TokenBalance(cfg config.RewardConfig, installDates []time.Time, bonusTokens int64) int64 {
	return TokenRule(cfg).Fold(installDates) + bonusTokens
}

// CashEarnings derives cumulative cash earnings for one sponsor from the
// dates of their installed referrals.
func CashEarnings(cfg config.RewardConfig, installDates []time.Time) int64 {
	return CashRule(cfg).Fold(installDates)
}

// CycleProgress reports where a sponsor stands inside the current cash-bonus
// cycle. StepsToBonus == Length means a cycle has just completed.
type CycleProgress struct {
	PositionInCycle int `json:"position_in_cycle"`
	StepsToBonus    int `json:"steps_to_bonus"`
	CycleLength     int `json:"cycle_length"`
}

func ProgressInCycle(cfg config.RewardConfig, directInstalls int) CycleProgress {
	length := cfg.CycleLength
	if length <= 0 {
		length = 3
	}
	position := directInstalls % length
	return CycleProgress{
		PositionInCycle: position,
		StepsToBonus:    length - position,
		CycleLength:     length,
	}
}
