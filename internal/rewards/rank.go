package rewards

import "github.com/freeenergie/parrainage/internal/config"

// RankEvaluation is the rank engine output for one sponsor.
type RankEvaluation struct {
	DirectInstalls  int              `json:"direct_installs"`
	NetworkInstalls int              `json:"network_installs"`
	TotalVolume     int              `json:"total_volume"`
	Current         config.RankTier  `json:"current"`
	Next            *config.RankTier `json:"next,omitempty"`
	MaxReached      bool             `json:"max_reached"`
	ProgressPercent float64          `json:"progress_percent"`
	InstallsNeeded  int              `json:"installs_needed"`
	// UnlockedBenefits is the deduplicated union of benefits at or below the
	// current tier, in first-seen table order. LockedBenefits previews the
	// next tier's benefits not yet unlocked.
	UnlockedBenefits []string `json:"unlocked_benefits"`
	LockedBenefits   []string `json:"locked_benefits"`
}

// EvaluateRank classifies a sponsor against the tier table. The current tier
// is the highest-threshold entry whose threshold is <= totalVolume (inclusive
// lower bound). The top tier has no next: progress is pinned at 100 with no
// division performed.
func EvaluateRank(cfg config.RewardConfig, directInstalls, networkInstalls int) RankEvaluation {
	tiers := cfg.Tiers
	totalVolume := directInstalls + networkInstalls

	currentIdx := 0
	for i := len(tiers) - 1; i >= 0; i-- {
		if totalVolume >= tiers[i].Threshold {
			currentIdx = i
			break
		}
	}
	current := tiers[currentIdx]

	eval := RankEvaluation{
		DirectInstalls:  directInstalls,
		NetworkInstalls: networkInstalls,
		TotalVolume:     totalVolume,
		Current:         current,
		MaxReached:      currentIdx == len(tiers)-1,
		ProgressPercent: 100,
	}

	if !eval.MaxReached {
		next := tiers[currentIdx+1]
		eval.Next = &next

		rng := next.Threshold - current.Threshold
		if rng > 0 {
			eval.ProgressPercent = float64(totalVolume-current.Threshold) / float64(rng) * 100
		}
		eval.InstallsNeeded = next.Threshold - totalVolume
	}

	eval.UnlockedBenefits = unlockedBenefits(tiers, current.Threshold)
	if eval.Next != nil {
		eval.LockedBenefits = lockedBenefits(current, *eval.Next)
	}

	return eval
}

func unlockedBenefits(tiers []config.RankTier, threshold int) []string {
	seen := make(map[string]struct{})
	benefits := make([]string, 0)
	for _, tier := range tiers {
		if tier.Threshold > threshold {
			continue
		}
		for _, benefit := range tier.Benefits {
			if _, ok := seen[benefit]; ok {
				continue
			}
			seen[benefit] = struct{}{}
			benefits = append(benefits, benefit)
		}
	}
	return benefits
}

func lockedBenefits(current, next config.RankTier) []string {
	owned := make(map[string]struct{}, len(current.Benefits))
	for _, benefit := range current.Benefits {
		owned[benefit] = struct{}{}
	}
	locked := make([]string, 0)
	for _, benefit := range next.Benefits {
		if _, ok := owned[benefit]; ok {
			continue
		}
		locked = append(locked, benefit)
	}
	return locked
}
