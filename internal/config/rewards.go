package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RewardConfig groups every tunable constant of the reward program: the
// 3-cycle amounts, the token exchange rate, the DAS2 disclosure threshold,
// the rank tier table and the energy simulator rates.
type RewardConfig struct {
	CycleLength      int   `mapstructure:"cycleLength"`
	BaseTokens       int64 `mapstructure:"baseTokens"`
	BonusTokens      int64 `mapstructure:"bonusTokens"`
	BaseCashEuros    int64 `mapstructure:"baseCashEuros"`
	BonusCashEuros   int64 `mapstructure:"bonusCashEuros"`
	TokenValueEuros  int64 `mapstructure:"tokenValueEuros"`
	DAS2EurosCeiling int64 `mapstructure:"das2EurosCeiling"`

	Tiers       []RankTier   `mapstructure:"tiers"`
	EnergyRates []EnergyRate `mapstructure:"energyRates"`
}

// RankTier is one row of the rank table. Thresholds are non-decreasing in
// table order; benefits accumulate across tiers.
type RankTier struct {
	Name      string   `mapstructure:"name"`
	SubTier   string   `mapstructure:"subTier"`
	Threshold int      `mapstructure:"threshold"`
	Benefits  []string `mapstructure:"benefits"`
}

// EnergyRate carries the simulator parameters for one energy type.
type EnergyRate struct {
	Type        string  `mapstructure:"type"`
	Label       string  `mapstructure:"label"`
	Inflation   float64 `mapstructure:"inflation"`
	SavingsRate float64 `mapstructure:"savingsRate"`
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		CycleLength:      3,
		BaseTokens:       1,
		BonusTokens:      3,
		BaseCashEuros:    150,
		BonusCashEuros:   500,
		TokenValueEuros:  150,
		DAS2EurosCeiling: 1200,
		Tiers: []RankTier{
			{Name: "Junior", SubTier: "Bronze", Threshold: 0, Benefits: []string{"Accès App", "Simulateur"}},
			{Name: "Junior", SubTier: "Argent", Threshold: 1, Benefits: []string{"Accès App", "Simulateur"}},
			{Name: "Junior", SubTier: "Or", Threshold: 2, Benefits: []string{"Accès App", "Simulateur", "Accès Club"}},
			{Name: "Initié", SubTier: "Bronze", Threshold: 3, Benefits: []string{"Gains 150€/parrainage", "Club Partenaires"}},
			{Name: "Initié", SubTier: "Argent", Threshold: 5, Benefits: []string{"Gains 150€/parrainage", "Club Partenaires"}},
			{Name: "Initié", SubTier: "Or", Threshold: 7, Benefits: []string{"Gains 150€/parrainage", "Invitations Soirées"}},
			{Name: "Expert", SubTier: "Bronze", Threshold: 10, Benefits: []string{"Bonus Palier 500€", "Badge Expert"}},
			{Name: "Expert", SubTier: "Argent", Threshold: 15, Benefits: []string{"Bonus Palier 500€", "Badge Expert"}},
			{Name: "Expert", SubTier: "Or", Threshold: 20, Benefits: []string{"Bonus Palier 500€", "Billets Match Foot/Basket VIP"}},
			{Name: "Ambassadeur", SubTier: "Bronze", Threshold: 30, Benefits: []string{"Entretien Offert", "Ligne Prioritaire"}},
			{Name: "Ambassadeur", SubTier: "Argent", Threshold: 50, Benefits: []string{"Entretien Offert", "Accès Loges VIP"}},
			{Name: "Ambassadeur", SubTier: "Or", Threshold: 75, Benefits: []string{"Statut Ultime", "Voyages Privés", "Cadeaux Exclusifs"}},
		},
		EnergyRates: []EnergyRate{
			{Type: "ELEC", Label: "Électricité", Inflation: 0.07, SavingsRate: 0.90},
			{Type: "GAZ", Label: "Gaz", Inflation: 0.10, SavingsRate: 0.70},
			{Type: "FIOUL", Label: "Fioul", Inflation: 0.10, SavingsRate: 0.70},
		},
	}
}

// RewardConfigHolder serves the current reward configuration and hot-reloads
// it when the backing file changes. Derivation engines read through Get() so
// a reload takes effect on the next computation.
type RewardConfigHolder struct {
	current atomic.Value // holds RewardConfig
}

func NewRewardConfigHolder() (*RewardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("rewards")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/parrainage/config")
	v.AddConfigPath("/etc/parrainage")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PARRAINAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRewardConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("rewards.cycleLength", defaults.CycleLength)
		v.SetDefault("rewards.baseTokens", defaults.BaseTokens)
		v.SetDefault("rewards.bonusTokens", defaults.BonusTokens)
		v.SetDefault("rewards.baseCashEuros", defaults.BaseCashEuros)
		v.SetDefault("rewards.bonusCashEuros", defaults.BonusCashEuros)
		v.SetDefault("rewards.tokenValueEuros", defaults.TokenValueEuros)
		v.SetDefault("rewards.das2EurosCeiling", defaults.DAS2EurosCeiling)
		v.SetDefault("rewards.tiers", defaults.Tiers)
		v.SetDefault("rewards.energyRates", defaults.EnergyRates)
	}

	var cfg RewardConfig
	if err := v.UnmarshalKey("rewards", &cfg); err != nil {
		return nil, err
	}
	if err := validateRewardConfig(cfg); err != nil {
		return nil, err
	}

	holder := &RewardConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RewardConfig
		if err := v.UnmarshalKey("rewards", &updated); err != nil {
			log.Printf("[reward-config] reload failed: %v", err)
			return
		}
		if err := validateRewardConfig(updated); err != nil {
			log.Printf("[reward-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reward-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *RewardConfigHolder) Get() RewardConfig {
	return h.current.Load().(RewardConfig)
}

// NewStaticRewardConfigHolder wraps a fixed configuration, for tests.
func NewStaticRewardConfigHolder(cfg RewardConfig) *RewardConfigHolder {
	holder := &RewardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateRewardConfig(cfg RewardConfig) error {
	if cfg.CycleLength <= 0 {
		return errors.New("rewards.cycleLength must be positive")
	}
	if len(cfg.Tiers) == 0 {
		return errors.New("rewards.tiers cannot be empty")
	}
	prev := -1
	for _, tier := range cfg.Tiers {
		if tier.Threshold < prev {
			return errors.New("rewards.tiers thresholds must be non-decreasing")
		}
		prev = tier.Threshold
	}
	if len(cfg.EnergyRates) == 0 {
		return errors.New("rewards.energyRates cannot be empty")
	}
	return nil
}
