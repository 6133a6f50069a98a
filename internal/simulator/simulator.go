// Package simulator projects household energy savings for the in-app
// simulator: the first-year figure at the configured savings rate and a
// ten-year cumulative total with compound inflation.
package simulator

import (
	"errors"
	"math"
	"strings"

	"github.com/freeenergie/parrainage/internal/config"
)

const projectionYears = 10

var ErrUnknownEnergyType = errors.New("simulator: unknown energy type")

// Input is one simulation request.
type Input struct {
	EnergyType      string  `json:"energy_type" binding:"required"`
	MonthlyBillEuro float64 `json:"monthly_bill_euro" binding:"required,gt=0"`
}

// Projection is the simulator output for one energy type and bill.
type Projection struct {
	EnergyType          string  `json:"energy_type"`
	Label               string  `json:"label"`
	MonthlyBillEuro     float64 `json:"monthly_bill_euro"`
	InflationRate       float64 `json:"inflation_rate"`
	SavingsRate         float64 `json:"savings_rate"`
	FirstYearSavings    int64   `json:"first_year_savings_euro"`
	TenYearSavings      int64   `json:"ten_year_savings_euro"`
	ProjectionYears     int     `json:"projection_years"`
	YearlySavings       []int64 `json:"yearly_savings_euro"`
}

// Project computes the savings projection. The yearly bill grows by the
// compound inflation rate; each year's savings is that year's bill times the
// savings rate. Rounding happens on the reported figures only, never inside
// the accumulation.
func Project(cfg config.RewardConfig, in Input) (Projection, error) {
	rate, err := rateFor(cfg, in.EnergyType)
	if err != nil {
		return Projection{}, err
	}
	if in.MonthlyBillEuro <= 0 {
		return Projection{}, errors.New("simulator: monthly bill must be positive")
	}

	yearlyBill := in.MonthlyBillEuro * 12

	var total float64
	yearly := make([]int64, 0, projectionYears)
	projected := yearlyBill
	for i := 0; i < projectionYears; i++ {
		savings := projected * rate.SavingsRate
		total += savings
		yearly = append(yearly, int64(math.Round(savings)))
		projected *= 1 + rate.Inflation
	}

	return Projection{
		EnergyType:       rate.Type,
		Label:            rate.Label,
		MonthlyBillEuro:  in.MonthlyBillEuro,
		InflationRate:    rate.Inflation,
		SavingsRate:      rate.SavingsRate,
		FirstYearSavings: int64(math.Round(yearlyBill * rate.SavingsRate)),
		TenYearSavings:   int64(math.Round(total)),
		ProjectionYears:  projectionYears,
		YearlySavings:    yearly,
	}, nil
}

func rateFor(cfg config.RewardConfig, energyType string) (config.EnergyRate, error) {
	for _, rate := range cfg.EnergyRates {
		if strings.EqualFold(rate.Type, energyType) {
			return rate, nil
		}
	}
	return config.EnergyRate{}, ErrUnknownEnergyType
}
