package simulator

import (
	"testing"

	"github.com/freeenergie/parrainage/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Electricity(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	p, err := Project(cfg, Input{EnergyType: "ELEC", MonthlyBillEuro: 150})
	require.NoError(t, err)

	// 150*12 = 1800 yearly, 90% eliminated.
	assert.Equal(t, int64(1620), p.FirstYearSavings)
	assert.Equal(t, "Électricité", p.Label)
	assert.Equal(t, 0.07, p.InflationRate)
	assert.Len(t, p.YearlySavings, 10)
	assert.Equal(t, int64(1620), p.YearlySavings[0])

	// Compound 7% inflation: sum of 1620 * 1.07^i for i in [0,10).
	expected := 0.0
	year := 1620.0
	for i := 0; i < 10; i++ {
		expected += year
		year *= 1.07
	}
	assert.InDelta(t, expected, float64(p.TenYearSavings), 1)
}

func TestProject_GasAndFuelShareRates(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	gas, err := Project(cfg, Input{EnergyType: "GAZ", MonthlyBillEuro: 200})
	require.NoError(t, err)
	fuel, err := Project(cfg, Input{EnergyType: "FIOUL", MonthlyBillEuro: 200})
	require.NoError(t, err)

	assert.Equal(t, int64(1680), gas.FirstYearSavings) // 200*12*0.70
	assert.Equal(t, gas.FirstYearSavings, fuel.FirstYearSavings)
	assert.Equal(t, gas.TenYearSavings, fuel.TenYearSavings)
}

func TestProject_EnergyTypeCaseInsensitive(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	p, err := Project(cfg, Input{EnergyType: "elec", MonthlyBillEuro: 100})
	require.NoError(t, err)
	assert.Equal(t, "ELEC", p.EnergyType)
}

func TestProject_Errors(t *testing.T) {
	cfg := config.DefaultRewardConfig()

	_, err := Project(cfg, Input{EnergyType: "CHARBON", MonthlyBillEuro: 100})
	assert.ErrorIs(t, err, ErrUnknownEnergyType)

	_, err = Project(cfg, Input{EnergyType: "ELEC", MonthlyBillEuro: 0})
	assert.Error(t, err)
}
