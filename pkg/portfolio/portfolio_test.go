package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocations_SumToHundred(t *testing.T) {
	for _, p := range Profiles() {
		a := AllocationFor(p)
		assert.Equal(t, 100, a.MoneyMarket+a.Bond+a.Equity, "profile %s", p)
	}
}

func TestAllocationFor(t *testing.T) {
	testCases := []struct {
		profile  Profile
		expected Allocation
	}{
		{ProfileConservative, Allocation{MoneyMarket: 50, Bond: 40, Equity: 10}},
		{ProfileCautious, Allocation{MoneyMarket: 20, Bond: 50, Equity: 30}},
		{ProfileBalanced, Allocation{MoneyMarket: 10, Bond: 40, Equity: 50}},
		{ProfileGrowth, Allocation{MoneyMarket: 5, Bond: 25, Equity: 70}},
		{ProfileAggressive, Allocation{MoneyMarket: 0, Bond: 10, Equity: 90}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.profile), func(t *testing.T) {
			assert.Equal(t, tc.expected, AllocationFor(tc.profile))
		})
	}
}

func TestAllocationFor_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, AllocationFor(DefaultProfile), AllocationFor(Profile("daredevil")))
	assert.False(t, Profile("daredevil").Valid())
	assert.True(t, ProfileBalanced.Valid())
}

func TestProfiles_Order(t *testing.T) {
	got := Profiles()
	require.Len(t, got, 5)
	assert.Equal(t, ProfileConservative, got[0])
	assert.Equal(t, ProfileAggressive, got[4])
}

func TestPlanFor(t *testing.T) {
	plan, err := PlanFor(ProfileCautious, decimal.NewFromInt(500000))
	require.NoError(t, err)

	assert.Equal(t, ProfileCautious, plan.Profile)
	require.Len(t, plan.Lines, 3)

	assert.Equal(t, ClassMoneyMarket, plan.Lines[0].Class)
	assert.Equal(t, 20, plan.Lines[0].Percent)
	assert.True(t, plan.Lines[0].Amount.Equal(decimal.NewFromInt(100000)),
		"money market = %s", plan.Lines[0].Amount)

	assert.Equal(t, ClassBond, plan.Lines[1].Class)
	assert.True(t, plan.Lines[1].Amount.Equal(decimal.NewFromInt(250000)))

	assert.Equal(t, ClassEquity, plan.Lines[2].Class)
	assert.True(t, plan.Lines[2].Amount.Equal(decimal.NewFromInt(150000)))

	assert.Contains(t, plan.Display, "500,000.00")
	assert.NotEmpty(t, plan.Strategy)
	assert.NotEmpty(t, plan.RiskNotes)
}

func TestPlanFor_LinesSumToTotal(t *testing.T) {
	// An amount whose percentage slices do not round cleanly.
	total := decimal.RequireFromString("100.01")

	for _, p := range Profiles() {
		plan, err := PlanFor(p, total)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, line := range plan.Lines {
			sum = sum.Add(line.Amount)
		}
		assert.True(t, sum.Equal(total), "profile %s: lines sum to %s", p, sum)
	}
}

func TestPlanFor_UnknownProfileFallsBack(t *testing.T) {
	plan, err := PlanFor(Profile("daredevil"), decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, plan.Profile)
}

func TestPlanFor_RejectsNonPositiveTotal(t *testing.T) {
	_, err := PlanFor(ProfileBalanced, decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")

	_, err = PlanFor(ProfileBalanced, decimal.NewFromInt(-100))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	funds := Catalog()
	require.Len(t, funds, 8)

	seen := make(map[string]bool)
	for _, f := range funds {
		assert.False(t, seen[f.Code], "duplicate code %s", f.Code)
		seen[f.Code] = true
		assert.NotEmpty(t, f.Name)
		assert.True(t, f.NAV.IsPositive())
	}

	assert.Len(t, RecommendedFunds(ClassEquity), 3)
	assert.Len(t, RecommendedFunds(ClassBond), 3)
	assert.Len(t, RecommendedFunds(ClassMoneyMarket), 2)
	assert.Empty(t, RecommendedFunds(AssetClass("crypto")))
}
