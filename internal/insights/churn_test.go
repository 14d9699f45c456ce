package insights_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
	"github.com/unclebandit/donorpulse-backend/internal/insights"
	"github.com/unclebandit/donorpulse-backend/internal/model"
)

func TestChurnRisksSelection(t *testing.T) {
	donors := []model.Donor{
		donor(1, 30, 500, 400), // old, very active
		donor(2, 2, 40, 300),   // old, quiet -> highest risk
		donor(3, 5, 80, 60),    // too recent, excluded
		donor(4, 3, 50, 200),   // old, quiet
		donor(5, 8, 120, 100),  // too recent, excluded
	}

	rng := rand.New(rand.NewSource(42))
	risks, err := insights.ChurnRisks(rng, testNow, donors, 2)
	require.NoError(t, err)
	require.Len(t, risks, 2)

	// fewest donations first
	assert.Equal(t, 2, risks[0].DonorID)
	assert.Equal(t, 4, risks[1].DonorID)

	cutoff := testNow.AddDate(0, 0, -180)
	for _, r := range risks {
		assert.True(t, r.JoinDate.Before(cutoff), "only donors older than 180 days qualify")
		assert.GreaterOrEqual(t, r.ChurnRiskScore, 0.70)
		assert.LessOrEqual(t, r.ChurnRiskScore, 0.95)
		assert.Equal(t, "Personal Call", r.SuggestedAction)
	}
}

func TestChurnRisksStableTieBreak(t *testing.T) {
	// same donation count: generation order is preserved
	donors := []model.Donor{
		donor(10, 3, 100, 300),
		donor(11, 3, 200, 250),
		donor(12, 3, 50, 400),
	}

	rng := rand.New(rand.NewSource(1))
	risks, err := insights.ChurnRisks(rng, testNow, donors, 3)
	require.NoError(t, err)
	require.Len(t, risks, 3)

	assert.Equal(t, []int{10, 11, 12}, []int{risks[0].DonorID, risks[1].DonorID, risks[2].DonorID})
}

func TestChurnRisksPartialResult(t *testing.T) {
	donors := []model.Donor{
		donor(1, 2, 40, 300),
		donor(2, 5, 80, 60), // excluded
	}

	rng := rand.New(rand.NewSource(1))
	risks, err := insights.ChurnRisks(rng, testNow, donors, 5)
	require.NoError(t, err)
	assert.Len(t, risks, 1, "fewer qualifying donors than topN is a valid partial result")
}

func TestChurnRisksInvalidTopN(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := insights.ChurnRisks(rng, testNow, []model.Donor{donor(1, 2, 40, 300)}, 0)
	require.Error(t, err)
	assert.True(t, appErrors.IsInvalidArgument(err))
}
