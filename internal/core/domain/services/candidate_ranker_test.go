package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedDriver(t *testing.T, name string, verification driver.VerificationStatus, online bool) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(driver.Snapshot{
		ID:           kernel.NewUUID(),
		UserID:       kernel.NewUUID(),
		Name:         name,
		Role:         driver.RoleDeliveryDriver,
		Verification: verification,
		IsOnline:     online,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return d
}

func names(cands []services.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Driver.Name())
	}
	return out
}

func TestParseRankingPolicy(t *testing.T) {
	p, err := services.ParseRankingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, services.RankByLoad, p)

	p, err = services.ParseRankingPolicy("NAME")
	require.NoError(t, err)
	assert.Equal(t, services.RankByName, p)

	_, err = services.ParseRankingPolicy("distance")
	require.Error(t, err)

	_, err = services.NewCandidateRanker(services.NewLifecycleEngine(), "distance")
	require.Error(t, err)
}

func TestCandidateRanker_Rank(t *testing.T) {
	engine := services.NewLifecycleEngine()
	cands := []services.Candidate{
		{Driver: namedDriver(t, "Meera", driver.VerificationVerified, true), ActiveOrderCount: 2},
		{Driver: namedDriver(t, "arjun", driver.VerificationVerified, true), ActiveOrderCount: 2},
		{Driver: namedDriver(t, "Zoya", driver.VerificationVerified, true), ActiveOrderCount: 0},
		{Driver: namedDriver(t, "Offline", driver.VerificationVerified, false), ActiveOrderCount: 0},
		{Driver: namedDriver(t, "Unverified", driver.VerificationPending, true), ActiveOrderCount: 0},
	}

	t.Run("load policy orders by active count then name", func(t *testing.T) {
		ranker, err := services.NewCandidateRanker(engine, services.RankByLoad)
		require.NoError(t, err)

		assert.Equal(t, []string{"Zoya", "arjun", "Meera"}, names(ranker.Rank(cands)))
	})

	t.Run("name policy ignores load", func(t *testing.T) {
		ranker, err := services.NewCandidateRanker(engine, services.RankByName)
		require.NoError(t, err)

		assert.Equal(t, []string{"arjun", "Meera", "Zoya"}, names(ranker.Rank(cands)))
	})

	t.Run("offline and unverified drivers never appear", func(t *testing.T) {
		ranker, err := services.NewCandidateRanker(engine, services.RankByLoad)
		require.NoError(t, err)

		for _, c := range ranker.Rank(cands) {
			assert.True(t, c.Driver.IsOnline())
			assert.True(t, engine.IsAssignmentEligible(c.Driver))
		}
	})

	t.Run("input is not reordered", func(t *testing.T) {
		ranker, err := services.NewCandidateRanker(engine, services.RankByName)
		require.NoError(t, err)

		_ = ranker.Rank(cands)
		assert.Equal(t, "Meera", cands[0].Driver.Name())
	})

	t.Run("empty input", func(t *testing.T) {
		ranker, err := services.NewCandidateRanker(engine, services.RankByLoad)
		require.NoError(t, err)

		assert.Empty(t, ranker.Rank(nil))
	})
}
