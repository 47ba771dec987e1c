package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corey/vesselmatch/internal/ports"
)

func TestRank_ScoreThenPosition(t *testing.T) {
	cands := []ports.Candidate{
		{Score: 85, Position: 2, Strategy: ports.StrategyFuzzy},
		{Score: 100, Position: 40, Strategy: ports.StrategyExact},
		{Score: 100, Position: 5, Strategy: ports.StrategyExact},
		{Score: 85, Position: 0, Strategy: ports.StrategyFuzzy},
	}
	ranked := Rank(cands)
	assert.Equal(t, []int{100, 100, 85, 85}, []int{ranked[0].Score, ranked[1].Score, ranked[2].Score, ranked[3].Score})
	assert.Equal(t, 5, ranked[0].Position)
	assert.Equal(t, 40, ranked[1].Position)
	assert.Equal(t, 0, ranked[2].Position)
}

func TestRank_TiesKeepDetectionOrder(t *testing.T) {
	a := ports.Candidate{Name: ports.VesselName{Primary: "first"}, Score: 100, Position: 7}
	b := ports.Candidate{Name: ports.VesselName{Primary: "second"}, Score: 100, Position: 7}
	ranked := Rank([]ports.Candidate{a, b})
	assert.Equal(t, "first", ranked[0].Name.Primary)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
