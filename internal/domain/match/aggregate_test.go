package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/vesselmatch/internal/ports"
)

func vm(display string) ports.VesselMatch {
	return ports.VesselMatch{Display: display, Best: ports.Candidate{Score: 100}}
}

func TestAggregator_Idempotent(t *testing.T) {
	a := NewAggregator()
	a.Add("report-1.pdf", []ports.VesselMatch{vm("Blue Marlin")})
	a.Add("report-1.pdf", []ports.VesselMatch{vm("Blue Marlin")})

	table := a.Table()
	require.Len(t, table, 1)
	assert.Equal(t, []string{"report-1.pdf"}, table.Rows()[0].DocIDs)
}

func TestAggregator_Commutative(t *testing.T) {
	left := NewAggregator()
	left.Add("a.pdf", []ports.VesselMatch{vm("Blue Marlin")})
	left.Add("b.pdf", []ports.VesselMatch{vm("Blue Marlin"), vm("Golden Dawn")})

	right := NewAggregator()
	right.Add("b.pdf", []ports.VesselMatch{vm("Golden Dawn"), vm("Blue Marlin")})
	right.Add("a.pdf", []ports.VesselMatch{vm("Blue Marlin")})

	assert.Equal(t, left.Table().Rows(), right.Table().Rows())
}

func TestAggregator_MergesVariantHitsIntoOneRow(t *testing.T) {
	// Document A matched the primary spelling, document B the secondary one.
	// Matches carry the display name, so both land in one row.
	m, err := NewMatcher(testRegistry(), 80)
	require.NoError(t, err)

	a := NewAggregator()
	a.Add("a.pdf", m.MatchDocument("the Blue Marlin was sighted"))
	a.Add("b.pdf", m.MatchDocument("พบ เรือบลูมาร์ลิน อีกครั้ง"))

	rows := a.Table().Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Blue Marlin", rows[0].Display)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, rows[0].DocIDs)
}

func TestAggregator_EmptyCorpus(t *testing.T) {
	assert.Empty(t, NewAggregator().Table())
	assert.Empty(t, Aggregate(nil))
}

func TestAggregate_DeterministicRows(t *testing.T) {
	table := Aggregate(map[string][]ports.VesselMatch{
		"z.pdf": {vm("Golden Dawn"), vm("Blue Marlin")},
		"a.pdf": {vm("Golden Dawn")},
	})
	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Blue Marlin", rows[0].Display)
	assert.Equal(t, "Golden Dawn", rows[1].Display)
	assert.Equal(t, []string{"a.pdf", "z.pdf"}, rows[1].DocIDs)
}

func TestAggregator_AddDisplays(t *testing.T) {
	a := NewAggregator()
	a.AddDisplays("r.pdf", []string{"Blue Marlin", "", "Golden Dawn"})
	rows := a.Table().Rows()
	require.Len(t, rows, 2) // empty display names contribute nothing
}
