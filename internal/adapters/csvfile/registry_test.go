package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/vesselmatch/internal/ports"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vessels.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `Vessel Name,Thai name,Flag
Blue Marlin,เรือบลูมาร์ลิน,TH
Golden Dawn,,PA
,เรือทองคำ,TH
,,
`

func TestOpen_Vessels(t *testing.T) {
	f, err := Open(writeTemp(t, sampleCSV), DefaultColumns())
	require.NoError(t, err)

	vessels, err := f.Vessels()
	require.NoError(t, err)
	require.Len(t, vessels, 4)
	assert.Equal(t, ports.VesselName{Primary: "Blue Marlin", Secondary: "เรือบลูมาร์ลิน"}, vessels[0])
	assert.Equal(t, ports.VesselName{Primary: "Golden Dawn"}, vessels[1])
	assert.Equal(t, ports.VesselName{Secondary: "เรือทองคำ"}, vessels[2])
	assert.True(t, vessels[3].Empty(), "blank row read as empty strings, not an error")
}

func TestOpen_MissingColumn(t *testing.T) {
	_, err := Open(writeTemp(t, "Name,Flag\nBlue Marlin,TH\n"), DefaultColumns())
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"), DefaultColumns())
	assert.Error(t, err)
}

func TestWriteMatches_AppendsColumnAndFillsRows(t *testing.T) {
	f, err := Open(writeTemp(t, sampleCSV), DefaultColumns())
	require.NoError(t, err)

	table := ports.AssociationTable{
		"Blue Marlin": {"report-b.pdf", "report-a.pdf"},
		"เรือทองคำ":   {"report-c.pdf"},
	}
	out := filepath.Join(t.TempDir(), "out", "updated.csv")
	require.NoError(t, f.WriteMatches(out, table))

	rt, err := Open(out, DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 4, rt.RowCount())

	// The matches column was appended and is readable back.
	assert.Equal(t, "Link to report which mentions", rt.header[len(rt.header)-1])
	assert.Equal(t, "report-a.pdf; report-b.pdf", cell(rt.rows[0], rt.matchIdx), "doc IDs sorted and joined")
	assert.Equal(t, "", cell(rt.rows[1], rt.matchIdx), "unmatched vessel keeps an empty cell")
	assert.Equal(t, "report-c.pdf", cell(rt.rows[2], rt.matchIdx))
}

func TestWriteMatches_ExistingColumnOverwrittenOnlyForMatches(t *testing.T) {
	in := `Vessel Name,Thai name,Link to report which mentions
Blue Marlin,,stale.pdf
Golden Dawn,,prior.pdf
`
	f, err := Open(writeTemp(t, in), DefaultColumns())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "updated.csv")
	require.NoError(t, f.WriteMatches(out, ports.AssociationTable{"Blue Marlin": {"fresh.pdf"}}))

	rt, err := Open(out, DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, "fresh.pdf", cell(rt.rows[0], rt.matchIdx))
	assert.Equal(t, "prior.pdf", cell(rt.rows[1], rt.matchIdx), "rows without a new match keep their cell")
}

func TestSink_ImplementsAssociationSink(t *testing.T) {
	f, err := Open(writeTemp(t, sampleCSV), DefaultColumns())
	require.NoError(t, err)

	var sink ports.AssociationSink = Sink{File: f, OutPath: filepath.Join(t.TempDir(), "o.csv")}
	require.NoError(t, sink.WriteAssociations(ports.AssociationTable{}))
}
