package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/vesselmatch/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord() *ports.RunRecord {
	return &ports.RunRecord{
		Documents: map[string][]string{
			"a.pdf": {"Blue Marlin", "Golden Dawn"},
			"b.pdf": {"Blue Marlin"},
		},
		Stats: ports.RunStats{
			DocsScanned:    2,
			VesselsMatched: 2,
			Threshold:      80,
			StartedAt:      1700000000,
			FinishedAt:     1700000042,
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun("corpus-1", sampleRecord()))

	got, err := s.LoadRun("corpus-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleRecord(), got)
}

func TestStore_LoadMissingCorpus(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LoadRun("never-saved")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun("corpus-1", sampleRecord()))

	updated := sampleRecord()
	updated.Documents["c.pdf"] = []string{"Golden Dawn"}
	delete(updated.Documents, "b.pdf")
	updated.Stats.DocsScanned = 3
	require.NoError(t, s.SaveRun("corpus-1", updated))

	got, err := s.LoadRun("corpus-1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStore_DeleteRunIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun("corpus-1", sampleRecord()))

	require.NoError(t, s.DeleteRun("corpus-1"))
	require.NoError(t, s.DeleteRun("corpus-1"), "deleting a nonexistent corpus is not an error")

	got, err := s.LoadRun("corpus-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_NilRecordRejected(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.SaveRun("corpus-1", nil))
}

func TestStore_CorporaAreIsolated(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun("corpus-1", sampleRecord()))

	other := &ports.RunRecord{Documents: map[string][]string{"x.pdf": {"Silver Wake"}}}
	require.NoError(t, s.SaveRun("corpus-2", other))
	require.NoError(t, s.DeleteRun("corpus-2"))

	got, err := s.LoadRun("corpus-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleRecord().Documents, got.Documents)
}
