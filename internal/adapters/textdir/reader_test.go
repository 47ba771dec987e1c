package textdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDocID(t *testing.T) {
	r := NewReader("")
	assert.Equal(t, "report7.pdf", r.DocID("translated_report7.pdf.txt"))
	assert.Equal(t, "report7.pdf", r.DocID("translated_report7.txt"))
	assert.Equal(t, "notes.txt", r.DocID("notes.txt"), "unconventional names pass through")
}

func TestDocuments_PagedAndUnpaged(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "translated_a.pdf.txt", "--- Page 1 ---\nfirst page\n\n--- Page 2 ---\nsecond page\n")
	writeCorpusFile(t, dir, "translated_b.pdf.txt", "single body of text")
	writeCorpusFile(t, dir, "ignore.csv", "not,a,text,file")

	docs, failed, err := NewReader(dir).Documents()
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, docs, 2)

	assert.Equal(t, "a.pdf", docs[0].ID)
	require.Len(t, docs[0].Pages, 2)
	assert.Contains(t, docs[0].Pages[0], "first page")
	assert.Contains(t, docs[0].Pages[1], "second page")

	assert.Equal(t, "b.pdf", docs[1].ID)
	assert.Len(t, docs[1].Pages, 1)
}

func TestDocuments_EmptyFileSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "translated_empty.pdf.txt", "   \n\n")
	writeCorpusFile(t, dir, "translated_ok.pdf.txt", "content")

	docs, failed, err := NewReader(dir).Documents()
	require.NoError(t, err)
	assert.Empty(t, failed, "an empty document is a warning, not a failure")
	require.Len(t, docs, 1)
	assert.Equal(t, "ok.pdf", docs[0].ID)
}

func TestDocuments_InvalidUTF8IsPerDocumentFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "translated_bad.pdf.txt"), []byte{0xff, 0xfe, 0x41}, 0o644))
	writeCorpusFile(t, dir, "translated_good.pdf.txt", "fine")

	docs, failed, err := NewReader(dir).Documents()
	require.NoError(t, err, "one bad file must not fail the corpus")
	require.Len(t, failed, 1)
	assert.Equal(t, "bad.pdf", failed[0].DocID)
	require.Len(t, docs, 1)
	assert.Equal(t, "good.pdf", docs[0].ID)
}

func TestDocuments_MissingDirIsCorpusError(t *testing.T) {
	_, _, err := NewReader(filepath.Join(t.TempDir(), "absent")).Documents()
	assert.Error(t, err)
}
