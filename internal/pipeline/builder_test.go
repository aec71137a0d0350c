package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessetl/internal/dataset"
	"chessetl/internal/models"
	"chessetl/internal/testutil"
)

func newTestBuilder() (*Builder, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	files := dataset.NewFileManager(&testutil.MockCompressor{}, logger)
	return NewBuilder(NewNormalizer(logger), files, logger, metrics), metrics
}

func rawRecord(url string, endTime int64) models.RawGameRecord {
	return models.RawGameRecord{
		"white":    map[string]any{"username": "alice", "result": "win"},
		"black":    map[string]any{"username": "bob", "result": "resigned"},
		"end_time": endTime,
		"url":      url,
		"pgn":      "",
	}
}

func TestBuild_DeduplicatesKeepingFirst(t *testing.T) {
	b, _ := newTestBuilder()

	first := rawRecord("https://example.com/game/1", 100)
	first["time_control"] = "600"
	second := rawRecord("https://example.com/game/1", 200)

	rows, report := b.Build([][]models.RawGameRecord{{first}, {second}})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].EndTime)
	assert.Equal(t, "600", rows[0].TimeControl)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 1, report.Rows)
}

func TestBuild_SortsByEndTimeStable(t *testing.T) {
	b, _ := newTestBuilder()

	rows, _ := b.Build([][]models.RawGameRecord{{
		rawRecord("https://example.com/game/3", 300),
		rawRecord("https://example.com/game/1", 100),
		rawRecord("https://example.com/game/2a", 200),
		rawRecord("https://example.com/game/2b", 200),
	}})

	require.Len(t, rows, 4)
	assert.Equal(t, "https://example.com/game/1", rows[0].URL)
	assert.Equal(t, "https://example.com/game/2a", rows[1].URL)
	assert.Equal(t, "https://example.com/game/2b", rows[2].URL)
	assert.Equal(t, "https://example.com/game/3", rows[3].URL)
}

func TestBuild_CountsRejects(t *testing.T) {
	b, metrics := newTestBuilder()

	bad := rawRecord("https://example.com/game/bad", 100)
	delete(bad, "pgn")

	rows, report := b.Build([][]models.RawGameRecord{
		{rawRecord("https://example.com/game/1", 100), bad},
		{rawRecord("https://example.com/game/2", 200)},
	})

	assert.Len(t, rows, 2)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 1, metrics.Rejected)
	assert.Equal(t, 2, metrics.Processed)
}

func TestBuild_Empty(t *testing.T) {
	b, _ := newTestBuilder()

	rows, report := b.Build(nil)
	assert.Empty(t, rows)
	assert.Equal(t, Report{}, report)
}

func TestBuildDir(t *testing.T) {
	b, _ := newTestBuilder()
	dir := t.TempDir()

	writeArchive(t, filepath.Join(dir, "alice_2023_10.json"), `{"games":[
		{"white":{"username":"alice","result":"win"},"black":{"username":"bob","result":"resigned"},"end_time":200,"url":"https://example.com/game/2","pgn":""}
	]}`)
	writeArchive(t, filepath.Join(dir, "alice_2023_11.json"), `{"games":[
		{"white":{"username":"alice","result":"agreed"},"black":{"username":"bob","result":"agreed"},"end_time":100,"url":"https://example.com/game/1","pgn":""}
	]}`)

	rows, report, err := b.BuildDir(dir)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://example.com/game/1", rows[0].URL)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 2, report.Records)
}

func TestBuildDir_SkipsUnreadableArchives(t *testing.T) {
	b, _ := newTestBuilder()
	dir := t.TempDir()

	writeArchive(t, filepath.Join(dir, "alice_2023_10.json"), `{"games":[`)
	writeArchive(t, filepath.Join(dir, "alice_2023_11.json"), `{"games":[
		{"white":{"username":"alice","result":"win"},"black":{"username":"bob","result":"resigned"},"end_time":100,"url":"https://example.com/game/1","pgn":""}
	]}`)

	rows, report, err := b.BuildDir(dir)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, report.Files)
}

func TestBuildDir_MissingDir(t *testing.T) {
	b, _ := newTestBuilder()

	_, _, err := b.BuildDir(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, dataset.ErrSourceMissing)
}

func TestBuildDir_AllRecordsRejected(t *testing.T) {
	b, _ := newTestBuilder()
	dir := t.TempDir()

	writeArchive(t, filepath.Join(dir, "alice_2023_10.json"), `{"games":[{"url":"https://example.com/game/1"}]}`)

	_, report, err := b.BuildDir(dir)
	assert.ErrorIs(t, err, dataset.ErrDatasetEmpty)
	assert.Equal(t, 1, report.Rejected)
}

func writeArchive(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}
