package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessetl/internal/dataset"
	"chessetl/internal/structures"
	"chessetl/internal/testutil"
)

type fetchFixture struct {
	fetcher      *Fetcher
	conf         *structures.Config
	metrics      *testutil.MockMetrics
	server       *httptest.Server
	listRequests int64
}

// newFetchFixture serves an archive list with two months (2023/10 and
// 2023/11) of one game each for any username.
func newFetchFixture(t *testing.T) *fetchFixture {
	t.Helper()
	fx := &fetchFixture{metrics: &testutil.MockMetrics{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/pub/player/alice/games/archives", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fx.listRequests, 1)
		base := "http://" + r.Host + "/pub/player/alice/games"
		fmt.Fprintf(w, `{"archives":["%s/2023/10","%s/2023/11"]}`, base, base)
	})
	mux.HandleFunc("/pub/player/alice/games/2023/10", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"games":[{"url":"https://example.com/game/1"}]}`)
	})
	mux.HandleFunc("/pub/player/alice/games/2023/11", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"games":[{"url":"https://example.com/game/2"}]}`)
	})

	fx.server = httptest.NewServer(mux)
	t.Cleanup(fx.server.Close)

	logger := &testutil.MockLogger{}
	fx.conf = &structures.Config{
		Fetcher: structures.FetcherConfig{
			BaseURL:   fx.server.URL,
			UserAgent: "chessetl-test",
			RawDir:    t.TempDir(),
		},
	}
	files := dataset.NewFileManager(&testutil.MockCompressor{}, logger)
	fx.fetcher = NewFetcher(fx.conf, files, &testutil.MockCache{}, logger, fx.metrics)
	return fx
}

func TestFetchPlayer(t *testing.T) {
	fx := newFetchFixture(t)

	stats, err := fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ArchivesFound)
	assert.Equal(t, 2, stats.ArchivesDownloaded)
	assert.Equal(t, 0, stats.ArchivesSkipped)
	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 2, fx.metrics.Archives["downloaded"])

	assert.FileExists(t, filepath.Join(fx.conf.Fetcher.RawDir, "alice_2023_10.json"))
	assert.FileExists(t, filepath.Join(fx.conf.Fetcher.RawDir, "alice_2023_11.json"))
}

func TestFetchPlayer_SkipsExistingArchives(t *testing.T) {
	fx := newFetchFixture(t)

	existing := filepath.Join(fx.conf.Fetcher.RawDir, "alice_2023_10.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{"games":[]}`), 0644))

	stats, err := fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ArchivesDownloaded)
	assert.Equal(t, 1, stats.ArchivesSkipped)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, fx.metrics.Archives["skipped"])
}

func TestFetchPlayer_YearFilter(t *testing.T) {
	fx := newFetchFixture(t)
	fx.conf.Fetcher.StartYear = 2024

	stats, err := fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ArchivesFound)
	assert.Equal(t, 0, stats.ArchivesDownloaded)

	fx.conf.Fetcher.StartYear = 0
	fx.conf.Fetcher.EndYear = 2022
	stats, err = fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ArchivesFound)
}

func TestFetchPlayer_CachesArchiveList(t *testing.T) {
	fx := newFetchFixture(t)

	_, err := fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	_, err = fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&fx.listRequests))
}

func TestFetchPlayer_UnknownUser(t *testing.T) {
	fx := newFetchFixture(t)

	_, err := fx.fetcher.FetchPlayer(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody")
}

func TestFetchPlayer_FailedMonthDoesNotAbort(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}

	mux := http.NewServeMux()
	mux.HandleFunc("/pub/player/alice/games/archives", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host + "/pub/player/alice/games"
		fmt.Fprintf(w, `{"archives":["%s/2023/10","%s/2023/11"]}`, base, base)
	})
	mux.HandleFunc("/pub/player/alice/games/2023/10", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/pub/player/alice/games/2023/11", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"games":[{"url":"https://example.com/game/2"}]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	conf := &structures.Config{
		Fetcher: structures.FetcherConfig{BaseURL: server.URL, RawDir: t.TempDir()},
	}
	files := dataset.NewFileManager(&testutil.MockCompressor{}, logger)
	f := NewFetcher(conf, files, &testutil.MockCache{}, logger, metrics)

	stats, err := f.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ArchivesDownloaded)
	assert.Equal(t, 1, stats.ArchivesSkipped)
	assert.Equal(t, 1, metrics.Archives["failed"])
}

func TestFetchPlayer_SetsUserAgent(t *testing.T) {
	var gotAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/pub/player/alice/games/archives", func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"archives":[]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	logger := &testutil.MockLogger{}
	conf := &structures.Config{
		Fetcher: structures.FetcherConfig{BaseURL: server.URL, UserAgent: "chessetl-test", RawDir: t.TempDir()},
	}
	files := dataset.NewFileManager(&testutil.MockCompressor{}, logger)
	f := NewFetcher(conf, files, &testutil.MockCache{}, logger, &testutil.MockMetrics{})

	stats, err := f.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "chessetl-test", gotAgent)
	assert.Zero(t, stats.ArchivesFound)
}

func TestFetchPlayer_CompressRawNaming(t *testing.T) {
	fx := newFetchFixture(t)
	fx.conf.Fetcher.CompressRaw = true

	stats, err := fx.fetcher.FetchPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ArchivesDownloaded)
	assert.FileExists(t, filepath.Join(fx.conf.Fetcher.RawDir, "alice_2023_10.json"+dataset.CompressedExt))
}

func TestArchiveDate(t *testing.T) {
	year, month := archiveDate("https://api.chess.com/pub/player/alice/games/2023/04")
	assert.Equal(t, 2023, year)
	assert.Equal(t, 4, month)

	// Unparseable URLs fall back to the current month.
	year, _ = archiveDate("https://api.chess.com/pub/player/alice")
	assert.NotZero(t, year)
}
