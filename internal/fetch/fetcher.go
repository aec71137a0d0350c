package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"chessetl/internal/dataset"
	"chessetl/internal/models"
	"chessetl/internal/providers"
	"chessetl/internal/structures"
)

// Stats summarizes one player's fetch pass.
type Stats struct {
	ArchivesFound      int `json:"archives_found"`
	ArchivesDownloaded int `json:"archives_downloaded"`
	ArchivesSkipped    int `json:"archives_skipped"`
	TotalGames         int `json:"total_games"`
}

type archiveList struct {
	Archives []string `json:"archives"`
}

// Fetcher downloads monthly game archives from the public API,
// sequentially and rate limited, skipping months already on disk.
type Fetcher struct {
	conf    *structures.Config
	client  *http.Client
	files   *dataset.FileManager
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewFetcher(conf *structures.Config, files *dataset.FileManager, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Fetcher {
	return &Fetcher{
		conf: conf,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		files:   files,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchPlayer downloads all monthly archives for one username within
// the configured year range.
func (f *Fetcher) FetchPlayer(ctx context.Context, username string) (Stats, error) {
	var stats Stats

	archives, err := f.listArchives(ctx, username)
	if err != nil {
		return stats, err
	}

	var filtered []string
	for _, archiveURL := range archives {
		year, _ := archiveDate(archiveURL)
		if f.conf.Fetcher.StartYear != 0 && year < f.conf.Fetcher.StartYear {
			continue
		}
		if f.conf.Fetcher.EndYear != 0 && year > f.conf.Fetcher.EndYear {
			continue
		}
		filtered = append(filtered, archiveURL)
	}
	stats.ArchivesFound = len(filtered)

	if len(filtered) == 0 {
		f.logger.Warnf(providers.TypeFetch, "No archives found for %s in the configured range", username)
		return stats, nil
	}

	for i, archiveURL := range filtered {
		games, downloaded, err := f.downloadArchive(ctx, username, archiveURL)
		switch {
		case err != nil:
			stats.ArchivesSkipped++
			f.metrics.IncArchives("failed")
			f.logger.Errorf(providers.TypeFetch, "Error downloading %s: %s", archiveURL, err)
		case downloaded:
			stats.ArchivesDownloaded++
			stats.TotalGames += games
			f.metrics.IncArchives("downloaded")
		default:
			stats.ArchivesSkipped++
			f.metrics.IncArchives("skipped")
		}

		if i < len(filtered)-1 {
			if err := sleepCtx(ctx, f.conf.Fetcher.Delay); err != nil {
				return stats, err
			}
		}
	}

	f.logger.Infof(providers.TypeFetch, "Fetched %s: %d found, %d downloaded, %d skipped, %d games",
		username, stats.ArchivesFound, stats.ArchivesDownloaded, stats.ArchivesSkipped, stats.TotalGames)
	return stats, nil
}

// listArchives returns the monthly archive URLs for a user. The list
// response is cached so a refresh pass does not re-request it.
func (f *Fetcher) listArchives(ctx context.Context, username string) ([]string, error) {
	cacheKey := "archives:" + username
	body, ok := f.cache.Get(cacheKey)
	if !ok {
		listURL := fmt.Sprintf("%s/pub/player/%s/games/archives",
			strings.TrimSuffix(f.conf.Fetcher.BaseURL, "/"), url.PathEscape(username))

		var err error
		body, err = f.get(ctx, listURL)
		if err != nil {
			return nil, fmt.Errorf("fetching archives for %s: %w", username, err)
		}
		f.cache.Set(cacheKey, body)
	}

	var list archiveList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding archive list for %s: %w", username, err)
	}

	f.logger.Infof(providers.TypeFetch, "Found %d monthly archives for user %s", len(list.Archives), username)
	return list.Archives, nil
}

// downloadArchive fetches one monthly archive to disk unless it is
// already there. It returns the number of games saved and whether a
// download actually happened.
func (f *Fetcher) downloadArchive(ctx context.Context, username, archiveURL string) (int, bool, error) {
	path := f.archivePath(username, archiveURL)
	if f.files.ArchiveExists(path) {
		f.logger.Infof(providers.TypeFetch, "Archive already exists, skipping: %s", filepath.Base(path))
		return 0, false, nil
	}

	f.logger.Infof(providers.TypeFetch, "Downloading archive: %s", archiveURL)
	body, err := f.get(ctx, archiveURL)
	if err != nil {
		return 0, false, err
	}

	var archive models.RawArchive
	if err := json.Unmarshal(body, &archive); err != nil {
		return 0, false, fmt.Errorf("decoding %s: %w", archiveURL, err)
	}

	if err := f.files.SaveArchive(path, body); err != nil {
		return 0, false, err
	}

	f.logger.Infof(providers.TypeFetch, "Saved %d games to %s", len(archive.Games), filepath.Base(path))
	return len(archive.Games), true, nil
}

func (f *Fetcher) archivePath(username, archiveURL string) string {
	year, month := archiveDate(archiveURL)
	name := fmt.Sprintf("%s_%04d_%02d.json", username, year, month)
	if f.conf.Fetcher.CompressRaw {
		name += dataset.CompressedExt
	}
	return filepath.Join(f.conf.Fetcher.RawDir, name)
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.conf.Fetcher.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// archiveDate extracts year and month from an archive URL whose path
// ends in /YYYY/MM. Unparseable URLs fall back to the current month.
func archiveDate(archiveURL string) (int, int) {
	parts := strings.Split(strings.Trim(urlPath(archiveURL), "/"), "/")
	if len(parts) >= 2 {
		year, yErr := strconv.Atoi(parts[len(parts)-2])
		month, mErr := strconv.Atoi(parts[len(parts)-1])
		if yErr == nil && mErr == nil {
			return year, month
		}
	}
	now := time.Now()
	return now.Year(), int(now.Month())
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
