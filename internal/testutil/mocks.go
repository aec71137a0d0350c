package testutil

import (
	"sync"
	"time"

	"chessetl/internal/models"
	"chessetl/internal/providers"
	"chessetl/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Warnings returns the recorded warn-level entries.
func (m *MockLogger) Warnings() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == "warn" {
			out = append(out, e)
		}
	}
	return out
}

// MockCompressor is a pass-through dataset.CompressorInterface that
// counts calls.
type MockCompressor struct {
	CompressCalls   int
	DecompressCalls int
	Closed          bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	m.CompressCalls++
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	m.DecompressCalls++
	return val, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockCache implements providers.CacheProviderInterface over a map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Data == nil {
		m.Data = make(map[string][]byte)
	}
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// pipeline-relevant calls.
type MockMetrics struct {
	mu          sync.Mutex
	Processed   int
	Rejected    int
	Duplicates  int
	CacheHits   int
	CacheMisses int
	Archives    map[string]int
	Rows        map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObserveProcessDuration(_ time.Duration)           {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncRecordsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Processed++
}

func (m *MockMetrics) IncRecordsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected++
}

func (m *MockMetrics) AddDuplicatesRemoved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates += n
}

func (m *MockMetrics) IncArchives(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Archives == nil {
		m.Archives = make(map[string]int)
	}
	m.Archives[status]++
}

func (m *MockMetrics) SetDatasetRows(dataset string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rows == nil {
		m.Rows = make(map[string]int)
	}
	m.Rows[dataset] = count
}

// MockDatasetService implements services.DatasetServiceInterface.
type MockDatasetService struct {
	mu        sync.Mutex
	LoadCalls int
	Dataset   []models.CanonicalGameRow
}

func (m *MockDatasetService) Load(rows []models.CanonicalGameRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	m.Dataset = rows
}

func (m *MockDatasetService) Rows() []models.CanonicalGameRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Dataset
}

func (m *MockDatasetService) ByPlayer(name string) []models.CanonicalGameRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CanonicalGameRow
	for _, row := range m.Dataset {
		if row.WhiteUsername == name || row.BlackUsername == name {
			out = append(out, row)
		}
	}
	return out
}

func (m *MockDatasetService) Players() []services.PlayerCount {
	return nil
}

func (m *MockDatasetService) Summary() services.Summary {
	return services.Summary{TotalGames: len(m.Dataset)}
}

func (m *MockDatasetService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Dataset)
}
