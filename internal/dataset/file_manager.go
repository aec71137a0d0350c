package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"chessetl/internal/models"
	"chessetl/internal/providers"
)

// CompressedExt marks raw archive files stored zstd-compressed.
const CompressedExt = ".zst"

var (
	// ErrSourceMissing reports an input path that does not exist.
	ErrSourceMissing = errors.New("input source does not exist")
	// ErrDatasetEmpty reports an operation that produced no rows.
	ErrDatasetEmpty = errors.New("dataset is empty")
)

// FileManager owns all file I/O of the pipeline: raw archive JSON
// (optionally zstd-compressed) and the two CSV dataset boundaries. All
// writes go through a tmp file and rename.
type FileManager struct {
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// SaveArchive persists one raw monthly archive. A path ending in .zst
// is compressed before writing.
func (f *FileManager) SaveArchive(path string, data []byte) error {
	if strings.HasSuffix(path, CompressedExt) {
		compressed, err := f.compressor.Compress(data)
		if err != nil {
			return err
		}
		data = compressed
	}
	return f.writeAtomic(path, data)
}

// ArchiveExists reports whether an archive is already on disk in
// either plain or compressed form.
func (f *FileManager) ArchiveExists(path string) bool {
	plain := strings.TrimSuffix(path, CompressedExt)
	for _, p := range []string{plain, plain + CompressedExt} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// LoadArchive reads one raw archive file back into its record batch.
func (f *FileManager) LoadArchive(path string) (models.RawArchive, error) {
	var archive models.RawArchive

	data, err := os.ReadFile(path)
	if err != nil {
		return archive, err
	}

	if strings.HasSuffix(path, CompressedExt) {
		data, err = f.compressor.Decompress(data)
		if err != nil {
			return archive, fmt.Errorf("decompress %s: %w", path, err)
		}
	}

	if err := json.Unmarshal(data, &archive); err != nil {
		return archive, fmt.Errorf("decode %s: %w", path, err)
	}
	return archive, nil
}

// ListArchives returns the data files in dir in name order. Name order
// keeps batch concatenation deterministic across runs.
func (f *FileManager) ListArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, dir)
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json"+CompressedExt) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (f *FileManager) WriteCanonicalCSV(path string, rows []models.CanonicalGameRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, CanonicalColumns)
	for _, row := range rows {
		records = append(records, canonicalRecord(row))
	}
	return f.writeCSV(path, records)
}

func (f *FileManager) ReadCanonicalCSV(path string) ([]models.CanonicalGameRow, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrDatasetEmpty, path)
	}

	idx := newColumnIndex(records[0])
	rows := make([]models.CanonicalGameRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, canonicalRowFromRecord(idx, rec))
	}
	return rows, nil
}

func (f *FileManager) WritePerspectiveCSV(path string, rows []models.SubjectPerspectiveRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, PerspectiveColumns)
	for _, row := range rows {
		records = append(records, perspectiveRecord(row))
	}
	return f.writeCSV(path, records)
}

func (f *FileManager) writeCSV(path string, records [][]string) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := f.writeAtomic(path, []byte(sb.String())); err != nil {
		return err
	}
	f.logger.Infof(providers.TypeApp, "Saved %d records to %s", len(records)-1, path)
	return nil
}

func (f *FileManager) writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}
