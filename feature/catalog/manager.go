package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"tag-manager/core/linkage"
	"tag-manager/core/utils"

	"go.uber.org/zap"
)

// FileName is the custom catalog file inside the device config volume.
const FileName = "tonies.custom.json"

// FirstCustomModel is the lowest user-assignable model number.
const FirstCustomModel = 900001

// Sentinel errors surfaced to the handler layer.
var (
	ErrNotFound       = errors.New("catalog entry not found")
	ErrDuplicateModel = errors.New("model number already exists")
)

// Manager owns the on-disk custom catalog file. All mutations go through
// a single mutex and an atomic replace write, so concurrent readers never
// observe a partially written file.
type Manager struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewManager creates a manager for the catalog file under configPath.
func NewManager(configPath string, logger *zap.Logger) *Manager {
	return &Manager{
		path:   filepath.Join(configPath, FileName),
		logger: logger,
	}
}

// Path returns the absolute catalog file path.
func (m *Manager) Path() string { return m.path }

// Load reads the catalog file. A missing file is an empty catalog, not an
// error. Entries without a sequence number receive one, so older files
// produced by hand stay usable.
func (m *Manager) Load() ([]linkage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() ([]linkage.Entry, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []linkage.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []linkage.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	next := nextNo(entries)
	for i := range entries {
		if entries[i].No == "" {
			entries[i].No = linkage.FlexString(strconv.Itoa(next))
			next++
		}
	}
	return entries, nil
}

// save writes the catalog atomically, keeping a timestamped sibling backup
// of the previous content. Caller holds the mutex.
func (m *Manager) save(entries []linkage.Entry) error {
	if prev, err := os.ReadFile(m.path); err == nil {
		backup := fmt.Sprintf("%s.backup.%s", m.path, time.Now().Format("20060102-150405"))
		if err := os.WriteFile(backup, prev, 0o644); err != nil {
			m.logger.Warn("Catalog backup write failed", zap.String("path", backup), zap.Error(err))
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := utils.WriteFileAtomic(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// NextModelNumber returns the next free custom model number, starting at
// FirstCustomModel.
func (m *Manager) NextModelNumber() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return "", err
	}
	return nextModelNumber(entries), nil
}

func nextModelNumber(entries []linkage.Entry) string {
	next := FirstCustomModel
	for i := range entries {
		n, err := strconv.Atoi(entries[i].Model)
		if err != nil || !strings.HasPrefix(entries[i].Model, linkage.CustomModelPrefix) {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

func nextNo(entries []linkage.Entry) int {
	next := 1
	for i := range entries {
		if n, err := strconv.Atoi(string(entries[i].No)); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// Create appends a new entry. An empty model gets the next custom model
// number; an explicit model colliding with an existing one is rejected.
// onBeforeSave receives the previous file content for off-site backup.
func (m *Manager) Create(entry linkage.Entry, onBeforeSave func(prev []byte)) (*linkage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return nil, err
	}

	if entry.Model == "" {
		entry.Model = nextModelNumber(entries)
	} else {
		for i := range entries {
			if entries[i].Model == entry.Model {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, entry.Model)
			}
		}
	}
	entry.No = linkage.FlexString(strconv.Itoa(nextNo(entries)))
	if entry.Category == "" {
		entry.Category = linkage.CategoryCustom
	}
	if entry.AudioIDs == nil {
		entry.AudioIDs = linkage.FlexStrings{}
	}
	if entry.Hashes == nil {
		entry.Hashes = linkage.FlexStrings{}
	}

	m.snapshot(onBeforeSave)
	entries = append(entries, entry)
	if err := m.save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EntryUpdate carries the fields of a partial catalog update. Nil fields
// stay untouched.
type EntryUpdate struct {
	Model    *string   `json:"model"`
	Title    *string   `json:"title"`
	Series   *string   `json:"series"`
	Episodes *string   `json:"episodes"`
	Language *string   `json:"language"`
	Pic      *string   `json:"pic"`
	AudioIDs *[]string `json:"audio_id"`
	Hashes   *[]string `json:"hash"`
}

// Update applies a partial update to the entry with the given sequence
// number.
func (m *Manager) Update(no string, upd EntryUpdate, onBeforeSave func(prev []byte)) (*linkage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return nil, err
	}

	idx := findByNo(entries, no)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no %s", ErrNotFound, no)
	}

	e := &entries[idx]
	if upd.Model != nil && *upd.Model != e.Model {
		for i := range entries {
			if i != idx && entries[i].Model == *upd.Model {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, *upd.Model)
			}
		}
		e.Model = *upd.Model
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Series != nil {
		e.Series = *upd.Series
	}
	if upd.Episodes != nil {
		e.Episodes = *upd.Episodes
	}
	if upd.Language != nil {
		e.Language = *upd.Language
	}
	if upd.Pic != nil {
		e.Pic = *upd.Pic
	}
	if upd.AudioIDs != nil {
		e.AudioIDs = linkage.FlexStrings(*upd.AudioIDs)
	}
	if upd.Hashes != nil {
		e.Hashes = linkage.FlexStrings(*upd.Hashes)
	}

	m.snapshot(onBeforeSave)
	if err := m.save(entries); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the entry with the given sequence number.
func (m *Manager) Delete(no string, onBeforeSave func(prev []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return err
	}

	idx := findByNo(entries, no)
	if idx < 0 {
		return fmt.Errorf("%w: no %s", ErrNotFound, no)
	}

	m.snapshot(onBeforeSave)
	entries = append(entries[:idx], entries[idx+1:]...)
	return m.save(entries)
}

func (m *Manager) snapshot(onBeforeSave func(prev []byte)) {
	if onBeforeSave == nil {
		return
	}
	if prev, err := os.ReadFile(m.path); err == nil {
		onBeforeSave(prev)
	}
}

func findByNo(entries []linkage.Entry, no string) int {
	for i := range entries {
		if string(entries[i].No) == no {
			return i
		}
	}
	return -1
}
