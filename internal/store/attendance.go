package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/model"
)

// RecordStore owns the attendance table: an in-memory
// {userID: {date: record}} map mirrored to a single JSON file. The file
// is rewritten wholesale after every mutation, so an acknowledged
// transition is durable before the user sees the reply.
type RecordStore struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	records map[string]map[string]*model.AttendanceRecord
}

// NewRecordStore loads any prior state from path. A missing or corrupt
// file starts the store empty; it never prevents startup.
func NewRecordStore(path string, log *zap.Logger) *RecordStore {
	s := &RecordStore{
		path:    path,
		log:     log,
		records: make(map[string]map[string]*model.AttendanceRecord),
	}
	s.load()
	return s
}

func (s *RecordStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read state file, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.log.Warn("corrupt state file, starting empty", zap.String("path", s.path), zap.Error(err))
		s.records = make(map[string]map[string]*model.AttendanceRecord)
		return
	}
	s.log.Info("attendance state loaded", zap.String("path", s.path), zap.Int("records", s.count()))
}

// Get returns the record for (userID, date), or nil if none exists.
func (s *RecordStore) Get(userID, date string) *model.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[userID][date]
}

// Put stores the record under its (UserID, Date) key and rewrites the
// durable copy.
func (s *RecordStore) Put(record *model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.records[record.UserID]
	if !ok {
		days = make(map[string]*model.AttendanceRecord)
		s.records[record.UserID] = days
	}
	days[record.Date] = record

	return s.save()
}

// Count returns the number of stored records across all users.
func (s *RecordStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count()
}

func (s *RecordStore) count() int {
	n := 0
	for _, days := range s.records {
		n += len(days)
	}
	return n
}

// save serializes the full table and atomically replaces the state file.
// Callers hold s.mu.
func (s *RecordStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
