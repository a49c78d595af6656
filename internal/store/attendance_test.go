package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/model"
)

func TestMissingFileStartsEmpty(t *testing.T) {
	s := NewRecordStore(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
	if s.Get("u1", "2024-06-03") != nil {
		t.Error("expected nil for unknown key")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewRecordStore(path, zap.NewNop())
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestPutPersistsAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewRecordStore(path, zap.NewNop())

	checkIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	record := &model.AttendanceRecord{
		UserID:   "u1",
		Username: "alice",
		Date:     "2024-06-03",
		CheckIn:  &checkIn,
	}
	if err := s.Put(record); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	reloaded := NewRecordStore(path, zap.NewNop())
	got := reloaded.Get("u1", "2024-06-03")
	if got == nil {
		t.Fatal("record missing after reload")
	}
	if got.Username != "alice" || !got.CheckIn.Equal(checkIn) {
		t.Errorf("reloaded record = %+v", got)
	}
}

func TestPutOverwritesSameKey(t *testing.T) {
	s := NewRecordStore(filepath.Join(t.TempDir(), "state.json"), zap.NewNop())

	first := &model.AttendanceRecord{UserID: "u1", Date: "2024-06-03", Username: "alice"}
	if err := s.Put(first); err != nil {
		t.Fatal(err)
	}
	second := &model.AttendanceRecord{UserID: "u1", Date: "2024-06-03", Username: "alice", TotalBreakMinutes: 30}
	if err := s.Put(second); err != nil {
		t.Fatal(err)
	}

	if s.Count() != 1 {
		t.Errorf("count = %d, want 1", s.Count())
	}
	if got := s.Get("u1", "2024-06-03"); got.TotalBreakMinutes != 30 {
		t.Errorf("record not replaced: %+v", got)
	}
}
