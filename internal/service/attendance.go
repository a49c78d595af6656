package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/model"
	"github.com/Morrowga/discordbot/internal/store"
)

// Transition rejections. These carry no state change; the handler maps
// them to localized replies.
var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("not checked in today")
	ErrAlreadyOnBreak   = errors.New("already on break")
	ErrNotOnBreak       = errors.New("not on break")
	ErrAlreadyFinished  = errors.New("already checked out today")
	ErrNotFound         = errors.New("no attendance record")
)

// AttendanceService validates and applies lifecycle transitions against
// the record store. A single mutex serializes all transitions: two
// commands for the same user-day must never interleave.
type AttendanceService struct {
	store *store.RecordStore
	loc   *time.Location
	log   *zap.Logger
	mu    sync.Mutex
}

func NewAttendanceService(store *store.RecordStore, loc *time.Location, log *zap.Logger) *AttendanceService {
	return &AttendanceService{store: store, loc: loc, log: log}
}

// Apply validates the transition against the user's record for the day
// of `at`, mutates it, and persists before returning. A persistence
// failure is logged but does not fail the transition; the in-memory
// state stands and may be lost on crash.
func (s *AttendanceService) Apply(_ context.Context, userID, username string, kind model.TransitionKind, at time.Time, note string) (*model.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at = at.In(s.loc)
	date := at.Format(time.DateOnly)
	record := s.store.Get(userID, date)

	result := &model.TransitionResult{Kind: kind, At: at, Note: note}

	switch kind {
	case model.TransitionCheckIn:
		if record != nil && record.CheckIn != nil {
			return nil, ErrAlreadyCheckedIn
		}
		record = &model.AttendanceRecord{
			UserID:    userID,
			Username:  username,
			Date:      date,
			CheckIn:   &at,
			CreatedAt: at,
		}
		if note != "" {
			record.Reports = map[string]string{model.ReportCheckIn: note}
		}

	case model.TransitionBreakStart:
		if record == nil || record.CheckIn == nil {
			return nil, ErrNotCheckedIn
		}
		switch record.Status() {
		case model.AttendanceStatusFinished:
			return nil, ErrAlreadyFinished
		case model.AttendanceStatusBreak:
			return nil, ErrAlreadyOnBreak
		}
		record.Breaks = append(record.Breaks, model.BreakInterval{Start: at, Note: note})

	case model.TransitionBreakEnd:
		if record == nil || record.CheckIn == nil {
			return nil, ErrNotCheckedIn
		}
		if record.Status() != model.AttendanceStatusBreak {
			return nil, ErrNotOnBreak
		}
		result.BreakMinutes = closeBreak(record.OpenBreak(), at, note)

	case model.TransitionCheckOut:
		if record == nil || record.CheckIn == nil {
			return nil, ErrNotCheckedIn
		}
		if record.Status() == model.AttendanceStatusFinished {
			return nil, ErrAlreadyFinished
		}
		if open := record.OpenBreak(); open != nil {
			result.BreakMinutes = closeBreak(open, at, "")
		}
		record.CheckOut = &at
		for _, b := range record.Breaks {
			record.TotalBreakMinutes += b.DurationMinutes
		}
		elapsed := at.Sub(*record.CheckIn).Hours()
		record.TotalWorkHours = round2(elapsed - float64(record.TotalBreakMinutes)/60)
		if note != "" {
			if record.Reports == nil {
				record.Reports = map[string]string{}
			}
			record.Reports[model.ReportCheckOut] = note
		}

	default:
		return nil, fmt.Errorf("unknown transition %q", kind)
	}

	record.UpdatedAt = at
	// Snapshot before the mutex is released. The handler renders the
	// result concurrently with later transitions for the same user-day.
	result.Record = record.Clone()

	if err := s.store.Put(record); err != nil {
		// Known durability gap: the in-memory transition stands, so a
		// crash before the next successful save loses it.
		s.log.Error("persist attendance record",
			zap.String("user_id", userID),
			zap.String("date", date),
			zap.String("transition", string(kind)),
			zap.Error(err))
	}

	s.log.Info("attendance transition",
		zap.String("user_id", userID),
		zap.String("username", username),
		zap.String("date", date),
		zap.String("transition", string(kind)))
	return result, nil
}

// Status returns a copy of the user's record for the day of `at`
// without mutating anything. ErrNotFound means the user has not started
// that day.
func (s *AttendanceService) Status(userID string, at time.Time) (*model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.store.Get(userID, at.In(s.loc).Format(time.DateOnly))
	if record == nil {
		return nil, ErrNotFound
	}
	return record.Clone(), nil
}

// closeBreak sets the break's end and rounded duration, exactly once.
func closeBreak(b *model.BreakInterval, end time.Time, returnNote string) int {
	b.End = &end
	b.DurationMinutes = int(end.Sub(b.Start).Round(time.Minute) / time.Minute)
	if returnNote != "" {
		b.ReturnNote = returnNote
	}
	return b.DurationMinutes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
