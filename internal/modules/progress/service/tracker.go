package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"miftah/internal/modules/progress/domain"
	progressout "miftah/internal/modules/progress/port/out"
	"miftah/internal/platform/clock"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/platform/logging"
)

type Options struct {
	// Location defines calendar days; nil means time.Local.
	Location         *time.Location
	DefaultDailyGoal int
	Logger           hclog.Logger
}

// Tracker owns the reading-progress record and the session log. One Tracker
// is created per process and shared by every consumer. Mutations are staged
// on a copy and only become visible once the store accepted the write.
// Before each mutation the stored record is re-read, so a long-running
// process does not overwrite changes another process made meanwhile.
type Tracker struct {
	mu          sync.Mutex
	clock       clock.Clock
	store       progressout.KeyValueStore
	loc         *time.Location
	log         hclog.Logger
	defaultGoal int
	progress    domain.ReadingProgress
	// raw is the stored record progress was last read from or written as.
	raw string
}

func NewTracker(ctx context.Context, clock clock.Clock, store progressout.KeyValueStore, opts Options) (*Tracker, error) {
	t := &Tracker{
		clock:       clock,
		store:       store,
		loc:         opts.Location,
		log:         opts.Logger,
		defaultGoal: opts.DefaultDailyGoal,
	}
	if t.loc == nil {
		t.loc = time.Local
	}
	if t.log == nil {
		t.log = logging.Discard()
	}
	t.log = t.log.Named("progress")
	if err := t.load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) Location() *time.Location { return t.loc }

func (t *Tracker) UpdateProgress(ctx context.Context, surahNumber, ayahNumber int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		return err
	}

	next := t.progress.Clone()
	next.RecordVisit(surahNumber, ayahNumber, t.clock.Now(), t.loc)
	return t.commit(ctx, next)
}

// AddReadingSession appends a session dated now, prunes the log to the
// retention window and adds the duration to the total reading time.
func (t *Tracker) AddReadingSession(ctx context.Context, session domain.ReadingSession) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		return err
	}

	now := t.clock.Now()
	next := t.progress.Clone()
	next.AddReadingTime(session.Duration)
	return t.appendSession(ctx, session, next, now)
}

// FinishSession moves the position to the session's end ayah and logs the
// session as a single change: either both land or neither does.
func (t *Tracker) FinishSession(ctx context.Context, session domain.ReadingSession) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		return err
	}

	now := t.clock.Now()
	next := t.progress.Clone()
	next.RecordVisit(session.SurahNumber, session.EndAyah, now, t.loc)
	next.AddReadingTime(session.Duration)
	return t.appendSession(ctx, session, next, now)
}

// appendSession writes the log first and the progress record second. If the
// record write fails the previous log is put back.
func (t *Tracker) appendSession(ctx context.Context, session domain.ReadingSession, next domain.ReadingProgress, now time.Time) error {
	prevRaw, hadLog, err := t.store.Get(ctx, domain.SessionsKey)
	if err != nil {
		return fmt.Errorf("load reading sessions: %w", err)
	}
	sessions := t.decodeSessions(prevRaw, hadLog)
	session.Date = domain.FormatTimestamp(now)
	sessions = domain.PruneSessions(append(sessions, session), now, t.loc, domain.SessionRetentionDays)
	if err := t.saveSessions(ctx, sessions); err != nil {
		return err
	}

	if err := t.commit(ctx, next); err != nil {
		if rerr := t.restoreSessions(ctx, prevRaw, hadLog); rerr != nil {
			t.log.Error("session log rollback failed", "key", domain.SessionsKey, "error", rerr)
			return errors.Join(err, rerr)
		}
		t.log.Warn("progress write failed, session log rolled back", "error", err)
		return err
	}
	return nil
}

func (t *Tracker) restoreSessions(ctx context.Context, raw string, existed bool) error {
	if !existed {
		return t.store.Remove(ctx, domain.SessionsKey)
	}
	return t.store.Set(ctx, domain.SessionsKey, raw)
}

func (t *Tracker) MarkSurahCompleted(ctx context.Context, surahNumber int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		return err
	}

	next := t.progress.Clone()
	if !next.MarkCompleted(surahNumber) {
		return nil
	}
	return t.commit(ctx, next)
}

func (t *Tracker) SetDailyGoal(ctx context.Context, goal int) error {
	if !domain.ValidateDailyGoal(goal) {
		return fmt.Errorf("daily goal must be between %d and %d, got %d: %w", domain.MinDailyGoal, domain.MaxDailyGoal, goal, apperrors.ErrInvalidInput)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		return err
	}

	next := t.progress.Clone()
	next.DailyGoal = goal
	return t.commit(ctx, next)
}

// GetProgress returns a snapshot; changing it does not affect the tracker.
func (t *Tracker) GetProgress() domain.ReadingProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress.Clone()
}

// Current is GetProgress after picking up writes another process made to the
// store. A failed read is logged and the cached record returned.
func (t *Tracker) Current(ctx context.Context) domain.ReadingProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.sync(ctx); err != nil {
		t.log.Warn("progress reload failed, using cached record", "error", err)
	}
	return t.progress.Clone()
}

func (t *Tracker) GetReadingSessions(ctx context.Context) ([]domain.ReadingSession, error) {
	return t.loadSessions(ctx)
}

func (t *Tracker) TodayStats(ctx context.Context) (domain.TodayStats, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return domain.TodayStats{}, err
	}
	return domain.ComputeTodayStats(t.Current(ctx), sessions, t.clock.Now(), t.loc), nil
}

func (t *Tracker) WeeklyStats(ctx context.Context) (domain.WeeklyStats, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return domain.WeeklyStats{}, err
	}
	return domain.ComputeWeeklyStats(sessions, t.clock.Now(), t.loc), nil
}

// Report gathers every derived view from a single read of the log and one
// instant, so the sections agree with each other.
func (t *Tracker) Report(ctx context.Context) (domain.Report, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	now := t.clock.Now()
	progress := t.Current(ctx)
	weekly := domain.ComputeWeeklyStats(sessions, now, t.loc)
	return domain.Report{
		GeneratedAt: now,
		Progress:    progress,
		Today:       domain.ComputeTodayStats(progress, sessions, now, t.loc),
		Weekly:      weekly,
		Overview:    domain.BuildOverview(progress, weekly),
	}, nil
}

func (t *Tracker) load(ctx context.Context) error {
	t.progress = domain.DefaultProgress(t.defaultGoal)
	return t.sync(ctx)
}

// sync replaces the cached record when the stored one changed since it was
// last read or written. An absent record keeps the cache; an unreadable one
// is logged once and also keeps it.
func (t *Tracker) sync(ctx context.Context) error {
	raw, ok, err := t.store.Get(ctx, domain.ProgressKey)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if !ok || raw == t.raw {
		return nil
	}
	t.raw = raw
	loaded := domain.DefaultProgress(t.defaultGoal)
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		t.log.Warn("progress record unreadable, keeping current state", "key", domain.ProgressKey, "error", err)
		return nil
	}
	loaded.Normalize()
	t.progress = loaded
	return nil
}

// loadSessions fails only when the store does. A corrupt log reads as empty.
func (t *Tracker) loadSessions(ctx context.Context) ([]domain.ReadingSession, error) {
	raw, ok, err := t.store.Get(ctx, domain.SessionsKey)
	if err != nil {
		return nil, fmt.Errorf("load reading sessions: %w", err)
	}
	return t.decodeSessions(raw, ok), nil
}

func (t *Tracker) decodeSessions(raw string, ok bool) []domain.ReadingSession {
	if !ok {
		return []domain.ReadingSession{}
	}
	sessions := []domain.ReadingSession{}
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		t.log.Warn("session log unreadable, treating as empty", "key", domain.SessionsKey, "error", err)
		return []domain.ReadingSession{}
	}
	if sessions == nil {
		sessions = []domain.ReadingSession{}
	}
	return sessions
}

func (t *Tracker) saveSessions(ctx context.Context, sessions []domain.ReadingSession) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal reading sessions: %w", err)
	}
	if err := t.store.Set(ctx, domain.SessionsKey, string(payload)); err != nil {
		return fmt.Errorf("save reading sessions: %w", err)
	}
	t.log.Debug("session log saved", "entries", len(sessions))
	return nil
}

func (t *Tracker) commit(ctx context.Context, next domain.ReadingProgress) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := t.store.Set(ctx, domain.ProgressKey, string(payload)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	t.progress = next
	t.raw = string(payload)
	t.log.Debug("progress saved", "surah", next.LastSurah, "ayah", next.LastAyah, "streak", next.Streak)
	return nil
}
