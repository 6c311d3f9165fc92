package usecase_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	progressinadapter "miftah/internal/modules/progress/adapter/in"
	progressout "miftah/internal/modules/progress/adapter/out"
	"miftah/internal/modules/progress/domain"
	"miftah/internal/modules/progress/dto"
	"miftah/internal/modules/progress/service"
	"miftah/internal/modules/progress/usecase"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func newHandler(t *testing.T) progressinadapter.CLIHandler {
	t.Helper()
	loc := time.FixedZone("UTC+3", 3*60*60)
	clk := fixedClock{now: time.Date(2026, 5, 2, 21, 30, 0, 0, time.UTC)}
	store, err := progressout.NewSQLiteKeyValueStore(filepath.Join(t.TempDir(), "miftah.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	tracker, err := service.NewTracker(context.Background(), clk, store, service.Options{Location: loc, DefaultDailyGoal: 10})
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return progressinadapter.NewCLIHandler(usecase.NewInteractor(tracker, progressout.NewMarkdownReportWriter()))
}

func TestHandlerRoundTripOverSQLite(t *testing.T) {
	t.Parallel()
	h := newHandler(t)
	ctx := context.Background()

	if err := h.UpdateProgress(ctx, 18, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := h.RecordSession(ctx, 18, 1, 10, 0, 10); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.MarkSurahCompleted(ctx, 18); err != nil {
		t.Fatalf("complete: %v", err)
	}

	p := h.GetProgress(ctx)
	if p.TotalReadingTime != 1 {
		t.Fatalf("sub-minute session should count as 1 minute, got %d", p.TotalReadingTime)
	}
	if len(p.CompletedSurahs) != 1 || p.CompletedSurahs[0] != 18 {
		t.Fatalf("unexpected completed surahs %v", p.CompletedSurahs)
	}

	sessions, err := h.ListSessions(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one session, got %v %v", sessions, err)
	}
	if sessions[0].Date.Hour() != 0 || sessions[0].Date.Day() != 3 {
		t.Fatalf("session date should be shown in the tracker zone, got %s", sessions[0].Date)
	}

	today, err := h.Today(ctx)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today != (dto.TodayStatsOutput{VersesRead: 10, TimeSpent: 1, GoalProgress: 100, SessionsCount: 1}) {
		t.Fatalf("unexpected today stats %+v", today)
	}
	week, err := h.Week(ctx)
	if err != nil || week.DaysRead != 1 || week.AverageTime != 1 {
		t.Fatalf("unexpected week stats %+v (%v)", week, err)
	}
}

func TestHandlerOverviewAndExport(t *testing.T) {
	t.Parallel()
	h := newHandler(t)
	ctx := context.Background()
	for s := 110; s <= 114; s++ {
		_ = h.MarkSurahCompleted(ctx, s)
	}
	overview, err := h.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.CompletedCount != 5 || len(overview.Achievements) != 1 || overview.Achievements[0] != "Chapter Champion" {
		t.Fatalf("unexpected overview %+v", overview)
	}

	path := filepath.Join(t.TempDir(), "progress.md")
	out, err := h.Export(ctx, path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Path != path || !strings.Contains(out.Content, "Completed surahs: 5/114") {
		t.Fatalf("unexpected export output: %+v", out)
	}
}

func TestHandlerRejectsInvalidGoal(t *testing.T) {
	t.Parallel()
	h := newHandler(t)
	if err := h.SetDailyGoal(context.Background(), 500); err == nil {
		t.Fatalf("goal above 100 must be rejected")
	}
}

func TestListSessionsSkipsUndatedEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := progressout.NewMemoryKeyValueStore()
	_ = store.Set(ctx, domain.SessionsKey, `[{"date":"yesterday-ish","surahNumber":2,"versesRead":4,"duration":3},`+
		`{"date":"2026-05-02T20:00:00.000Z","surahNumber":3,"startAyah":1,"endAyah":5,"versesRead":5,"duration":6}]`)
	tracker, err := service.NewTracker(ctx, fixedClock{now: time.Date(2026, 5, 2, 21, 30, 0, 0, time.UTC)}, store, service.Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	h := progressinadapter.NewCLIHandler(usecase.NewInteractor(tracker, progressout.NewMarkdownReportWriter()))

	sessions, err := h.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SurahNumber != 3 {
		t.Fatalf("entries without a readable date should be skipped, got %+v", sessions)
	}
	today, _ := h.Today(ctx)
	if today.VersesRead != 5 {
		t.Fatalf("listing and stats should agree on the log, got %+v", today)
	}
}
