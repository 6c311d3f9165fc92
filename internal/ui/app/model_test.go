package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	bookmarkdto "miftah/internal/modules/bookmark/dto"
	progressdto "miftah/internal/modules/progress/dto"
	sessiondto "miftah/internal/modules/session/dto"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/ui/components"
)

type fakeProgress struct {
	updated [2]int
	goal    int
}

func (f *fakeProgress) UpdateProgress(_ context.Context, surah, ayah int) error {
	f.updated = [2]int{surah, ayah}
	return nil
}
func (f *fakeProgress) MarkSurahCompleted(context.Context, int) error { return nil }
func (f *fakeProgress) SetDailyGoal(_ context.Context, goal int) error {
	if goal < 1 || goal > 100 {
		return apperrors.ErrInvalidInput
	}
	f.goal = goal
	return nil
}
func (f *fakeProgress) GetProgress(context.Context) progressdto.ProgressOutput {
	return progressdto.ProgressOutput{LastSurah: f.updated[0], LastAyah: f.updated[1], DailyGoal: f.goal}
}
func (f *fakeProgress) ListSessions(context.Context) ([]progressdto.SessionOutput, error) {
	return nil, nil
}
func (f *fakeProgress) Today(context.Context) (progressdto.TodayStatsOutput, error) {
	return progressdto.TodayStatsOutput{}, nil
}
func (f *fakeProgress) Week(context.Context) (progressdto.WeeklyStatsOutput, error) {
	return progressdto.WeeklyStatsOutput{}, nil
}
func (f *fakeProgress) Overview(context.Context) (progressdto.OverviewOutput, error) {
	return progressdto.OverviewOutput{}, nil
}

type fakeSession struct{}

func (fakeSession) Start(_ context.Context, surah, ayah int) (sessiondto.StartOutput, error) {
	return sessiondto.StartOutput{SessionID: "s1", SurahNumber: surah, StartAyah: ayah}, nil
}
func (fakeSession) End(context.Context, int) (sessiondto.EndOutput, error) {
	return sessiondto.EndOutput{}, apperrors.ErrNoActiveSession
}
func (fakeSession) GetActive(context.Context) (sessiondto.ActiveSessionOutput, error) {
	return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
}

type fakeBookmarks struct {
	saved []bookmarkdto.BookmarkOutput
}

func (f *fakeBookmarks) Add(_ context.Context, surah, ayah int, name, notes string) (bookmarkdto.AddOutput, error) {
	b := bookmarkdto.BookmarkOutput{SurahNumber: surah, AyahNumber: ayah, SurahName: name, Notes: notes}
	f.saved = append(f.saved, b)
	return bookmarkdto.AddOutput{Bookmark: b, Added: true}, nil
}
func (f *fakeBookmarks) Remove(_ context.Context, surah, ayah int) (bool, error) {
	for i, b := range f.saved {
		if b.SurahNumber == surah && b.AyahNumber == ayah {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeBookmarks) ListBookmarks(context.Context) ([]bookmarkdto.BookmarkOutput, error) {
	return f.saved, nil
}
func (f *fakeBookmarks) Clear(context.Context) error {
	f.saved = nil
	return nil
}

// submit runs a palette command and feeds the resulting message back in.
func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	m = next.(Model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestPaletteUpdatesProgress(t *testing.T) {
	t.Parallel()
	progress := &fakeProgress{}
	m := NewModel(progress, fakeSession{}, &fakeBookmarks{})

	m = submit(t, m, "progress:update 2 255")
	if progress.updated != [2]int{2, 255} {
		t.Fatalf("expected position 2:255, got %v", progress.updated)
	}
	if m.status != "position set to 2:255" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPaletteReportsInvalidGoal(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeProgress{}, fakeSession{}, &fakeBookmarks{})

	m = submit(t, m, "goal:set 500")
	if !strings.Contains(m.status, apperrors.ErrInvalidInput.Error()) {
		t.Fatalf("expected validation error in status, got %q", m.status)
	}
	m = submit(t, m, "goal:set lots")
	if !strings.Contains(m.status, "not a number") {
		t.Fatalf("expected parse error, got %q", m.status)
	}
	m = submit(t, m, "goal:set")
	if m.status != "usage: goal:set <verses>" {
		t.Fatalf("expected usage, got %q", m.status)
	}
}

func TestPaletteSessionCommands(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeProgress{}, fakeSession{}, &fakeBookmarks{})

	m = submit(t, m, "session:start 36 1")
	if !m.hasActive || m.activeSession.SurahNumber != 36 {
		t.Fatalf("expected active session on surah 36, got %+v", m.activeSession)
	}
	m = submit(t, m, "session:end 20")
	if !strings.HasPrefix(m.status, "session end failed") || !m.hasActive {
		t.Fatalf("failed end should keep the session indicator, status %q", m.status)
	}
	m = submit(t, m, "bogus")
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestTabCyclingAndQuit(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeProgress{}, fakeSession{}, &fakeBookmarks{})
	for i := 0; i < int(tabCount); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
	}
	if m.activeTab != tabStats {
		t.Fatalf("tab should wrap around, got %d", m.activeTab)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestActiveSessionCheckIgnoresMissingSession(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeProgress{}, fakeSession{}, &fakeBookmarks{})
	next, _ := m.Update(activeLoadedMsg{err: apperrors.ErrNoActiveSession})
	m = next.(Model)
	if m.status != "ready" {
		t.Fatalf("missing session should not change status, got %q", m.status)
	}
	next, _ = m.Update(activeLoadedMsg{err: errors.New("disk")})
	if got := next.(Model).status; got != "active session check: disk" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestPaletteBookmarkCommands(t *testing.T) {
	t.Parallel()
	bookmarks := &fakeBookmarks{}
	m := NewModel(&fakeProgress{}, fakeSession{}, bookmarks)

	m = submit(t, m, "bookmark:add 2 255 the throne verse")
	if len(bookmarks.saved) != 1 || bookmarks.saved[0].Notes != "the throne verse" {
		t.Fatalf("expected one bookmark with its note, got %+v", bookmarks.saved)
	}
	if m.status != "bookmarked 2:255" {
		t.Fatalf("unexpected status %q", m.status)
	}

	next, _ := m.Update(m.bookmarksView.Refresh()())
	m = next.(Model)
	if m.bookmarksView.Count() != 1 {
		t.Fatalf("bookmarks tab should list the new bookmark, got %d", m.bookmarksView.Count())
	}

	m = submit(t, m, "bookmark:add 2")
	if m.status != "usage: bookmark:add <surah> <ayah> [note]" {
		t.Fatalf("expected usage, got %q", m.status)
	}
	m = submit(t, m, "bookmark:remove 2 255")
	if len(bookmarks.saved) != 0 || m.status != "bookmark 2:255 removed" {
		t.Fatalf("remove failed: %+v status %q", bookmarks.saved, m.status)
	}
	bookmarks.saved = append(bookmarks.saved, bookmarkdto.BookmarkOutput{SurahNumber: 1, AyahNumber: 1})
	m = submit(t, m, "bookmark:clear")
	if len(bookmarks.saved) != 0 || m.status != "bookmarks cleared" {
		t.Fatalf("clear failed: %+v status %q", bookmarks.saved, m.status)
	}
}
