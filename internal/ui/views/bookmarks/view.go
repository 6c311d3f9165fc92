package bookmarks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookmarkdto "miftah/internal/modules/bookmark/dto"
	"miftah/internal/ui/theme"
)

type BookmarksPort interface {
	ListBookmarks(ctx context.Context) ([]bookmarkdto.BookmarkOutput, error)
}

type LoadedMsg struct {
	Bookmarks []bookmarkdto.BookmarkOutput
	Err       error
}

type bookmarkItem struct {
	bookmark bookmarkdto.BookmarkOutput
}

func (i bookmarkItem) Title() string {
	b := i.bookmark
	if b.SurahName != "" {
		return fmt.Sprintf("%s %d:%d", b.SurahName, b.SurahNumber, b.AyahNumber)
	}
	return fmt.Sprintf("Surah %d:%d", b.SurahNumber, b.AyahNumber)
}

func (i bookmarkItem) Description() string {
	b := i.bookmark
	desc := b.BookmarkedAt.Local().Format("02 Jan 2006")
	if b.Notes != "" {
		desc += "  " + b.Notes
	}
	return desc
}

func (i bookmarkItem) FilterValue() string {
	b := i.bookmark
	return fmt.Sprintf("%d:%d %s %s", b.SurahNumber, b.AyahNumber, b.SurahName, b.Notes)
}

// Model lists saved verses with the selected bookmark's note alongside.
type Model struct {
	port   BookmarksPort
	list   list.Model
	detail viewport.Model
	loaded bool
	width  int
	height int
}

func New(port BookmarksPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Peach).BorderForeground(theme.Peach)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Subtext0).BorderForeground(theme.Peach)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Bookmarks"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("bookmark", "bookmarks")

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		bookmarks, err := m.port.ListBookmarks(context.Background())
		return LoadedMsg{Bookmarks: bookmarks, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height)
		m.detail.Width = m.width - m.width/2 - 4
		m.detail.Height = m.height - 4
		return m, nil

	case LoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.list.Title = "Bookmarks: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Bookmarks"
		items := make([]list.Item, 0, len(msg.Bookmarks))
		for _, b := range msg.Bookmarks {
			items = append(items, bookmarkItem{bookmark: b})
		}
		cmd := m.list.SetItems(items)
		m.detail.SetContent(m.renderDetail())
		return m, cmd
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	return m, cmd
}

func (m Model) View() string {
	listW := m.width / 2
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Width(max(0, m.width-listW-2)).
		Height(max(0, m.height-2)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Count is the number of bookmarks currently shown.
func (m Model) Count() int { return len(m.list.Items()) }

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(bookmarkItem)
	if !ok {
		if m.loaded {
			return theme.Muted.Render("No bookmarks yet.\nUse : bookmark:add <surah> <ayah> to save a verse.")
		}
		return ""
	}
	b := item.bookmark
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(item.Title()) + "\n\n")
	sb.WriteString(theme.Muted.Render("saved: ") + b.BookmarkedAt.Local().Format("Monday 02 January 2006 15:04") + "\n")
	if b.Notes != "" {
		sb.WriteString("\n" + b.Notes + "\n")
	}
	return sb.String()
}
