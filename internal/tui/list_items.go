package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"artes-cli/internal/model"
)

type activityRowItem struct {
	activity model.Activity
	expanded bool
	now      time.Time
}

func (i activityRowItem) FilterValue() string {
	return strings.TrimSpace(i.activity.Title)
}

func (i activityRowItem) Title() string {
	a := i.activity

	twisty := "▸"
	if i.expanded {
		twisty = "▾"
	}

	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = "(sin título)"
	}

	parts := []string{
		twisty,
		statusStyle(a.Status).Render("[" + string(a.Status) + "]"),
		title,
	}

	var due *time.Time
	if a.DueDate != nil {
		t := a.DueDate.Time
		due = &t
	}
	d := model.ClassifyDeadline(i.now, due)
	if d.Kind != model.DeadlineNone {
		parts = append(parts, deadlineStyle(d.Kind).Render(d.Label()))
	}
	if s := strings.TrimSpace(a.AssignedTo); s != "" {
		parts = append(parts, styleMuted().Render("→ "+s))
	}

	return strings.Join(parts, " ")
}

func (i activityRowItem) Description() string { return "" }

type collaboratorItem struct {
	user model.User
}

func (i collaboratorItem) FilterValue() string { return i.user.Username }
func (i collaboratorItem) Title() string {
	label := i.user.DisplayName()
	if i.user.IsAdmin() {
		label += " " + styleMuted().Render("(admin)")
	}
	return label
}
func (i collaboratorItem) Description() string { return "" }

type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Pagination is server-side; the bubble list only ever holds one page.
	l.SetFilteringEnabled(false)
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	// Emacs-style navigation aliases.
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

func selectActivityByID(l *list.Model, id int) {
	for i, it := range l.Items() {
		if row, ok := it.(activityRowItem); ok && row.activity.ID == id {
			l.Select(i)
			return
		}
	}
}
