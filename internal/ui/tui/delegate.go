package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hws_news/internal/fetcher"
	"hws_news/internal/models"
	"hws_news/internal/reltime"
)

const (
	thumbWidth  = 10
	thumbHeight = 3
	rowHeight   = thumbHeight + 2
	maxLines    = 2
)

type thumbStatus int

const (
	thumbLoading thumbStatus = iota
	thumbLoaded
	thumbFailed
)

type thumb struct {
	status thumbStatus
	info   fetcher.ImageInfo
}

type storyItem struct {
	models.NewsItem
}

func (s storyItem) FilterValue() string { return s.Title }

// storyDelegate рисует строку статьи: слева миниатюра, справа заголовок,
// подзаголовок и возраст публикации.
type storyDelegate struct {
	theme   Theme
	thumbs  map[int]thumb
	spinner string
	format  *reltime.Formatter
	now     time.Time
}

func (d storyDelegate) Height() int  { return rowHeight }
func (d storyDelegate) Spacing() int { return 1 }

func (d storyDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d storyDelegate) Render(w io.Writer, m list.Model, index int, it list.Item) {
	s, ok := it.(storyItem)
	if !ok {
		return
	}

	textWidth := m.Width() - thumbWidth - 6
	if textWidth < 10 {
		textWidth = 10
	}

	wrap := lipgloss.NewStyle().Width(textWidth)
	title := clampLines(wrap.Render(d.theme.Headline.Render(s.Title)), maxLines)
	strap := clampLines(wrap.Render(d.theme.Strap.Render(s.Strap)), maxLines)
	age := d.theme.Age.Render(d.format.Format(s.PublishedDate, d.now))

	text := lipgloss.JoinVertical(lipgloss.Left, title, strap, age)
	row := lipgloss.JoinHorizontal(lipgloss.Top, d.renderThumb(s.ID), " ", text)

	style := d.theme.Normal
	if index == m.Index() {
		style = d.theme.Selected
	}
	fmt.Fprint(w, style.Render(row))
}

func (d storyDelegate) renderThumb(id int) string {
	t, ok := d.thumbs[id]
	var content string
	switch {
	case !ok || t.status == thumbLoading:
		content = d.spinner
	case t.status == thumbFailed:
		content = "✕"
	default:
		content = strings.ToUpper(t.info.Format) + "\n" +
			clampString(fmt.Sprintf("%d×%d", t.info.Width, t.info.Height), thumbWidth)
	}
	return d.theme.Thumb.Render(content)
}
