package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hws_news/internal/logger"
	"hws_news/internal/reltime"
)

type model struct {
	theme Theme
	deps  Deps

	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	list    list.Model
	spinner spinner.Model
	thumbs  map[int]thumb
	loading bool
	width   int
}

// Run показывает экран новостей до выхода пользователя. Выход отменяет
// незавершённые загрузки.
func Run(ctx context.Context, deps Deps) error {
	m := newModel(ctx, deps)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, deps Deps) model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Formatter == nil {
		deps.Formatter, _ = reltime.New("en")
	}
	t := DefaultTheme()

	s := spinner.New()
	s.Spinner = spinner.Dot

	l := list.New(nil, storyDelegate{}, 0, 0)
	l.Title = deps.Title
	l.Styles.Title = t.Title
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("story", "stories")
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ctx, cancel := context.WithCancel(ctx)
	m := model{
		theme:   t,
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan tea.Msg),
		list:    l,
		spinner: s,
		thumbs:  make(map[int]thumb),
		loading: true,
	}
	m.list.SetDelegate(m.delegate())
	return m
}

// Init запускает единственную загрузку экрана.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		startLoad(m.ctx, m.deps.Loader, m.events),
		listenLoad(m.events),
		m.spinner.Tick,
		m.list.StartSpinner(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			return m, tea.Quit
		case "enter", "o":
			if s, ok := m.list.SelectedItem().(storyItem); ok && m.deps.OpenURL != nil {
				return m, openLink(m.deps.OpenURL, s.URL.String())
			}
			return m, nil
		}

	case storiesUpdatedMsg:
		cmds = append(cmds, m.applyUpdate(msg), listenLoad(m.events))

	case loadDoneMsg:
		m.loading = false
		m.list.StopSpinner()
		if msg.err != nil {
			logger.Log.WithError(msg.err).Warn("Stories loaded with errors")
		}

	case thumbLoadedMsg:
		t := thumb{status: thumbLoaded, info: msg.info}
		if msg.err != nil {
			t.status = thumbFailed
			logger.Log.WithError(msg.err).WithField("id", msg.id).Debug("Thumbnail failed")
		}
		m.thumbs[msg.id] = t

	case linkOpenedMsg:
		if msg.err != nil {
			logger.Log.WithError(msg.err).WithField("url", msg.url).Error("Failed to open link")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.list.SetDelegate(m.delegate())

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// applyUpdate заменяет строки объединённым снимком и запускает загрузку
// миниатюры для каждой новой статьи.
func (m *model) applyUpdate(u storiesUpdatedMsg) tea.Cmd {
	rows := make([]list.Item, 0, len(u.Items))
	var loads []tea.Cmd
	for _, it := range u.Items {
		rows = append(rows, storyItem{NewsItem: it})
		if _, seen := m.thumbs[it.ID]; seen {
			continue
		}
		m.thumbs[it.ID] = thumb{status: thumbLoading}
		if m.deps.Images != nil {
			loads = append(loads, loadThumb(m.ctx, m.deps.Images, it.ID, it.MainImage.String()))
		}
	}

	logger.Log.WithFields(logger.Fields{
		"page":  u.Page,
		"added": u.Added,
		"total": len(u.Items),
	}).Debug("Stories updated")

	return tea.Batch(append(loads, m.list.SetItems(rows))...)
}

func (m model) delegate() storyDelegate {
	return storyDelegate{
		theme:   m.theme,
		thumbs:  m.thumbs,
		spinner: m.spinner.View(),
		format:  m.deps.Formatter,
		now:     m.deps.Now(),
	}
}

func (m model) View() string {
	help := m.theme.Help.Render("↑/↓ scroll • enter open in browser • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)
}
