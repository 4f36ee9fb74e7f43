package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"hws_news/internal/feed"
	"hws_news/internal/fetcher"
	"hws_news/internal/models"
	"hws_news/internal/reltime"
)

var fixedNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

type fakeLoader struct {
	updates []feed.Update
	err     error
	calls   int
	ctx     context.Context
}

func (f *fakeLoader) Run(ctx context.Context, onUpdate func(feed.Update)) ([]models.NewsItem, error) {
	f.calls++
	f.ctx = ctx
	var last []models.NewsItem
	for _, u := range f.updates {
		onUpdate(u)
		last = u.Items
	}
	return last, f.err
}

type fakeImages struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeImages) FetchImage(_ context.Context, rawURL string) (fetcher.ImageInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, rawURL)
	return fetcher.ImageInfo{Format: "jpeg", Width: 640, Height: 480}, nil
}

func story(id int, title, strap string, published time.Time) models.NewsItem {
	return models.NewsItem{
		ID:            id,
		Title:         title,
		Strap:         strap,
		URL:           models.MustParseURL("https://example.com/story/" + title),
		MainImage:     models.MustParseURL("https://example.com/img/" + title + ".jpg"),
		PublishedDate: published,
	}
}

func newTestModel(t *testing.T, deps Deps) model {
	t.Helper()
	f, err := reltime.New("en")
	require.NoError(t, err)
	if deps.Formatter == nil {
		deps.Formatter = f
	}
	deps.Now = func() time.Time { return fixedNow }
	deps.Title = "HWS News"

	m := newModel(context.Background(), deps)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(model)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func rowTitles(m model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(storyItem).Title)
	}
	return out
}

func TestStartLoad_ForwardsUpdatesThenDone(t *testing.T) {
	loader := &fakeLoader{
		updates: []feed.Update{
			{Page: 2, Added: 1, Items: []models.NewsItem{story(2, "b", "", fixedNow)}},
			{Page: 1, Added: 1, Items: []models.NewsItem{story(2, "b", "", fixedNow), story(1, "a", "", fixedNow.Add(-time.Hour))}},
		},
		err: errors.New("page 3: decode error"),
	}
	ch := make(chan tea.Msg)

	require.Nil(t, startLoad(context.Background(), loader, ch)())

	var msgs []tea.Msg
	for msg := range ch {
		msgs = append(msgs, msg)
	}
	require.Len(t, msgs, 3)
	require.IsType(t, storiesUpdatedMsg{}, msgs[0])
	require.IsType(t, storiesUpdatedMsg{}, msgs[1])
	require.Equal(t, loadDoneMsg{err: loader.err}, msgs[2])
	require.Equal(t, 1, loader.calls)
}

func TestStartLoad_StopsWhenCanceled(t *testing.T) {
	loader := &fakeLoader{updates: []feed.Update{{Page: 1}}}
	ch := make(chan tea.Msg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	startLoad(ctx, loader, ch)()

	select {
	case _, ok := <-ch:
		// отправка может успеть раньше ctx.Done, канал всё равно должен закрыться
		for ok {
			_, ok = <-ch
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loader goroutine did not finish")
	}
}

func TestUpdate_StoriesReplaceRowsAndLoadThumbs(t *testing.T) {
	images := &fakeImages{}
	m := newTestModel(t, Deps{Loader: &fakeLoader{}, Images: images})

	first := storiesUpdatedMsg{Page: 3, Added: 1, Items: []models.NewsItem{
		story(1, "older", "s", fixedNow.Add(-2*time.Hour)),
	}}
	m, cmd := update(t, m, first)
	require.NotNil(t, cmd)
	require.Equal(t, []string{"older"}, rowTitles(m))
	require.Equal(t, thumbLoading, m.thumbs[1].status)

	second := storiesUpdatedMsg{Page: 1, Added: 1, Items: []models.NewsItem{
		story(2, "newer", "s", fixedNow.Add(-time.Hour)),
		story(1, "older", "s", fixedNow.Add(-2*time.Hour)),
	}}
	m, _ = update(t, m, second)
	require.Equal(t, []string{"newer", "older"}, rowTitles(m))
	require.Len(t, m.thumbs, 2)

	cmd = loadThumb(context.Background(), images, 2, "https://example.com/img/newer.jpg")
	m, _ = update(t, m, cmd())
	require.Equal(t, thumbLoaded, m.thumbs[2].status)
	require.Equal(t, 640, m.thumbs[2].info.Width)

	m, _ = update(t, m, thumbLoadedMsg{id: 1, err: errors.New("404")})
	require.Equal(t, thumbFailed, m.thumbs[1].status)
}

func TestUpdate_LoadDoneHidesErrors(t *testing.T) {
	m := newTestModel(t, Deps{Loader: &fakeLoader{}})
	m, _ = update(t, m, loadDoneMsg{err: errors.New("network error: connection refused")})

	require.False(t, m.loading)
	view := m.View()
	require.NotContains(t, view, "connection refused")
	require.Empty(t, m.list.Items())
}

func TestUpdate_EnterOpensSelectedStory(t *testing.T) {
	var opened []string
	m := newTestModel(t, Deps{
		Loader:  &fakeLoader{},
		OpenURL: func(u string) error { opened = append(opened, u); return nil },
	})
	m, _ = update(t, m, storiesUpdatedMsg{Items: []models.NewsItem{
		story(2, "first", "", fixedNow),
		story(1, "second", "", fixedNow.Add(-time.Minute)),
	}})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	require.Equal(t, linkOpenedMsg{url: "https://example.com/story/second"}, msg)
	require.Equal(t, []string{"https://example.com/story/second"}, opened)
}

func TestUpdate_QuitCancelsLoad(t *testing.T) {
	m := newTestModel(t, Deps{Loader: &fakeLoader{}})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.Error(t, m.ctx.Err())
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView_RendersRow(t *testing.T) {
	m := newTestModel(t, Deps{Loader: &fakeLoader{}})
	m, _ = update(t, m, storiesUpdatedMsg{Items: []models.NewsItem{
		story(1, "Swift 6 is here", "A short strap", fixedNow.Add(-3*time.Hour)),
	}})

	view := m.View()
	require.Contains(t, view, "HWS News")
	require.Contains(t, view, "Swift 6 is here")
	require.Contains(t, view, "A short strap")
	require.Contains(t, view, "3 hours ago")
}

func TestView_DefaultFormatter(t *testing.T) {
	m := newModel(context.Background(), Deps{
		Title:  "HWS News",
		Loader: &fakeLoader{},
		Now:    func() time.Time { return fixedNow },
	})
	require.NotNil(t, m.deps.Formatter)
	require.Equal(t, "en", m.deps.Formatter.Language().String())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, storiesUpdatedMsg{Items: []models.NewsItem{
		story(1, "No formatter", "strap", fixedNow.Add(-time.Hour)),
	}})

	var view string
	require.NotPanics(t, func() { view = m.View() })
	require.Contains(t, view, "No formatter")
	require.Contains(t, view, "1 hour ago")
}

func TestDelegate_RenderClampsLongText(t *testing.T) {
	f, err := reltime.New("en")
	require.NoError(t, err)

	long := strings.Repeat("word ", 60)
	d := storyDelegate{
		theme:  DefaultTheme(),
		thumbs: map[int]thumb{1: {status: thumbLoaded, info: fetcher.ImageInfo{Format: "png", Width: 100, Height: 100}}},
		format: f,
		now:    fixedNow,
	}
	l := list.New([]list.Item{storyItem{story(1, strings.TrimSpace(long), long, fixedNow.Add(-48*time.Hour))}}, d, 60, 20)

	var b strings.Builder
	d.Render(&b, l, 0, l.Items()[0])
	out := b.String()

	require.Contains(t, out, "…")
	require.Contains(t, out, "2 days ago")
	require.Contains(t, out, "PNG")
	require.LessOrEqual(t, strings.Count(out, "\n")+1, d.Height())
}

func TestInit_ReturnsCommands(t *testing.T) {
	m := newTestModel(t, Deps{Loader: &fakeLoader{}})
	require.NotNil(t, m.Init())
}
