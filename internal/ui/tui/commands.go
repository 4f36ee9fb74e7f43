package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"hws_news/internal/feed"
)

// startLoad запускает loader в фоне и пересылает в ch каждое слияние и
// итоговый результат. ch закрывается по завершении.
func startLoad(ctx context.Context, loader Loader, ch chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(ch)

			send := func(msg tea.Msg) {
				select {
				case ch <- msg:
				case <-ctx.Done():
				}
			}

			_, err := loader.Run(ctx, func(u feed.Update) {
				send(storiesUpdatedMsg(u))
			})
			send(loadDoneMsg{err: err})
		}()
		return nil
	}
}

func listenLoad(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func loadThumb(ctx context.Context, images ImageProber, id int, rawURL string) tea.Cmd {
	return func() tea.Msg {
		info, err := images.FetchImage(ctx, rawURL)
		return thumbLoadedMsg{id: id, info: info, err: err}
	}
}

func openLink(open func(string) error, rawURL string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{url: rawURL, err: open(rawURL)}
	}
}
