package tui

import (
	"hws_news/internal/feed"
	"hws_news/internal/fetcher"
)

type storiesUpdatedMsg feed.Update

type loadDoneMsg struct {
	err error
}

type thumbLoadedMsg struct {
	id   int
	info fetcher.ImageInfo
	err  error
}

type linkOpenedMsg struct {
	url string
	err error
}
