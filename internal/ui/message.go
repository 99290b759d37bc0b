package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsFetched MsgKind = iota
	MsgMoreFetched
	MsgWatchLoaded
	MsgSavedToPlaylist
	MsgOpenedBrowser
)

// resultsFetchedMsg is the constructor for [MsgResultsFetched]
func resultsFetchedMsg(items []services.Item, hasMore bool, err error) Msg {
	return Msg{
		kind: MsgResultsFetched,
		data: struct {
			items   []services.Item
			hasMore bool
			err     error
		}{items, hasMore, err},
	}
}

// moreFetchedMsg is the constructor for [MsgMoreFetched]
func moreFetchedMsg(items []services.Item, hasMore bool, err error) Msg {
	return Msg{
		kind: MsgMoreFetched,
		data: struct {
			items   []services.Item
			hasMore bool
			err     error
		}{items, hasMore, err},
	}
}

// watchLoadedMsg is the constructor for [MsgWatchLoaded]
func watchLoadedMsg(result *tasks.WatchResult, err error) Msg {
	return Msg{
		kind: MsgWatchLoaded,
		data: struct {
			result *tasks.WatchResult
			err    error
		}{result, err},
	}
}

// savedToPlaylistMsg is the constructor for [MsgSavedToPlaylist]
func savedToPlaylistMsg(playlistID string, err error) Msg {
	return Msg{
		kind: MsgSavedToPlaylist,
		data: struct {
			playlistID string
			err        error
		}{playlistID, err},
	}
}

// openedBrowserMsg is the constructor for [MsgOpenedBrowser]
func openedBrowserMsg(err error) Msg {
	return Msg{kind: MsgOpenedBrowser, data: err}
}
