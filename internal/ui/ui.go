package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/repositories"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/desertthunder/boxtube/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	pager     *tasks.Pager
	engine    *tasks.BrowseEngine
	playlists *repositories.PlaylistStore
	searches  *repositories.SearchHistoryStore
	width     int
	height    int

	input       textinput.Model
	suggestions []string
	resultList  list.Model
	hasMore     bool
	loading     bool
	watch       *tasks.WatchResult
	relatedList list.Model
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, pager *tasks.Pager, engine *tasks.BrowseEngine, playlists *repositories.PlaylistStore, searches *repositories.SearchHistoryStore) *Model {
	input := textinput.New()
	input.Placeholder = "Search videos..."
	input.Focus()
	input.CharLimit = 120

	return &Model{
		ctx:       ctx,
		view:      SearchView,
		pager:     pager,
		engine:    engine,
		playlists: playlists,
		searches:  searches,
		input:     input,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the cursor blink in the search input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.relatedList.Width() == 0 {
			m.relatedList.SetSize(msg.Width-4, msg.Height-14)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultListView:
			return m.handleResultKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsFetched:
		data := msg.data.(struct {
			items   []services.Item
			hasMore bool
			err     error
		})
		m.loading = false
		if data.err != nil {
			m.err = data.err
			m.view = SearchView
			return m, nil
		}
		m.err = nil
		m.hasMore = data.hasMore
		items := make([]list.Item, len(data.items))
		for i, item := range data.items {
			items[i] = resultItem{item: item}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for '%s'", m.input.Value())
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = ResultListView
		return m, nil

	case MsgMoreFetched:
		data := msg.data.(struct {
			items   []services.Item
			hasMore bool
			err     error
		})
		m.loading = false
		if data.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("Failed to load more: %v", data.err))
			return m, nil
		}
		m.hasMore = data.hasMore
		items := make([]list.Item, len(data.items))
		for i, item := range data.items {
			items[i] = resultItem{item: item}
		}
		m.resultList.SetItems(items)
		return m, nil

	case MsgWatchLoaded:
		data := msg.data.(struct {
			result *tasks.WatchResult
			err    error
		})
		m.loading = false
		if data.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("Failed to load video: %v", data.err))
			return m, nil
		}
		m.watch = data.result
		related := make([]list.Item, len(data.result.Related))
		for i, item := range data.result.Related {
			related[i] = relatedItem{item: item}
		}
		m.relatedList = list.New(related, list.NewDefaultDelegate(), 0, 0)
		m.relatedList.Title = "Related videos"
		m.relatedList.SetSize(m.width-4, m.height-14)
		m.status = ""
		m.view = DetailView
		return m, nil

	case MsgSavedToPlaylist:
		data := msg.data.(struct {
			playlistID string
			err        error
		})
		if data.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("Failed to save: %v", data.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("✓ Saved to %s", data.playlistID))
		}
		return m, nil

	case MsgOpenedBrowser:
		if err, ok := msg.data.(error); ok && err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("Failed to open browser: %v", err))
		} else {
			m.status = styles.ok.Render("✓ Opened in browser")
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultListView:
		return m.renderResults()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		term := strings.TrimSpace(m.input.Value())
		if term == "" {
			return m, nil
		}
		m.loading = true
		m.engine.SearchPager(m.pager, services.SearchQuery{Term: term})
		return m, m.fetchFirst()
	case "tab":
		if len(m.suggestions) > 0 {
			m.input.SetValue(m.suggestions[0])
			m.input.CursorEnd()
			m.suggestions = m.searches.Suggestions(m.input.Value())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggestions = m.searches.Suggestions(m.input.Value())
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.resultList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SearchView
		m.input.Focus()
		return m, textinput.Blink
	case "m":
		if m.hasMore && !m.loading {
			m.loading = true
			return m, m.fetchMore()
		}
		return m, nil
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if res, ok := selected.(resultItem); ok && res.item.Kind == services.KindVideo {
				m.loading = true
				return m, m.loadWatch(res.item.VideoID)
			}
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResultListView
		m.watch = nil
		m.status = ""
		return m, nil
	case "s":
		return m, m.saveToPlaylist(repositories.WatchLaterID)
	case "f":
		return m, m.saveToPlaylist(repositories.FavoritesID)
	case "o":
		return m, m.openBrowser()
	case "enter":
		selected := m.relatedList.SelectedItem()
		if selected != nil {
			if rel, ok := selected.(relatedItem); ok && rel.item.Kind == services.KindVideo {
				m.loading = true
				return m, m.loadWatch(rel.item.VideoID)
			}
		}
	}

	var cmd tea.Cmd
	m.relatedList, cmd = m.relatedList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ResultListView:
		m.resultList, cmd = m.resultList.Update(msg)
	case DetailView:
		m.relatedList, cmd = m.relatedList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchFirst() tea.Cmd {
	return func() tea.Msg {
		err := m.pager.Fetch(m.ctx)
		return resultsFetchedMsg(m.pager.Items(), m.pager.HasMore(), err)
	}
}

func (m *Model) fetchMore() tea.Cmd {
	return func() tea.Msg {
		err := m.pager.FetchMore(m.ctx)
		return moreFetchedMsg(m.pager.Items(), m.pager.HasMore(), err)
	}
}

func (m *Model) loadWatch(videoID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Watch(m.ctx, videoID)
		return watchLoadedMsg(result, err)
	}
}

func (m *Model) saveToPlaylist(playlistID string) tea.Cmd {
	watch := m.watch
	return func() tea.Msg {
		if watch == nil {
			return savedToPlaylistMsg(playlistID, fmt.Errorf("no video selected"))
		}
		err := m.playlists.AddVideo(playlistID, watch.Video)
		return savedToPlaylistMsg(playlistID, err)
	}
}

func (m *Model) openBrowser() tea.Cmd {
	watch := m.watch
	return func() tea.Msg {
		if watch == nil {
			return openedBrowserMsg(fmt.Errorf("no video selected"))
		}
		return openedBrowserMsg(shared.OpenBrowser(shared.WatchURL(watch.Video.ID)))
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("boxtube")

	var body strings.Builder
	body.WriteString(m.input.View())
	body.WriteString("\n")

	if m.err != nil {
		body.WriteString("\n")
		body.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		body.WriteString("\n")
	}

	if len(m.suggestions) > 0 {
		body.WriteString("\n")
		for _, s := range m.suggestions {
			body.WriteString(styles.help.Render("  " + s))
			body.WriteString("\n")
		}
	}

	if m.loading {
		body.WriteString("\nSearching...\n")
	}

	enterKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
	tabKey := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete"))
	helpView := m.help.ShortHelpView([]key.Binding{enterKey, tabKey, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, body.String(), helpView)
}

func (m *Model) renderResults() string {
	helpKeys := []key.Binding{m.keys.watch, m.keys.back, m.keys.quit}
	if m.hasMore {
		helpKeys = append([]key.Binding{m.keys.more}, helpKeys...)
	}
	helpView := m.help.ShortHelpView(helpKeys)

	status := m.status
	if m.loading {
		status = "Loading more..."
	}

	return fmt.Sprintf("%s\n%s\n%s", m.resultList.View(), status, helpView)
}

func (m *Model) renderDetail() string {
	if m.watch == nil {
		return styles.err.Render("No video loaded\n\nPress esc to go back")
	}

	video := m.watch.Video
	title := styles.title.Render(video.Title)

	var info strings.Builder
	info.WriteString(fmt.Sprintf("Channel: %s", video.ChannelTitle))
	if video.Duration != "" {
		info.WriteString(fmt.Sprintf("  •  %s", video.Duration))
	}
	if video.ViewCount != "" {
		info.WriteString(fmt.Sprintf("  •  %s views", formatter.FormatCount(video.ViewCount)))
	}
	if video.PublishedAt != "" {
		info.WriteString(fmt.Sprintf("  •  %s", formatter.FormatRelativeTime(video.PublishedAt)))
	}

	helpKeys := []key.Binding{m.keys.save, m.keys.favorite, m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, info.String(), m.relatedList.View(), m.status, helpView)
}
