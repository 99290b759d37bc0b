// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view browsing workflow:
//  1. [SearchView] : Enter a search term, with history-backed suggestions
//  2. [ResultListView] : Page through results, loading more on demand
//  3. [DetailView] : Video details, related videos, playlist shortcuts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg constructors.
// Page fetches run as tea commands over the shared pager, so a superseded
// query's late response is discarded rather than rendered.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
