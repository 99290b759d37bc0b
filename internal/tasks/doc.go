// package tasks implements the multi-step browse operations behind the CLI
// and the TUI.
//
// The core abstraction is Pager, which drives one catalog query across pages,
// enriching each page's video items with a batched detail lookup before
// committing them. BrowseEngine composes the catalog client with the
// persisted stores for the watch and channel flows.
package tasks
