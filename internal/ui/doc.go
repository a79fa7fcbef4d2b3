// Package ui implements a read-only terminal browser for the movie catalog using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [MovieListView] : Browse and filter the catalog
//  2. [DetailView] : Inspect a single movie
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The catalog is loaded through the narrow [Catalog] interface, so the browser never writes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
