// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views over the paste store:
//  1. [ListingView] : Browse, search, copy, share and delete pastes
//  2. [EditorView] : Create a paste or edit the selected one
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Store change events flow through a channel from the store, so the listing re-renders whenever any surface mutates the collection.
// Clipboard results arrive the same way and are shown as toasts that expire after [ToastDuration].
//
// Keyboard navigation uses vim-style bindings (j/k, /, n, e, d, c, s, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
