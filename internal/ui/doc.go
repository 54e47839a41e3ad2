// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for resolving a platform into
// the local catalog:
//  1. [CandidateListView] : Browse the remote search results for a term
//  2. [ConfirmView] : Confirm the platform to sync
//  3. [ResolveView] : Monitor real-time progress updates
//  4. [ResultView] : Display the persisted platform and dependent outcomes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the Resolver, providing non-blocking status reporting during resolution.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
