// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for badge analysis:
//  1. [RunningView] : Monitor real-time progress while the analysis runs
//  2. [ResultListView] : Browse per-collection completion results
//  3. [DetailView] : Inspect owned and missing cards for one collection
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Analysis events flow through a channel from the AnalysisEngine, providing non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
