package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RunningView ViewState = iota
	ResultListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	engine     *tasks.AnalysisEngine
	input      string
	width      int
	height     int
	resultList list.Model
	results    []models.AnalysisResult
	selected   *models.AnalysisResult
	eventChan  chan tasks.Event
	progress   tasks.ProgressEvent
	report     *tasks.Report
	err        error
	help       help.Model
	keys       keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.quit},
	}
}

// resultItem wraps [models.AnalysisResult] to implement list.Item.
type resultItem struct {
	result models.AnalysisResult
}

func (i resultItem) FilterValue() string { return i.result.Game }
func (i resultItem) Title() string       { return i.result.Game }
func (i resultItem) Description() string {
	if i.result.ToBuyCount == 0 {
		return "set complete"
	}
	return fmt.Sprintf("%d cards missing • %s to complete", i.result.ToBuyCount, i.result.FormatCost())
}

type analysisEventMsg struct {
	event tasks.Event
}

type analysisCompleteMsg struct {
	report *tasks.Report
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.AnalysisEngine, input string) *Model {
	return &Model{
		ctx:    ctx,
		view:   RunningView,
		engine: engine,
		input:  input,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the analysis run.
func (m *Model) Init() tea.Cmd {
	return m.startAnalysis()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() != 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RunningView:
			return m.handleRunningKeys(msg)
		case ResultListView:
			return m.handleResultListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case analysisEventMsg:
		switch ev := msg.event.(type) {
		case tasks.ProgressEvent:
			m.progress = ev
		case tasks.ResultEvent:
			m.results = append(m.results, ev.Result)
		case tasks.ErrorEvent:
			m.err = ev.Err
		}
		return m, m.waitForEvent()

	case analysisCompleteMsg:
		m.report = msg.report
		if msg.err != nil {
			m.err = msg.err
		}
		m.eventChan = nil
		m.buildResultList()
		m.view = ResultListView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case RunningView:
		return m.renderRunning()
	case ResultListView:
		return m.renderResultList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleRunningKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(resultItem); ok {
				m.selected = &item.result
				m.view = DetailView
			}
		}
		return m, nil
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
		m.selected = nil
		m.view = ResultListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ResultListView {
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) startAnalysis() tea.Cmd {
	m.eventChan = make(chan tasks.Event, 50)

	go func() {
		report, err := m.engine.Run(m.ctx, m.input, m.eventChan)
		m.report = report
		if err != nil {
			m.err = err
		}
		close(m.eventChan)
	}()

	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		if m.eventChan == nil {
			return analysisCompleteMsg{report: m.report, err: m.err}
		}

		event, ok := <-m.eventChan
		if !ok {
			return analysisCompleteMsg{report: m.report, err: m.err}
		}
		return analysisEventMsg{event: event}
	}
}

func (m *Model) buildResultList() {
	items := make([]list.Item, len(m.results))
	for i, result := range m.results {
		items[i] = resultItem{result: result}
	}
	m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.resultList.Title = "Badge Collections"
	m.resultList.SetSize(m.width-4, m.height-8)
}

func (m *Model) renderRunning() string {
	title := styles.title.Render("Analyzing Badge Collections")

	var phase string
	switch m.progress.Phase {
	case tasks.ValidateKey:
		phase = "Validating API key..."
	case tasks.ResolveProfile:
		phase = "Resolving profile..."
	case tasks.FetchInventory:
		phase = "Collecting inventory..."
	case tasks.FetchBadges:
		phase = "Fetching badges..."
	case tasks.Analyze:
		phase = fmt.Sprintf("Analyzing collections (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Starting..."
	}

	done := fmt.Sprintf("%d collections analyzed so far", len(m.results))
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, phase, m.progress.Message, styles.help.Render(done))
}

func (m *Model) renderResultList() string {
	if m.err != nil && len(m.results) == 0 {
		return styles.err.Render(fmt.Sprintf("Analysis failed: %v\n\nPress q to quit", m.err))
	}

	var summary string
	if m.report != nil {
		status := styles.ok.Render("✓ Analysis complete")
		if m.report.Cancelled {
			status = styles.warn.Render("Analysis interrupted")
		}
		summary = fmt.Sprintf("%s • %d analyzed, %d skipped • total %.2f",
			status, m.report.Analyzed, m.report.Skipped, m.report.TotalCost)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", m.resultList.View(), summary, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(m.selected.Game))
	b.WriteString(fmt.Sprintf("\nCompletion cost: %s\n", m.selected.FormatCost()))

	if len(m.selected.ToBuy) > 0 {
		b.WriteString(styles.warn.Render(fmt.Sprintf("\nMissing (%d):", m.selected.ToBuyCount)))
		for _, card := range m.selected.ToBuy {
			if card.Price != nil {
				b.WriteString(fmt.Sprintf("\n  • %s — %.2f", card.Name, *card.Price))
			} else {
				b.WriteString(fmt.Sprintf("\n  • %s — price unknown", card.Name))
			}
		}
		b.WriteString("\n")
	}

	if len(m.selected.Owned) > 0 {
		b.WriteString(styles.ok.Render(fmt.Sprintf("\nOwned (%d):", len(m.selected.Owned))))
		for _, card := range m.selected.Owned {
			b.WriteString(fmt.Sprintf("\n  • %s", card))
		}
		b.WriteString("\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	b.WriteString("\n" + helpView)
	return b.String()
}
