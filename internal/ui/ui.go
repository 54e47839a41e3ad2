package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CandidateListView ViewState = iota
	ConfirmView
	ResolveView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	catalog       tasks.CatalogService
	resolver      *tasks.Resolver
	term          string
	width         int
	height        int
	candidateList list.Model
	candidates    []igdb.RemotePlatform
	selected      *igdb.RemotePlatform
	progressChan  chan tasks.ProgressUpdate
	progress      tasks.ProgressUpdate
	result        *tasks.ResolvedPlatform
	err           error
	help          help.Model
	keys          keyMap
}

type candidatesFetchedMsg struct {
	candidates []igdb.RemotePlatform
	err        error
}

type progressUpdateMsg tasks.ProgressUpdate

type resolveCompleteMsg struct {
	result *tasks.ResolvedPlatform
	err    error
}

// NewModel creates a new TUI model with the provided dependencies. The
// term seeds the initial catalog search.
func NewModel(ctx context.Context, catalog tasks.CatalogService, resolver *tasks.Resolver, term string) *Model {
	return &Model{
		ctx:      ctx,
		view:     CandidateListView,
		catalog:  catalog,
		resolver: resolver,
		term:     term,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by searching the remote catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchCandidates()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.candidateList.Width() == 0 {
			m.candidateList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CandidateListView:
			return m.handleCandidateListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case candidatesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.candidates = msg.candidates
		items := make([]list.Item, len(msg.candidates))
		for i, candidate := range msg.candidates {
			items[i] = candidateItem{platform: candidate}
		}
		m.candidateList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.candidateList.Title = fmt.Sprintf("Platforms matching '%s'", m.term)
		m.candidateList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case resolveCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case CandidateListView:
		return m.renderCandidateList()
	case ConfirmView:
		return m.renderConfirm()
	case ResolveView:
		return m.renderResolve()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleCandidateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.candidateList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(candidateItem); ok {
				platform := item.platform
				m.selected = &platform
				m.view = ConfirmView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.candidateList, cmd = m.candidateList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = CandidateListView
		return m, nil
	case "y":
		m.view = ResolveView
		return m, m.startResolve()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = CandidateListView
		m.selected = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == CandidateListView {
		m.candidateList, cmd = m.candidateList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchCandidates() tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.catalog.SearchPlatforms(m.ctx, m.term)
		return candidatesFetchedMsg{candidates: candidates, err: err}
	}
}

// startResolve resolves the selected candidate by its exact name, which
// the resolver's match precedence picks over any fuzzier result.
func (m *Model) startResolve() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	name := m.selected.Name

	go func() {
		result, err := m.resolver.ResolvePlatform(m.ctx, m.progressChan, name)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return resolveCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return resolveCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderCandidateList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.candidateList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Sync '%s' into the local catalog?", m.selected.Name))

	info := fmt.Sprintf("\nPlatform: %s (id %d)\n", m.selected.Name, m.selected.ID)
	if m.selected.Abbreviation != "" {
		info += fmt.Sprintf("Abbreviation: %s\n", m.selected.Abbreviation)
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResolve() string {
	title := styles.title.Render("Syncing Platform")

	var phase string
	switch m.progress.Phase {
	case tasks.SearchCatalog:
		phase = "Searching the remote catalog..."
	case tasks.FetchDependents:
		phase = fmt.Sprintf("Syncing dependents (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.WritePlatform:
		phase = "Writing the platform locally..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.result == nil {
		if m.err != nil {
			return styles.err.Render(fmt.Sprintf("Sync failed: %v\n\nPress r to retry, q to quit", m.err))
		}
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Platform Synced")
	if m.result.Partial() {
		title = styles.warn.Render("Platform synced with missing dependents")
	}

	info := fmt.Sprintf("\n%s (id %d)\n", m.result.Platform.Name, m.result.Platform.RemoteID)
	for name, outcome := range m.result.Dependents {
		marker := styles.ok.Render("✓")
		if outcome.Status != tasks.DependentOK {
			marker = styles.warn.Render(string(outcome.Status))
		}
		info += fmt.Sprintf("  %s %s\n", marker, name)
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
