// Package tui provides a Bubble Tea terminal browser for Raster Foundry
// datasources and projects.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
	"github.com/raster-foundry/raster-foundry-go-client/internal/foundry"
	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
	"golang.org/x/sync/errgroup"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateList
	StateDetail
	StateNewName
	StateConfirmDelete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	spinner   spinner.Model
	nameInput textinput.Model
	settings  *config.Settings
	err       error
	status    string

	// Client context
	ctx    context.Context
	cancel context.CancelFunc
	client *foundry.Client

	// Loaded data
	datasources []model.Datasource
	projects    []model.Project
	cursor      int

	width  int
	height int
}

// NewModel creates a new TUI model around an authenticated client.
func NewModel(settings *config.Settings, client *foundry.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ti := textinput.New()
	ti.Placeholder = "New datasource name"
	ti.CharLimit = 120
	ti.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateLoading,
		spinner:   sp,
		nameInput: ti,
		settings:  settings,
		ctx:       ctx,
		cancel:    cancel,
		client:    client,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Message types
type (
	// LoadedMsg is sent when datasources and projects have been fetched.
	LoadedMsg struct {
		Datasources []model.Datasource
		Projects    []model.Project
		Err         error
	}

	// CreatedMsg is sent when a new datasource has been registered.
	CreatedMsg struct {
		Datasource *model.Datasource
		Err        error
	}

	// DeletedMsg is sent when a datasource has been removed.
	DeletedMsg struct {
		Name string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "q":
			if m.state == StateList || m.state == StateError {
				m.cancel()
				return m, tea.Quit
			}

		case "esc":
			switch m.state {
			case StateList:
				m.cancel()
				return m, tea.Quit
			case StateDetail, StateNewName, StateConfirmDelete:
				m.state = StateList
				m.nameInput.Blur()
			case StateError:
				m.cancel()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == StateList && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.state == StateList && m.cursor < len(m.datasources)-1 {
				m.cursor++
			}

		case "enter":
			switch m.state {
			case StateList:
				if len(m.datasources) > 0 {
					m.state = StateDetail
				}
			case StateNewName:
				name := strings.TrimSpace(m.nameInput.Value())
				if name != "" {
					m.state = StateLoading
					m.status = "Creating datasource..."
					m.nameInput.Blur()
					return m, tea.Batch(m.create(name), m.spinner.Tick)
				}
			case StateConfirmDelete:
				// Require explicit y/n
			}

		case "n":
			if m.state == StateList {
				m.state = StateNewName
				m.nameInput.SetValue("")
				m.nameInput.Focus()
				return m, textinput.Blink
			}

		case "x":
			if m.state == StateList && len(m.datasources) > 0 {
				m.state = StateConfirmDelete
			}

		case "y":
			if m.state == StateConfirmDelete {
				m.state = StateLoading
				m.status = "Deleting datasource..."
				return m, tea.Batch(m.remove(m.datasources[m.cursor]), m.spinner.Tick)
			}

		case "r":
			if m.state == StateList || m.state == StateError {
				m.state = StateLoading
				m.status = ""
				m.err = nil
				return m, tea.Batch(m.load(), m.spinner.Tick)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.datasources = msg.Datasources
			m.projects = msg.Projects
			if m.cursor >= len(m.datasources) {
				m.cursor = 0
			}
			m.state = StateList
		}

	case CreatedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.status = fmt.Sprintf("Created %s", msg.Datasource.Name)
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}

	case DeletedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.status = fmt.Sprintf("Deleted %s", msg.Name)
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}
	}

	// Update text input
	if m.state == StateNewName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// load fetches datasources and projects concurrently.
func (m *Model) load() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		var (
			datasources []model.Datasource
			projects    []model.Project
		)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			datasources, err = client.ListDatasources(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			projects, err = client.ListProjects(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Datasources: datasources, Projects: projects}
	}
}

// create registers a new datasource with no bands; bands are added with
// a later update or via the CLI.
func (m *Model) create(name string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		ds, err := client.CreateDatasource(ctx, name, nil)
		return CreatedMsg{Datasource: ds, Err: err}
	}
}

// remove deletes the selected datasource.
func (m *Model) remove(ds model.Datasource) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		err := client.DeleteDatasource(ctx, ds.ID)
		return DeletedMsg{Name: ds.Name, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🛰  Raster Foundry"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s://%s", m.settings.Scheme, m.settings.Host)))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateList:
		b.WriteString(m.viewList())
	case StateDetail:
		b.WriteString(m.viewDetail())
	case StateNewName:
		b.WriteString(m.viewNewName())
	case StateConfirmDelete:
		b.WriteString(m.viewConfirmDelete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	message := m.status
	if message == "" {
		message = "Loading datasources..."
	}
	return m.spinner.View() + " " + subtitleStyle.Render(message) + "\n"
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf(
		"Datasources (%d) · Projects (%d)", len(m.datasources), len(m.projects))))
	b.WriteString("\n\n")

	if len(m.datasources) == 0 {
		b.WriteString(dimStyle.Render("No datasources. Press n to create one."))
		b.WriteString("\n")
	}

	for i, ds := range m.datasources {
		line := fmt.Sprintf("%s  %d band(s)", ds.Name, len(ds.Bands))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder

	ds := m.datasources[m.cursor]

	b.WriteString(selectedStyle.Render(ds.Name))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("id: " + ds.ID))
	b.WriteString("\n\n")

	if len(ds.Bands) == 0 {
		b.WriteString(dimStyle.Render("No bands."))
		b.WriteString("\n")
	} else {
		b.WriteString(infoStyle.Render("Bands:"))
		b.WriteString("\n")
		for _, band := range ds.Bands {
			b.WriteString(fmt.Sprintf("  %s  %-12s nodata=%g\n", band.Index, band.Name, band.NoDataValue))
		}
	}

	return b.String()
}

func (m Model) viewNewName() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Name for the new datasource:"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewConfirmDelete() string {
	ds := m.datasources[m.cursor]
	return boxStyle.Render(fmt.Sprintf(
		"Delete datasource %q?\n\nThis cannot be undone. (y/esc)", ds.Name)) + "\n"
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateList:
		return "↑/↓: select • enter: detail • n: new • x: delete • r: refresh • q: quit"
	case StateDetail:
		return "esc: back"
	case StateNewName:
		return "enter: create • esc: cancel"
	case StateConfirmDelete:
		return "y: delete • esc: cancel"
	case StateError:
		return "r: retry • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	client, err := foundry.New(context.Background(), settings.ToClientConfig())
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(settings, client), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
