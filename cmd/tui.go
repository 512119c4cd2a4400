package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type replModel struct {
	app          *session.Session
	textInput    textinput.Model
	viewport     viewport.Model
	suggestions  list.Model
	history      []string
	historyIdx   int
	logContent   string
	width        int
	height       int
	scenarioName string
	sessionName  string
	showList     bool
}

func newREPLModel(app *session.Session, scenarioName, sessionName string) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., pool 12 edge)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to the Shadowrun GM console!\nType 'help' for commands, 'exit' to quit."
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return replModel{
		app:          app,
		textInput:    ti,
		viewport:     vp,
		suggestions:  sugList,
		history:      []string{},
		historyIdx:   -1,
		logContent:   welcome,
		scenarioName: scenarioName,
		sessionName:  sessionName,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

var baseCmds = []string{
	"roll ", "pool ", "extended pool: ", "initiative", "encounter start", "encounter end",
	"damage to: ", "turn", "hack by: ", "search by: ", "crash by: ", "perceive by: ",
	"log", "help ", "exit", "quit",
}

func (m *replModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 10 {
				h = 10
			}
			listHeight := h
			if listHeight > 0 && listHeight < 4 {
				listHeight = 4
			}
			m.suggestions.SetHeight(listHeight)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}

	for _, c := range baseCmds {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}

	// Entity completion for "to:", "by:" and "on:" arguments
	lower := strings.ToLower(val)
	complete := func(sep string, ids []string) {
		idx := strings.LastIndex(lower, sep)
		if idx < 0 {
			return
		}
		prefix := lower[idx+len(sep):]
		baseStr := val[:len(val)-len(prefix)]
		for _, id := range ids {
			if strings.HasPrefix(strings.ToLower(id), prefix) {
				items = append(items, suggestion(baseStr+id))
			}
		}
	}

	switch {
	case strings.Contains(lower, " on: "):
		complete(" on: ", m.nodeIDs())
	case strings.Contains(lower, " to: "):
		complete(" to: ", m.combatantIDs())
	case strings.Contains(lower, " by: "):
		if strings.HasPrefix(lower, "hack") || strings.HasPrefix(lower, "search") ||
			strings.HasPrefix(lower, "crash") || strings.HasPrefix(lower, "perceive") {
			complete(" by: ", m.personaIDs())
		} else {
			complete(" by: ", m.combatantIDs())
		}
	}
}

func (m *replModel) combatantIDs() []string {
	var ids []string
	for _, c := range m.app.Roster() {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func (m *replModel) personaIDs() []string {
	var ids []string
	for id := range m.app.Personas() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *replModel) nodeIDs() []string {
	var ids []string
	if grid := m.app.Grid(); grid != nil {
		for id, n := range grid.Nodes {
			if n.Discovered {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				out, err := m.app.Execute(val)
				if err != nil {
					m.logContent += fmt.Sprintf("Error: %v", err)
				} else if out != "" {
					m.logContent += out + "\n"
				}

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30 // Initial conservative estimate
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	// Total fixed overhead: title + state + input + listArea + info + padding + spacing
	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *replModel) renderState() string {
	stateView := "=== Table State ==="
	stateView += "\n\n"

	if enc := m.app.Encounter(); enc != nil && enc.Status == combat.EncounterActive {
		roster := m.app.Roster()
		active := ""
		if enc.ActiveIndex < len(roster) {
			active = roster[enc.ActiveIndex].Name
		}
		stateView += fmt.Sprintf("Combat: round %d, %s acts\n", enc.CurrentRound, active)
	} else {
		stateView += "No active encounter.\n"
	}
	stateView += "\n"

	roster := m.app.Roster()
	if len(roster) == 0 {
		stateView += "No combatants loaded.\n"
	} else {
		for _, c := range roster {
			marker := ""
			switch c.Status {
			case combat.StatusDead:
				marker = " [DEAD]"
			case combat.StatusUnconscious:
				marker = " [KO]"
			}
			stateView += fmt.Sprintf(" - %s (%s): %d/%dP %d/%dS, edge %d/%d%s\n",
				c.ID, c.Name, c.PhysicalDamage, c.PhysicalMonitor,
				c.StunDamage, c.StunMonitor, c.CurrentEdge, c.Edge, marker)
		}
	}

	if grid := m.app.Grid(); grid != nil {
		discovered, compromised := 0, 0
		for _, n := range grid.Nodes {
			if n.Discovered {
				discovered++
			}
			if n.Compromised {
				compromised++
			}
		}
		stateView += fmt.Sprintf("\nMatrix: %s - %d/%d nodes discovered, %d compromised\n",
			grid.Name, discovered, len(grid.Nodes), compromised)
		for _, id := range m.personaIDs() {
			p := m.app.Personas()[id]
			stateView += fmt.Sprintf(" - %s (%s): overwatch %d/40\n", p.ID, p.Name, p.OverwatchScore)
		}
	}

	return stateBoxStyle.Width(m.width - 4).Render(stateView)
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Shadowrun GM Console | %s / %s ", m.scenarioName, m.sessionName))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

func RunTUI(app *session.Session, scenarioName, sessionName string) error {
	m := newREPLModel(app, scenarioName, sessionName)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
