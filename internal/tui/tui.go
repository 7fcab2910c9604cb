package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/game"
)

const inputPlaceholder = "Cards to play (e.g. 3,3,3,4 or 10 J Q K A), or 'pass'"

// Model is the Bubble Tea model for an interactive game: a scrolling game
// log, a sidebar with card counts and an input line for the human seat.
type Model struct {
	seat   game.Seat
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	request     *bot.PromptRequest
	status      string
	counts      [game.NumSeats]int
	finished    bool
	inputs      chan inputResult
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

type inputResult struct {
	line string
	quit bool
}

type logMsg struct{ lines []string }

type promptMsg struct{ req bot.PromptRequest }

type rejectMsg struct{ reason string }

type countsMsg struct{ counts [game.NumSeats]int }

type finishMsg struct{}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// NewModel creates the model for a human playing seat.
func NewModel(seat game.Seat, logger *log.Logger) *Model {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		seat:        seat,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		inputs:      make(chan inputResult, 1),
		focusedPane: 1,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case logMsg:
		for _, line := range msg.lines {
			m.AddLogEntry(line)
		}

	case promptMsg:
		req := msg.req
		m.request = &req
		m.status = ""

	case rejectMsg:
		m.status = msg.reason

	case countsMsg:
		m.counts = msg.counts

	case finishMsg:
		m.request = nil
		m.finished = true
		m.status = ""

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.send(inputResult{quit: true})
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.submit(strings.TrimSpace(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands a line to a waiting prompt. Input typed while no prompt is
// pending is dropped, except after the game when any Enter exits.
func (m *Model) submit(line string) {
	switch {
	case m.finished:
		m.send(inputResult{quit: true})
	case m.request != nil:
		m.request = nil
		m.send(inputResult{line: line})
	}
}

func (m *Model) send(r inputResult) {
	select {
	case m.inputs <- r:
	default:
		// a result is already pending
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderSidebarPane() string {
	var content strings.Builder
	content.WriteString(InfoStyle.Render("Cards left:"))
	content.WriteString("\n")
	for _, s := range game.Seats {
		marker := " "
		if s == m.seat {
			marker = "*"
		}
		fmt.Fprintf(&content, "%s %s: %d\n", marker, FormatSeat(s), m.counts[s])
	}
	return content.String()
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.finished:
		content.WriteString(HandInfoStyle.Render("Game over."))
		content.WriteString("\n")
		m.actionInput.Placeholder = "Enter to exit"
	case m.request != nil:
		content.WriteString(HandInfoStyle.Render("Your hand: " + FormatHand(m.request.Hand)))
		content.WriteString("\n")
		if m.request.CanPass {
			content.WriteString(ActionsStyle.Render("To beat: " + FormatCombination(m.request.Previous)))
		} else {
			content.WriteString(ActionsStyle.Render("You lead: play any combination"))
		}
		content.WriteString("\n")
		m.actionInput.Placeholder = inputPlaceholder
	default:
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		content.WriteString("\n")
	}

	if m.status != "" {
		content.WriteString(ErrorStyle.Render(m.status))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))
	return content.String()
}

// AddLogEntry appends a line to the game log and scrolls to it.
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log.
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}
