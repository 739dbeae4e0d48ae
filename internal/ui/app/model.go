package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "timelog/internal/modules/session/dto"
	apperrors "timelog/internal/platform/errors"
	"timelog/internal/ui/components"
	"timelog/internal/ui/theme"
)

const tickInterval = time.Second

type sessionPort interface {
	Begin(ctx context.Context, title, description string) (sessiondto.BeginOutput, error)
	End(ctx context.Context, sessionID string) (sessiondto.EndOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
	Cancel(ctx context.Context) error
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type statusLoadedMsg struct {
	status sessiondto.StatusOutput
	err    error
}

type sessionBegunMsg struct {
	out sessiondto.BeginOutput
	err error
}

type sessionEndedMsg struct {
	out sessiondto.EndOutput
	err error
}

type sessionCanceledMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Palette key.Binding
	End     key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Palette: key.NewBinding(key.WithKeys(":", "b"), key.WithHelp(":/b", "begin")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end and record")),
		Cancel:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.End, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Palette, k.End, k.Cancel},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is a live stopwatch over the active session. The duration shown is
// refreshed from the session port once per tick; quitting leaves the session
// running.
type Model struct {
	session sessionPort
	initial sessiondto.BeginInput

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette

	active    sessiondto.StatusOutput
	hasActive bool
	last      sessiondto.EndOutput
	status    string
	failed    bool
	width     int
	height    int
}

// NewModel builds the model. A non-empty initial title begins a session on
// start unless one is already active.
func NewModel(session sessionPort, initial sessiondto.BeginInput) Model {
	return Model{
		session: session,
		initial: initial,
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if strings.TrimSpace(m.initial.Title) != "" {
		cmds = append(cmds, m.beginCmd(m.initial.Title, m.initial.Description))
	} else {
		cmds = append(cmds, m.statusCmd())
	}
	return tea.Batch(cmds...)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width

	case tickMsg:
		if m.hasActive {
			return m, tea.Batch(tick(), m.statusCmd())
		}
		return m, tick()

	case statusLoadedMsg:
		if msg.err != nil {
			m.hasActive = false
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.setError("status", msg.err)
			}
			return m, nil
		}
		m.hasActive = true
		m.active = msg.status

	case sessionBegunMsg:
		if msg.err != nil {
			m.setError("begin", msg.err)
			return m, m.statusCmd()
		}
		m.setStatus("session begun: " + msg.out.Title)
		return m, m.statusCmd()

	case sessionEndedMsg:
		if msg.err != nil {
			m.setError("end", msg.err)
			return m, nil
		}
		m.hasActive = false
		m.active = sessiondto.StatusOutput{}
		m.last = msg.out
		m.setStatus(fmt.Sprintf("recorded #%d %s (%s)", msg.out.RecordID, msg.out.Title, msg.out.Duration))

	case sessionCanceledMsg:
		if msg.err != nil {
			m.setError("discard", msg.err)
			return m, nil
		}
		m.hasActive = false
		m.active = sessiondto.StatusOutput{}
		m.setStatus("session discarded")

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready")

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.End):
			return m, m.endCmd()
		case key.Matches(msg, m.keys.Cancel):
			return m, m.cancelCmd()
		}
	}
	return m, nil
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return m, nil
	}
	switch fields[0] {
	case "begin":
		rest := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		title, description, _ := strings.Cut(rest, "|")
		title = strings.TrimSpace(title)
		if title == "" {
			m.setStatus("usage: begin <title> [| description]")
			return m, nil
		}
		return m, m.beginCmd(title, strings.TrimSpace(description))
	case "end":
		return m, m.endCmd()
	case "cancel":
		return m, m.cancelCmd()
	default:
		m.setStatus("unknown command: " + fields[0])
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(op string, err error) {
	m.status = op + ": " + err.Error()
	m.failed = true
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = m.help.View(m.keys)
	case m.palette.Visible():
		content = m.palette.View()
	default:
		content = m.renderTimer()
	}
	if m.width > 0 {
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) renderTimer() string {
	var sb strings.Builder
	if m.hasActive {
		sb.WriteString(theme.Title.Render(m.active.Title) + "\n")
		if m.active.Description != "" {
			sb.WriteString(theme.Muted.Render(m.active.Description) + "\n")
		}
		sb.WriteString("\n" + theme.Timer.Render(m.active.Duration) + "\n")
		sb.WriteString(theme.Muted.Render("since " + m.active.StartedAt.Local().Format("15:04:05")))
		return theme.PaneActive.Render(sb.String())
	}
	sb.WriteString(theme.Title.Render("No session in progress") + "\n\n")
	if m.last.RecordID != 0 {
		sb.WriteString(fmt.Sprintf("last: %s  %s\n\n", m.last.Title, theme.Timer.Render(m.last.Duration)))
	}
	sb.WriteString(theme.Muted.Render("press b to begin"))
	return theme.Pane.Render(sb.String())
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.failed {
		left = theme.Error.Render(left)
	}
	if m.hasActive {
		left = theme.Hot.Render("● "+m.active.Title) + "  " + left
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + left + strings.Repeat(" ", gap) + right
}

// ─── async commands ───────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Status(context.Background())
		return statusLoadedMsg{status: out, err: err}
	}
}

func (m Model) beginCmd(title, description string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Begin(context.Background(), title, description)
		return sessionBegunMsg{out: out, err: err}
	}
}

func (m Model) endCmd() tea.Cmd {
	sessionID := m.active.SessionID
	return func() tea.Msg {
		out, err := m.session.End(context.Background(), sessionID)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) cancelCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionCanceledMsg{err: m.session.Cancel(context.Background())}
	}
}
