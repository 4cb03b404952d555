package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/ui"
)

// Dialog purposes carried back in ResultMsg.Action.
const (
	ActionConfirm = "confirm"
	ActionDetail  = "detail"
	ActionAlert   = "alert"
)

type ResultMsg struct {
	Action string
	Choice string
	Data   interface{}
}

type Model struct {
	Title    string
	Message  string
	Action   string
	Buttons  []string
	Data     interface{}
	active   bool
	selected int
	cancel   int // button chosen by esc
	width    int
	height   int
	color    lipgloss.Color
}

// New opens a dialog with the given buttons. The cancel button is the one
// esc picks and is highlighted first.
func New(title, message, action string, buttons []string, cancel int, data interface{}) Model {
	if cancel < 0 || cancel >= len(buttons) {
		cancel = 0
	}
	return Model{
		Title:    title,
		Message:  message,
		Action:   action,
		Buttons:  buttons,
		Data:     data,
		active:   true,
		selected: cancel,
		cancel:   cancel,
		color:    ui.ColorWarning,
	}
}

// Alert opens a blocking error dialog with a single OK button.
func Alert(title, message string) Model {
	m := New(title, message, ActionAlert, []string{"OK"}, 0, nil)
	m.color = ui.ColorFailure
	return m
}

func (m Model) IsActive() bool { return m.active }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := keyMsg.String(); k {
	case "esc":
		return m.choose(m.cancel)
	case "enter":
		return m.choose(m.selected)
	case "tab", "right", "l":
		m.selected = (m.selected + 1) % len(m.Buttons)
	case "shift+tab", "left", "h":
		m.selected = (m.selected - 1 + len(m.Buttons)) % len(m.Buttons)
	default:
		// y/n, o/r: the first letter of a button picks it.
		for i, b := range m.Buttons {
			if strings.EqualFold(k, b[:1]) {
				return m.choose(i)
			}
		}
	}
	return m, nil
}

func (m Model) choose(i int) (Model, tea.Cmd) {
	m.active = false
	result := ResultMsg{Action: m.Action, Choice: m.Buttons[i], Data: m.Data}
	return m, func() tea.Msg { return result }
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	width := 50
	for _, line := range strings.Split(m.Message, "\n") {
		if w := lipgloss.Width(line) + 6; w > width {
			width = w
		}
	}
	if m.width > 0 && width > m.width-2 {
		width = m.width - 2
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.color).
		Padding(1, 2).
		Width(width)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(m.color).
		Render(m.Title)

	buttons := make([]string, len(m.Buttons))
	hotkeys := make([]string, len(m.Buttons))
	for i, b := range m.Buttons {
		s := lipgloss.NewStyle().Padding(0, 1)
		if i == m.selected {
			s = s.Bold(true).Background(ui.ColorPrimary).Foreground(ui.ColorText)
		} else {
			s = s.Foreground(ui.ColorMuted)
		}
		buttons[i] = s.Render(b)
		hotkeys[i] = strings.ToLower(b[:1])
	}

	help := ui.StyleMuted.Render(strings.Join(hotkeys, "/") + " to choose, tab to move, esc to close")
	parts := []string{title}
	if m.Message != "" {
		parts = append(parts, "", m.Message)
	}
	parts = append(parts, "", strings.Join(buttons, "  "), "", help)
	box := style.Render(strings.Join(parts, "\n"))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
