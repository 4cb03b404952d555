package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/search"
	"github.com/altinukshini/batch-tui/internal/ui"
)

// Model shows the metrics of one job instance, one entry per line, with an
// in-view search.
type Model struct {
	viewport viewport.Model
	engine   *search.Engine
	history  enquiry.HistoryView
	visible  []model.Metric
	width    int
	height   int
	ready    bool
	loading  bool

	errorsOnly bool

	searchInput textinput.Model
	searching   bool
	searchQuery string
	searchErr   error
	matchLines  []int // indices into visible
	matchIndex  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search history (prefix / for regex)..."
	ti.CharLimit = 256
	return Model{engine: search.New(), searchInput: ti}
}

func (m *Model) SetLoading(id int64) {
	m.loading = true
	m.history = enquiry.HistoryView{ID: id}
}

func (m *Model) SetHistory(h enquiry.HistoryView) {
	m.history = h
	m.loading = false
	m.errorsOnly = false
	m.searchQuery = ""
	m.searchErr = nil
	m.matchLines = nil
	m.matchIndex = 0
	m.filter()
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m Model) ID() int64 {
	return m.history.ID
}

func (m Model) IsSearching() bool {
	return m.searching
}

func (m Model) MatchCount() int {
	return len(m.matchLines)
}

func (m Model) VisibleCount() int {
	return len(m.visible)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.runSearch()
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.searching = true
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case "n":
			m.jump(1)
			return m, nil
		case "N":
			m.jump(-1)
			return m, nil
		case "e":
			m.errorsOnly = !m.errorsOnly
			m.filter()
			m.runSearch()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 1
		if m.searching {
			headerH = 2
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerH)
			m.ready = true
			m.viewport.SetContent(m.render())
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerH
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// filter rebuilds the visible entries from the errors-only toggle.
func (m *Model) filter() {
	if !m.errorsOnly {
		m.visible = m.history.Metrics
		return
	}
	res, err := m.engine.Search(m.history.Metrics, model.HistoryQuery{ErrorsOnly: true})
	if err != nil {
		m.visible = m.history.Metrics
		return
	}
	m.visible = make([]model.Metric, len(res.Matches))
	for i, match := range res.Matches {
		m.visible[i] = match.Metric
	}
}

func (m *Model) runSearch() {
	m.matchLines = nil
	m.matchIndex = 0
	m.searchErr = nil
	if m.searchQuery != "" {
		q := model.HistoryQuery{Pattern: m.searchQuery}
		if len(q.Pattern) > 1 && q.Pattern[0] == '/' {
			q.Pattern = q.Pattern[1:]
			q.IsRegex = true
		}
		res, err := m.engine.Search(m.visible, q)
		if err != nil {
			m.searchErr = err
		} else {
			for _, match := range res.Matches {
				m.matchLines = append(m.matchLines, match.Index)
			}
		}
	}
	if m.ready {
		m.viewport.SetContent(m.render())
		if len(m.matchLines) > 0 {
			m.viewport.SetYOffset(m.matchLines[0])
		}
	}
}

func (m *Model) jump(delta int) {
	if len(m.matchLines) == 0 {
		return
	}
	m.matchIndex = (m.matchIndex + delta + len(m.matchLines)) % len(m.matchLines)
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(m.matchLines[m.matchIndex])
}

func (m Model) render() string {
	matchSet := make(map[int]bool, len(m.matchLines))
	for _, idx := range m.matchLines {
		matchSet[idx] = true
	}
	current := -1
	if m.matchIndex < len(m.matchLines) {
		current = m.matchLines[m.matchIndex]
	}

	highlight := lipgloss.NewStyle().Background(ui.ColorBorder)
	typeStyle := lipgloss.NewStyle().Width(8)

	lines := make([]string, len(m.visible))
	for i, mt := range m.visible {
		ts := "-"
		if !mt.Timestamp.IsZero() {
			ts = mt.Timestamp.Local().Format("2006-01-02 15:04:05")
		}
		ty := typeStyle.Render(mt.Type)
		if strings.EqualFold(mt.Type, search.ErrorType) {
			ty = typeStyle.Inherit(ui.StyleFailure).Render(mt.Type)
		}
		line := fmt.Sprintf(" %s  %s %s", ui.StyleMuted.Render(ts), ty, strings.ReplaceAll(mt.Message, "\n", " "))
		switch {
		case i == current:
			line = ui.StyleMatch.Render(line)
		case matchSet[i]:
			line = highlight.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  Loading history of job instance %d...", m.history.ID)
	}
	if m.history.Empty() {
		return "\n  " + ui.StyleMuted.Render(m.history.Message)
	}

	header := fmt.Sprintf(" Job instance %d history  %d entries  %3.f%%",
		m.history.ID, len(m.visible), m.viewport.ScrollPercent()*100)
	if m.errorsOnly {
		header += "  [errors only]"
	}
	switch {
	case m.searchErr != nil:
		header += "  [" + m.searchErr.Error() + "]"
	case m.searchQuery != "" && len(m.matchLines) > 0:
		header += fmt.Sprintf("  [%d/%d matches]", m.matchIndex+1, len(m.matchLines))
	case m.searchQuery != "":
		header += "  [no matches]"
	}
	hints := ui.StyleMuted.Render("  /:search  n/N:match  e:errors  g/G:top/bot  esc:back")
	headerLine := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorText).Render(header) + hints

	body := m.viewport.View()
	if len(m.visible) == 0 {
		body = "\n  " + ui.StyleMuted.Render("No error entries")
	}
	if m.searching {
		return headerLine + "\n  /" + m.searchInput.View() + "\n" + body
	}
	return headerLine + "\n" + body
}
