package grid

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/ui"
)

const EmptyMessage = "No job instances match the criteria"

// NeedNextPageMsg is emitted when the cursor is on the last row and the user
// presses down.
type NeedNextPageMsg struct{}

// --- Custom delegate (avoids DefaultDelegate ANSI corruption during filtering) ---

type rowDelegate struct{}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(rowItem)
	if !ok {
		return
	}
	r := ri.row

	status := ui.StatusStyle(r.Status).Render(r.Status.Label())
	date := ui.StyleMuted.Render(r.ProcessDate.String())
	line1 := fmt.Sprintf(" %s #%d %s  %s  %s", ui.StatusIcon(r.Status), r.ID, r.JobName, status, date)

	batch := r.BatchName
	if r.BatchInstanceID > 0 {
		batch = fmt.Sprintf("%s (#%d)", r.BatchName, r.BatchInstanceID)
	}
	line2 := fmt.Sprintf("    %s  %s", ui.StyleInfo.Render(batch), ui.StyleMuted.Render(groups(r)))
	if r.HasParent() {
		line2 += ui.StyleMuted.Render(fmt.Sprintf("  parent #%d", r.ParentID))
	}

	if index == m.Index() {
		hl := lipgloss.NewStyle().Background(ui.ColorHighlight).Width(m.Width())
		line1 = hl.Render(line1)
		line2 = hl.Render(line2)
	}

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}

func groups(r model.JobInstance) string {
	switch {
	case r.GroupJob != "" && r.GroupBatch != "":
		return r.GroupJob + "/" + r.GroupBatch
	case r.GroupJob != "":
		return r.GroupJob
	}
	return r.GroupBatch
}

// --- Item ---

type rowItem struct {
	row model.JobInstance
}

func (r rowItem) FilterValue() string {
	return strconv.FormatInt(r.row.ID, 10) + " " + r.row.JobName + " " + r.row.BatchName + " " +
		r.row.GroupJob + " " + r.row.GroupBatch + " " + r.row.Status.Label()
}

// --- Model ---

type Model struct {
	list    list.Model
	width   int
	height  int
	loading bool
}

func New() Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("job instance", "job instances")
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = ui.Keys.Filter
	// ] and [ page through the server; the list's own pages stay on pgup/pgdown.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page"))
	l.DisableQuitKeybindings()

	return Model{list: l, loading: true}
}

func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetRows replaces every row and moves the cursor to the first one.
func (m *Model) SetRows(rows []model.JobInstance) tea.Cmd {
	m.loading = false
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = rowItem{row: r}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

// ReplaceRow swaps in a new copy of the row with the same id, keeping the
// cursor where it is. Unknown ids are ignored.
func (m *Model) ReplaceRow(row model.JobInstance) tea.Cmd {
	for i, it := range m.list.Items() {
		if ri, ok := it.(rowItem); ok && ri.row.ID == row.ID {
			return m.list.SetItem(i, rowItem{row: row})
		}
	}
	return nil
}

// SelectedID returns the id under the cursor, or 0.
func (m Model) SelectedID() int64 {
	if item, ok := m.list.SelectedItem().(rowItem); ok {
		return item.row.ID
	}
	return 0
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.SelectedID()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The list can disable its filter binding after SetSize with no
		// items; re-enable it so 'f' always works once rows exist.
		if msg.String() == "f" && !m.IsFiltering() && len(m.list.Items()) > 0 {
			m.list.KeyMap.Filter.SetEnabled(true)
		}

		if !m.IsFiltering() {
			isDown := msg.String() == "j" || msg.Type == tea.KeyDown
			if isDown && len(m.list.Items()) > 0 && m.list.Index() >= len(m.list.Items())-1 {
				return m, func() tea.Msg { return NeedNextPageMsg{} }
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	if after := m.SelectedID(); after != before {
		changed := func() tea.Msg { return ui.SelectionChangedMsg{ID: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading job instances..."
	}
	if len(m.list.Items()) == 0 {
		return "\n  " + ui.StyleMuted.Render(EmptyMessage)
	}
	return m.list.View()
}

func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) HasActiveFilter() bool {
	return m.list.FilterState() != list.Unfiltered
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{
		ui.Keys.Enter,
		ui.Keys.Criteria,
		ui.Keys.Filter,
		ui.Keys.Refresh,
	}
}
