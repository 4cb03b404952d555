package criteriaform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/ui"
)

// ResultMsg is emitted when the user applies or cancels the form.
type ResultMsg struct {
	Applied bool
	Fields  enquiry.Fields
}

// Validator checks criteria before the form closes.
type Validator func(enquiry.Fields) error

type field int

const (
	fieldStatus field = iota
	fieldJob
	fieldBatch
	fieldJobInstance
	fieldBatchInstance
	fieldJobGroup
	fieldBatchGroup
	fieldDateFrom
	fieldDateTo
	fieldLimit
	fieldOffset
	fieldCount
)

// option is one entry of a cycling picker.
type option struct {
	value string
	label string
}

type Model struct {
	active   bool
	focused  field
	validate Validator

	statusIdx int // -1 = any
	jobs      []option
	jobIdx    int
	batches   []option
	batchIdx  int

	inputs map[field]*textinput.Model

	err      error
	errField field
	width    int
	height   int
}

// New opens the form pre-filled with current. Job and batch values that are
// not among the known definitions are kept as extra picker entries.
func New(jobs []model.JobDefinition, batches []model.BatchDefinition, current enquiry.Fields, validate Validator) Model {
	m := Model{
		active:    true,
		validate:  validate,
		statusIdx: -1,
		jobIdx:    -1,
		batchIdx:  -1,
		errField:  -1,
		inputs:    make(map[field]*textinput.Model),
	}

	for _, j := range jobs {
		m.jobs = append(m.jobs, option{value: j.ID, label: label(j.ID, j.Name)})
	}
	for _, b := range batches {
		m.batches = append(m.batches, option{value: b.ID, label: label(b.ID, b.Name)})
	}
	m.jobs, m.jobIdx = resolve(m.jobs, current.JobID)
	m.batches, m.batchIdx = resolve(m.batches, current.BatchID)

	if st, err := model.ParseStatus(current.Status); err == nil && st != "" {
		for i, s := range model.Statuses {
			if s == st {
				m.statusIdx = i
			}
		}
	}

	m.addInput(fieldJobInstance, current.JobInstanceID, "e.g. 1042", 19)
	m.addInput(fieldBatchInstance, current.BatchInstanceID, "e.g. 77", 19)
	m.addInput(fieldJobGroup, current.JobGroup, "any", 64)
	m.addInput(fieldBatchGroup, current.BatchGroup, "any", 64)
	m.addInput(fieldDateFrom, current.DateFrom, model.DateLayout, 10)
	m.addInput(fieldDateTo, current.DateTo, model.DateLayout, 10)
	m.addInput(fieldLimit, current.Limit, "1000", 7)
	m.addInput(fieldOffset, current.Offset, "0", 9)
	return m
}

func label(id, name string) string {
	if name == "" || name == id {
		return id
	}
	return fmt.Sprintf("%s (%s)", name, id)
}

func resolve(opts []option, value string) ([]option, int) {
	value = strings.TrimSpace(value)
	if value == "" {
		return opts, -1
	}
	for i, o := range opts {
		if o.value == value {
			return opts, i
		}
	}
	opts = append(opts, option{value: value, label: value})
	return opts, len(opts) - 1
}

func (m *Model) addInput(f field, value, placeholder string, limit int) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 24
	ti.SetValue(value)
	m.inputs[f] = &ti
}

// IsActive reports whether the form is visible.
func (m Model) IsActive() bool { return m.active }

// SetSize stores terminal dimensions so the form can centre itself.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) Init() tea.Cmd { return nil }

// Fields returns the criteria as currently entered.
func (m Model) Fields() enquiry.Fields {
	val := func(f field) string { return strings.TrimSpace(m.inputs[f].Value()) }
	f := enquiry.Fields{
		JobInstanceID:   val(fieldJobInstance),
		BatchInstanceID: val(fieldBatchInstance),
		JobGroup:        val(fieldJobGroup),
		BatchGroup:      val(fieldBatchGroup),
		DateFrom:        val(fieldDateFrom),
		DateTo:          val(fieldDateTo),
		Limit:           val(fieldLimit),
		Offset:          val(fieldOffset),
	}
	if m.statusIdx >= 0 && m.statusIdx < len(model.Statuses) {
		f.Status = string(model.Statuses[m.statusIdx])
	}
	if m.jobIdx >= 0 && m.jobIdx < len(m.jobs) {
		f.JobID = m.jobs[m.jobIdx].value
	}
	if m.batchIdx >= 0 && m.batchIdx < len(m.batches) {
		f.BatchID = m.batches[m.batchIdx].value
	}
	return f
}

// Err is the validation error shown under the form, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// A focused text input gets every key except navigation and esc.
	if ti := m.focusedInput(); ti != nil && ti.Focused() {
		switch keyMsg.String() {
		case "esc":
			m.active = false
			return m, emitResult(false, enquiry.Fields{})
		case "up":
			ti.Blur()
			m.moveFocus(-1)
			return m, nil
		case "down":
			ti.Blur()
			m.moveFocus(1)
			return m, nil
		case "enter", "tab":
			ti.Blur()
			m.moveFocus(1)
			return m, m.focusCurrentInput()
		case "shift+tab":
			ti.Blur()
			m.moveFocus(-1)
			return m, m.focusCurrentInput()
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(keyMsg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "j", "down", "tab":
		m.moveFocus(1)
	case "k", "up", "shift+tab":
		m.moveFocus(-1)

	// Cycle forward / enter text input.
	case "enter", "right", "l":
		switch m.focused {
		case fieldStatus:
			m.statusIdx = cycleForward(m.statusIdx, len(model.Statuses))
		case fieldJob:
			m.jobIdx = cycleForward(m.jobIdx, len(m.jobs))
		case fieldBatch:
			m.batchIdx = cycleForward(m.batchIdx, len(m.batches))
		default:
			return m, m.focusCurrentInput()
		}

	case "left", "h":
		switch m.focused {
		case fieldStatus:
			m.statusIdx = cycleBackward(m.statusIdx, len(model.Statuses))
		case fieldJob:
			m.jobIdx = cycleBackward(m.jobIdx, len(m.jobs))
		case fieldBatch:
			m.batchIdx = cycleBackward(m.batchIdx, len(m.batches))
		}

	// Apply.
	case "a":
		f := m.Fields()
		if m.validate != nil {
			if err := m.validate(f); err != nil {
				m.err = err
				m.errField = fieldFor(err)
				if m.errField >= 0 {
					m.focused = m.errField
				}
				return m, nil
			}
		}
		m.active = false
		return m, emitResult(true, f)

	// Clear.
	case "c":
		m.statusIdx, m.jobIdx, m.batchIdx = -1, -1, -1
		for _, ti := range m.inputs {
			ti.SetValue("")
		}
		m.err = nil
		m.errField = -1

	// Cancel.
	case "esc":
		m.active = false
		return m, emitResult(false, enquiry.Fields{})
	}
	return m, nil
}

// fieldFor maps a validation error back to the form row to focus.
func fieldFor(err error) field {
	var verr *enquiry.ValidationError
	if !errors.As(err, &verr) {
		return -1
	}
	switch verr.Field {
	case enquiry.FieldStatus:
		return fieldStatus
	case enquiry.FieldJobInstanceID:
		return fieldJobInstance
	case enquiry.FieldBatchInstanceID:
		return fieldBatchInstance
	case enquiry.FieldDateFrom:
		return fieldDateFrom
	case enquiry.FieldDateTo:
		return fieldDateTo
	case enquiry.FieldLimit:
		return fieldLimit
	case enquiry.FieldOffset:
		return fieldOffset
	}
	return -1
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(16).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(16).Bold(true).Foreground(ui.ColorPrimary)
	errLabelStyle := lipgloss.NewStyle().Width(16).Bold(true).Foreground(ui.ColorFailure)
	valueStyle := lipgloss.NewStyle().Foreground(ui.ColorText)
	allStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true)

	picker := func(opts []option, idx int, all string) string {
		if idx < 0 || idx >= len(opts) {
			return allStyle.Render(all)
		}
		return valueStyle.Render(opts[idx].label)
	}

	rows := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		ls := labelStyle
		switch {
		case f == m.errField:
			ls = errLabelStyle
		case f == m.focused:
			ls = focusedLabelStyle
		}

		var value string
		switch f {
		case fieldStatus:
			if m.statusIdx < 0 {
				value = allStyle.Render("Any status")
			} else {
				st := model.Statuses[m.statusIdx]
				value = ui.StatusStyle(st).Render(st.Label())
			}
		case fieldJob:
			value = picker(m.jobs, m.jobIdx, "All jobs")
		case fieldBatch:
			value = picker(m.batches, m.batchIdx, "All batches")
		default:
			value = m.inputs[f].View()
		}

		cursor := "  "
		if f == m.focused {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(labels[f]+":"), value))
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		MarginBottom(1).
		Render("Search Criteria")

	parts := []string{title, strings.Join(rows, "\n")}
	if m.err != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(ui.ColorFailure).MarginTop(1).Render(m.err.Error()))
	}
	parts = append(parts, lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1).
		Render("a: apply  c: clear  esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(64).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

var labels = map[field]string{
	fieldStatus:        enquiry.FieldStatus,
	fieldJob:           enquiry.FieldJobID,
	fieldBatch:         enquiry.FieldBatchID,
	fieldJobInstance:   enquiry.FieldJobInstanceID,
	fieldBatchInstance: enquiry.FieldBatchInstanceID,
	fieldJobGroup:      enquiry.FieldJobGroup,
	fieldBatchGroup:    enquiry.FieldBatchGroup,
	fieldDateFrom:      enquiry.FieldDateFrom,
	fieldDateTo:        enquiry.FieldDateTo,
	fieldLimit:         enquiry.FieldLimit,
	fieldOffset:        enquiry.FieldOffset,
}

func (m *Model) moveFocus(delta int) {
	next := int(m.focused) + delta
	if next < 0 {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = 0
	}
	m.focused = field(next)
}

func (m Model) focusedInput() *textinput.Model {
	return m.inputs[m.focused]
}

func (m *Model) focusCurrentInput() tea.Cmd {
	if ti := m.focusedInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

// cycleForward advances the index by one. -1 means "all", 0..max-1 are the
// actual entries, and going past the last entry wraps back to -1 (all).
func cycleForward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx++
	if idx >= count {
		idx = -1
	}
	return idx
}

// cycleBackward is the reverse of cycleForward.
func cycleBackward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx--
	if idx < -1 {
		idx = count - 1
	}
	return idx
}

func emitResult(applied bool, f enquiry.Fields) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Applied: applied, Fields: f}
	}
}
