package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/altinukshini/batch-tui/internal/api"
	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/tui/confirm"
	"github.com/altinukshini/batch-tui/internal/tui/criteriaform"
	"github.com/altinukshini/batch-tui/internal/tui/detail"
	"github.com/altinukshini/batch-tui/internal/tui/grid"
	"github.com/altinukshini/batch-tui/internal/tui/history"
	"github.com/altinukshini/batch-tui/internal/ui"
)

// DefinitionSource supplies the job and batch pickers of the criteria form.
type DefinitionSource interface {
	ListJobDefinitions(ctx context.Context) ([]model.JobDefinition, error)
	ListBatchDefinitions(ctx context.Context) ([]model.BatchDefinition, error)
}

type App struct {
	cfg    config.Config
	screen *enquiry.Screen
	defs   DefinitionSource
	ctx    context.Context
	log    zerolog.Logger

	// Views
	gridView    grid.Model
	historyView history.Model
	form        criteriaform.Model
	dialog      confirm.Model

	// Cached for the criteria pickers
	jobs    []model.JobDefinition
	batches []model.BatchDefinition

	// Last page fetched
	page    model.Page
	fetched int

	// State
	width       int
	height      int
	status      string
	statusErr   bool
	busy        bool
	showHelp    bool
	showHistory bool
}

// NewApp opens the enquiry screen. The criteria start from their defaults
// with any pending handoff applied.
func NewApp(cfg config.Config, screen *enquiry.Screen, defs DefinitionSource, log zerolog.Logger) App {
	screen.Load()
	return App{
		cfg:         cfg,
		screen:      screen,
		defs:        defs,
		ctx:         context.Background(),
		log:         log.With().Str("component", "tui").Logger(),
		gridView:    grid.New(),
		historyView: history.New(),
		status:      "Loading job instances...",
	}
}

// WithContext sets the context remote calls run under.
func (a App) WithContext(ctx context.Context) App {
	a.ctx = ctx
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.fetchDefinitions(), func() tea.Msg { return ui.RefreshMsg{} })
}

// --- Remote calls ---
//
// Each command captures what it needs up front and never touches the
// screen; results come back as messages and are applied in Update.

func (a App) fetchDefinitions() tea.Cmd {
	if a.defs == nil {
		return nil
	}
	ctx, defs := a.ctx, a.defs
	return func() tea.Msg {
		jobs, err := defs.ListJobDefinitions(ctx)
		if err != nil {
			return ui.DefinitionsLoadedMsg{Err: err}
		}
		batches, err := defs.ListBatchDefinitions(ctx)
		return ui.DefinitionsLoadedMsg{Jobs: jobs, Batches: batches, Err: err}
	}
}

// startRefresh validates the criteria and lists job instances. Invalid
// criteria are reported and nothing is fetched.
func (a *App) startRefresh() tea.Cmd {
	req, err := a.screen.PrepareRefresh()
	if err != nil {
		a.setError(err)
		return nil
	}
	return a.list(req, false)
}

// list fetches one page. A paged fetch only moves the criteria Offset once
// the page has loaded.
func (a *App) list(req enquiry.RefreshRequest, paged bool) tea.Cmd {
	a.busy = true
	a.gridView.SetLoading(true)
	a.setStatus("Loading job instances...")

	ctx, svc := a.ctx, a.screen.Service()
	return func() tea.Msg {
		rows, err := svc.ListJobInstances(ctx, req.Page, req.Query)
		return ui.JobInstancesLoadedMsg{Rows: rows, Page: req.Page, Paged: paged, Err: err}
	}
}

func (a *App) readJobInstance(id int64) tea.Cmd {
	a.busy = true
	a.setStatus(fmt.Sprintf("Reading job instance %d...", id))

	ctx, svc := a.ctx, a.screen.Service()
	return func() tea.Msg {
		row, err := svc.GetJobInstance(ctx, id)
		return ui.JobInstanceReadMsg{ID: id, Row: row, Err: err}
	}
}

func (a *App) fetchHistory(id int64) tea.Cmd {
	a.busy = true
	a.showHistory = true
	a.historyView.SetLoading(id)
	a.setStatus(fmt.Sprintf("Loading history of job instance %d...", id))

	ctx, svc := a.ctx, a.screen.Service()
	return func() tea.Msg {
		metrics, err := svc.JobInstanceMetrics(ctx, id)
		return ui.HistoryLoadedMsg{ID: id, Metrics: metrics, Err: err}
	}
}

func (a *App) execute(p enquiry.Pending) tea.Cmd {
	a.busy = true
	a.setStatus(fmt.Sprintf("%s job instance %d...", p.Action, p.ID))

	ctx, svc := a.ctx, a.screen.Service()
	return func() tea.Msg {
		row, err := p.Execute(ctx, svc)
		return ui.ActionResultMsg{Pending: p, Row: row, Err: err}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case ui.RefreshMsg:
		return &a, a.startRefresh()

	case ui.DefinitionsLoadedMsg:
		if msg.Err != nil {
			a.log.Warn().Err(msg.Err).Msg("definitions unavailable, pickers limited to typed values")
		}
		a.jobs = msg.Jobs
		a.batches = msg.Batches
		return &a, nil

	case ui.JobInstancesLoadedMsg:
		a.busy = false
		a.gridView.SetLoading(false)
		if msg.Err != nil {
			a.setError(msg.Err)
			return &a, nil
		}
		a.page = msg.Page
		a.fetched = len(msg.Rows)
		if msg.Paged {
			a.screen.ApplyPage(msg.Page, msg.Rows)
		} else {
			a.screen.ApplyRefresh(msg.Rows)
		}
		cmd := a.gridView.SetRows(a.screen.Rows())
		a.screen.SelectionChanged(a.gridView.SelectedID())
		a.setStatus(a.pageStatus())
		return &a, cmd

	case ui.SelectionChangedMsg:
		a.screen.SelectionChanged(msg.ID)
		return &a, nil

	case ui.JobInstanceReadMsg:
		a.busy = false
		if msg.Err != nil {
			a.setError(msg.Err)
			return &a, nil
		}
		a.screen.ApplyRead(msg.Row)
		cmd := a.gridView.ReplaceRow(msg.Row)
		p, err := a.screen.OpenDetail(msg.Row)
		if err != nil {
			a.setError(err)
			return &a, cmd
		}
		a.openPrompt(p)
		a.setStatus(a.pageStatus())
		return &a, cmd

	case ui.HistoryLoadedMsg:
		a.busy = false
		if msg.Err != nil {
			a.showHistory = false
			a.setError(msg.Err)
			return &a, nil
		}
		h := a.screen.HistoryFor(msg.ID, msg.Metrics)
		a.historyView.SetHistory(h)
		if h.Empty() {
			a.setStatus(h.Message)
		} else {
			a.setStatus(fmt.Sprintf("%d history entries for job instance %d", len(h.Metrics), h.ID))
		}
		return &a, nil

	case ui.ActionResultMsg:
		a.busy = false
		if err := a.screen.ApplyAction(msg.Pending, msg.Row, msg.Err); err != nil {
			a.dialog = confirm.Alert(msg.Pending.Action.String()+" failed", errorText(err))
			a.dialog.SetSize(a.width, a.height)
			a.setError(err)
			return &a, nil
		}
		var cmd tea.Cmd
		if msg.Row.ID == msg.Pending.ID {
			cmd = a.gridView.ReplaceRow(msg.Row)
		}
		a.setStatus(fmt.Sprintf("%s job instance %d: %s", msg.Pending.Action, msg.Pending.ID, msg.Row.Status.Label()))
		return &a, cmd

	case ui.StatusMsg:
		a.setStatus(msg.Text)
		return &a, nil

	case confirm.ResultMsg:
		return a.handleDialogResult(msg)

	case criteriaform.ResultMsg:
		if !msg.Applied {
			a.setStatus("Criteria unchanged")
			return &a, nil
		}
		a.screen.SetFields(msg.Fields)
		return &a, a.startRefresh()

	case grid.NeedNextPageMsg:
		if a.busy || !a.pageFull() {
			return &a, nil
		}
		return &a, a.nextPage()
	}

	// Anything else (filter results, cursor blinks) belongs to the views.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.gridView, cmd = a.gridView.Update(msg)
	cmds = append(cmds, cmd)
	if a.form.IsActive() {
		a.form, cmd = a.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.showHistory {
		a.historyView, cmd = a.historyView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return &a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// One remote call at a time: while it runs only quit gets through.
	if a.busy {
		if key.Matches(msg, ui.Keys.Quit) {
			return &a, tea.Quit
		}
		return &a, nil
	}

	// Help overlay dismisses on any key
	if a.showHelp {
		a.showHelp = false
		return &a, nil
	}

	var cmd tea.Cmd
	switch {
	case a.dialog.IsActive():
		a.dialog, cmd = a.dialog.Update(msg)
		return &a, cmd

	case a.form.IsActive():
		a.form, cmd = a.form.Update(msg)
		return &a, cmd

	case a.showHistory:
		if !a.historyView.IsSearching() {
			switch {
			case key.Matches(msg, ui.Keys.Back):
				a.showHistory = false
				a.setStatus(a.pageStatus())
				return &a, nil
			case key.Matches(msg, ui.Keys.Quit):
				return &a, tea.Quit
			}
		}
		a.historyView, cmd = a.historyView.Update(msg)
		return &a, cmd

	case a.gridView.IsFiltering():
		a.gridView, cmd = a.gridView.Update(msg)
		return &a, cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return &a, tea.Quit

	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true

	case key.Matches(msg, ui.Keys.Refresh):
		return &a, a.startRefresh()

	case key.Matches(msg, ui.Keys.Reset):
		a.screen.Reset()
		a.setStatus("Criteria reset to defaults, press r to search")

	case key.Matches(msg, ui.Keys.Criteria):
		a.openForm()

	case key.Matches(msg, ui.Keys.Enter):
		if id := a.gridView.SelectedID(); id != 0 {
			return &a, a.readJobInstance(id)
		}

	case key.Matches(msg, ui.Keys.Rerun):
		a.press(enquiry.ActionRerun)

	case key.Matches(msg, ui.Keys.ForceOK):
		a.press(enquiry.ActionForceOK)

	case key.Matches(msg, ui.Keys.Cancel):
		a.press(enquiry.ActionCancel)

	case key.Matches(msg, ui.Keys.History):
		id, err := a.screen.PrepareHistory()
		if err != nil {
			a.setError(err)
			return &a, nil
		}
		return &a, a.fetchHistory(id)

	case key.Matches(msg, ui.Keys.NextPage):
		if !a.pageFull() {
			a.setStatus("No more job instances")
			return &a, nil
		}
		return &a, a.nextPage()

	case key.Matches(msg, ui.Keys.PrevPage):
		return &a, a.prevPage()

	case key.Matches(msg, ui.Keys.BatchJump):
		return &a, a.jumpToBatch()

	case key.Matches(msg, ui.Keys.ParentJump):
		return &a, a.jumpToParent()

	default:
		a.gridView, cmd = a.gridView.Update(msg)
		return &a, cmd
	}
	return &a, nil
}

func (a App) handleDialogResult(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	var (
		p   enquiry.Pending
		err error
	)
	switch {
	case msg.Action == confirm.ActionAlert:
		return &a, nil
	case msg.Action == confirm.ActionConfirm && msg.Choice == enquiry.ButtonYes:
		p, err = a.screen.PrepareConfirm()
	case msg.Action == confirm.ActionDetail && msg.Choice == enquiry.ButtonRerun:
		p, err = a.screen.PrepareRerun()
	default:
		if a.screen.Decline() && msg.Action == confirm.ActionConfirm {
			a.setStatus("Cancelled, nothing was sent")
		}
		return &a, nil
	}
	if err != nil {
		a.setError(err)
		return &a, nil
	}
	return &a, a.execute(p)
}

// press opens the confirmation for action on the selected row.
func (a *App) press(action enquiry.Action) {
	p, err := a.screen.Press(action)
	if err != nil {
		a.setError(err)
		return
	}
	a.openPrompt(p)
}

func (a *App) openPrompt(p enquiry.Prompt) {
	if p.Detail {
		a.dialog = confirm.New(p.Title, detail.Render(p.Row), confirm.ActionDetail, p.Buttons, 0, p)
	} else {
		a.dialog = confirm.New(p.Title, p.Message, confirm.ActionConfirm, p.Buttons, 1, p)
	}
	a.dialog.SetSize(a.width, a.height)
}

func (a *App) openForm() {
	criteria := a.screen.Criteria()
	validate := func(f enquiry.Fields) error {
		_, _, err := criteria.ToQuery(f)
		return err
	}
	a.form = criteriaform.New(a.jobs, a.batches, a.screen.Fields(), validate)
	a.form.SetSize(a.width, a.height)
}

// pageFull reports whether the last page came back full, so a next page
// may exist.
func (a App) pageFull() bool {
	return a.page.Limit > 0 && a.fetched >= a.page.Limit
}

func (a *App) nextPage() tea.Cmd {
	req, err := a.screen.NextPage()
	if err != nil {
		a.setError(err)
		return nil
	}
	return a.list(req, true)
}

func (a *App) prevPage() tea.Cmd {
	req, moved, err := a.screen.PrevPage()
	if err != nil {
		a.setError(err)
		return nil
	}
	if !moved {
		a.setStatus("Already on the first page")
		return nil
	}
	return a.list(req, true)
}

func (a *App) jumpToBatch() tea.Cmd {
	row, ok := a.screen.Selected()
	if !ok {
		a.setError(enquiry.ErrNoSelection)
		return nil
	}
	if row.BatchInstanceID == 0 {
		a.setStatus(fmt.Sprintf("Job instance %d has no batch instance", row.ID))
		return nil
	}
	a.screen.Jump(enquiry.Fields{BatchInstanceID: strconv.FormatInt(row.BatchInstanceID, 10)})
	return a.startRefresh()
}

func (a *App) jumpToParent() tea.Cmd {
	row, ok := a.screen.Selected()
	if !ok {
		a.setError(enquiry.ErrNoSelection)
		return nil
	}
	if !row.HasParent() {
		a.setStatus(fmt.Sprintf("Job instance %d has no parent", row.ID))
		return nil
	}
	a.screen.Jump(enquiry.Fields{JobInstanceID: strconv.FormatInt(row.ParentID, 10)})
	return a.startRefresh()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

// errorText is the message shown for err. Auth failures from the server get
// a hint about the token.
func errorText(err error) string {
	var re *api.RemoteError
	if errors.As(err, &re) && re.Unauthorized() {
		return err.Error() + " (check the server token)"
	}
	return err.Error()
}

func (a *App) setError(err error) {
	a.status = errorText(err)
	a.statusErr = true
	a.log.Debug().Err(err).Msg("error shown")
}

func (a App) pageStatus() string {
	n := a.screen.Len()
	if n == 0 {
		return grid.EmptyMessage
	}
	s := fmt.Sprintf("Job instances %d-%d", a.page.Offset+1, a.page.Offset+n)
	if a.pageFull() {
		s += "  (] for more)"
	}
	return s
}

func (a App) contentHeight() int {
	// header(1) + action bar(1) + status(1) + pane border(2)
	h := a.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) propagateSize() {
	contentH := a.contentHeight()
	a.gridView, _ = a.gridView.Update(
		tea.WindowSizeMsg{Width: a.width - 4, Height: contentH})
	a.historyView, _ = a.historyView.Update(
		tea.WindowSizeMsg{Width: a.width - 4, Height: contentH})
	a.form.SetSize(a.width, a.height)
	a.dialog.SetSize(a.width, a.height)
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.cfg.ServerHost(), a.screen.Fields(), a.width)
	actions := RenderActionBar(a.screen.Actions(), a.width)

	pane := ui.StylePaneFocused.Width(a.width - 2).Height(a.contentHeight())
	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.dialog.IsActive():
		content = a.dialog.View()
	case a.form.IsActive():
		content = a.form.View()
	case a.showHistory:
		content = pane.Render(a.historyView.View())
	default:
		content = pane.Render(a.gridView.View())
	}

	statusBar := RenderStatusBar(a.status, a.statusErr, a.contextHints(), a.width)

	// Hard clamp: header, action bar and status bar take 3 lines.
	maxContentLines := a.height - 3
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + actions + "\n" + content + "\n" + statusBar
}

func (a App) contextHints() string {
	switch {
	case a.busy:
		return "working...  q:quit"
	case a.dialog.IsActive():
		return "tab:move  enter:choose  esc:close"
	case a.form.IsActive():
		return "j/k:field  enter:edit/cycle  a:apply  c:clear  esc:cancel"
	case a.showHistory:
		if a.historyView.IsSearching() {
			return "enter:search  esc:cancel"
		}
		return "/:search  n/N:match  e:errors only  g/G:top/bot  esc:back"
	case a.gridView.IsFiltering():
		return "enter:apply filter  esc:cancel"
	}
	var parts []string
	if a.gridView.HasActiveFilter() {
		parts = append(parts, "esc:clear filter")
	}
	for _, b := range a.gridView.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(append(parts, "[/]:page", "b/p:jump", "?:help", "q:quit"), "  ")
}

func (a App) renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("enter", "Re-read and show job instance detail"))
	b.WriteString(row("f", "Filter the loaded rows"))
	b.WriteString(row("[ / ]", "Previous / next page"))
	b.WriteString(row("esc", "Back"))
	b.WriteString(row("q", "Quit"))

	b.WriteString("\n" + bold.Render("  Search") + "\n\n")
	b.WriteString(row("S", "Edit search criteria"))
	b.WriteString(row("r", "Refresh"))
	b.WriteString(row("ctrl+r", "Reset criteria to defaults"))
	b.WriteString(row("b", "Show the batch instance of the row"))
	b.WriteString(row("p", "Show the parent job instance"))

	b.WriteString("\n" + bold.Render("  Actions") + "\n\n")
	b.WriteString(row("R", "Rerun"))
	b.WriteString(row("F", "Force OK (failed only)"))
	b.WriteString(row("C", "Cancel (running only)"))
	b.WriteString(row("h", "History"))

	b.WriteString("\n" + bold.Render("  History") + "\n\n")
	b.WriteString(row("/", "Search messages (start with / for a regex)"))
	b.WriteString(row("n / N", "Next / previous match"))
	b.WriteString(row("e", "Errors only"))
	b.WriteString(row("g / G", "Go to top / bottom"))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")

	style := ui.StylePane.Width(a.width - 2).Height(a.contentHeight())
	return style.Render(b.String())
}
