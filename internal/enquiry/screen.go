package enquiry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/model"
)

// RefreshRequest is a validated search ready to send to the server.
type RefreshRequest struct {
	Page  model.Page
	Query model.JobInstanceQuery
}

// HistoryView is the result of a history lookup. Empty histories carry a
// message instead of rows.
type HistoryView struct {
	ID      int64
	Metrics []model.Metric
	Message string
}

func (h HistoryView) Empty() bool {
	return len(h.Metrics) == 0
}

// Screen routes enquiry events to the criteria, grid and workflow. It is
// driven from a single event loop. The Prepare/Apply pairs let callers run
// the remote call elsewhere while state only changes in Apply.
type Screen struct {
	svc      JobService
	handoff  *Handoff
	criteria *Criteria
	grid     Grid
	workflow Workflow
	fields   Fields
	actions  Actions
	log      zerolog.Logger
}

func NewScreen(svc JobService, cfg config.EnquiryConfig, handoff *Handoff, log zerolog.Logger) *Screen {
	if handoff == nil {
		handoff = NewHandoff()
	}
	return &Screen{
		svc:      svc,
		handoff:  handoff,
		criteria: NewCriteria(cfg, handoff),
		log:      log.With().Str("component", "enquiry").Logger(),
	}
}

func (s *Screen) Service() JobService       { return s.svc }
func (s *Screen) Criteria() *Criteria       { return s.criteria }
func (s *Screen) Handoff() *Handoff         { return s.handoff }
func (s *Screen) Fields() Fields            { return s.fields }
func (s *Screen) SetFields(f Fields)        { s.fields = f }
func (s *Screen) Actions() Actions          { return s.actions }
func (s *Screen) Rows() []model.JobInstance { return s.grid.Rows() }
func (s *Screen) Len() int                  { return s.grid.Len() }
func (s *Screen) State() State              { return s.workflow.State() }

func (s *Screen) Selected() (model.JobInstance, bool) {
	return s.grid.Selected()
}

// Load sets the criteria to their defaults, applying and consuming any
// handoff. It does not search.
func (s *Screen) Load() Fields {
	s.fields = s.criteria.BuildDefault()
	return s.fields
}

// Reset restores the default criteria without searching.
func (s *Screen) Reset() Fields {
	s.fields = s.criteria.BuildDefault()
	s.log.Debug().Msg("criteria reset")
	return s.fields
}

// Jump queues criteria for the next refresh, replacing the current ones.
func (s *Screen) Jump(partial Fields) {
	s.handoff.Put(partial)
}

// PrepareRefresh validates the criteria. A handoff waiting in the slot
// replaces the current criteria first. On a validation error nothing else
// changes.
func (s *Screen) PrepareRefresh() (RefreshRequest, error) {
	if s.handoff.Pending() {
		s.fields = s.criteria.BuildDefault()
	}
	page, q, err := s.criteria.ToQuery(s.fields)
	if err != nil {
		s.log.Debug().Err(err).Msg("criteria rejected")
		return RefreshRequest{}, err
	}
	return RefreshRequest{Page: page, Query: q}, nil
}

func (s *Screen) ApplyRefresh(rows []model.JobInstance) {
	s.grid.ReplaceAll(rows)
	s.actions = Gate(nil)
	s.log.Info().Int("rows", s.grid.Len()).Msg("job instances loaded")
}

func (s *Screen) Refresh(ctx context.Context) error {
	req, err := s.PrepareRefresh()
	if err != nil {
		return err
	}
	rows, err := s.svc.ListJobInstances(ctx, req.Page, req.Query)
	if err != nil {
		s.log.Error().Err(err).Msg("list job instances failed")
		return fmt.Errorf("list job instances: %w", err)
	}
	s.ApplyRefresh(rows)
	return nil
}

// SelectionChanged records the highlighted row, 0 meaning none, and
// recomputes the permitted actions.
func (s *Screen) SelectionChanged(id int64) Actions {
	if id == 0 || !s.grid.Select(id) {
		s.grid.ClearSelection()
		s.actions = Gate(nil)
		return s.actions
	}
	row, _ := s.grid.Selected()
	s.actions = Gate(&row)
	return s.actions
}

// ApplyRead stores a freshly read row and selects it.
func (s *Screen) ApplyRead(row model.JobInstance) {
	s.grid.Patch(row.ID, row)
	s.SelectionChanged(row.ID)
}

// OpenDetail opens the detail dialog for row.
func (s *Screen) OpenDetail(row model.JobInstance) (Prompt, error) {
	return s.workflow.BeginDetail(&row)
}

// Activate re-reads the row before showing its detail so the dialog is not
// stale.
func (s *Screen) Activate(ctx context.Context, id int64) (Prompt, error) {
	row, err := s.svc.GetJobInstance(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("job_instance_id", id).Msg("read job instance failed")
		return Prompt{}, fmt.Errorf("read job instance %d: %w", id, err)
	}
	s.ApplyRead(row)
	return s.OpenDetail(row)
}

// Press opens the Yes/No confirmation for action on the selected row.
func (s *Screen) Press(action Action) (Prompt, error) {
	row, ok := s.grid.Selected()
	if !ok {
		return Prompt{}, ErrNoSelection
	}
	p, err := s.workflow.Begin(action, &row)
	if err != nil {
		return Prompt{}, err
	}
	s.log.Debug().Stringer("action", action).Int64("job_instance_id", row.ID).Msg("confirmation opened")
	return p, nil
}

func (s *Screen) Decline() bool {
	if !s.workflow.Decline() {
		return false
	}
	s.log.Debug().Msg("confirmation declined")
	return true
}

// PrepareConfirm answers Yes on the open prompt.
func (s *Screen) PrepareConfirm() (Pending, error) {
	return s.workflow.Confirm()
}

// PrepareRerun answers Rerun on the detail dialog.
func (s *Screen) PrepareRerun() (Pending, error) {
	if !s.workflow.InDetail() {
		return Pending{}, ErrNotPrompting
	}
	return s.workflow.Confirm()
}

// ApplyAction finishes a confirmed action with the server's answer.
func (s *Screen) ApplyAction(p Pending, row model.JobInstance, err error) error {
	patched, rerr := s.workflow.Complete(p, row, err, &s.grid)
	if rerr != nil {
		s.log.Error().Err(err).Stringer("action", p.Action).Int64("job_instance_id", p.ID).Msg("job instance action rejected")
		return rerr
	}
	s.log.Info().
		Stringer("action", p.Action).
		Int64("job_instance_id", p.ID).
		Str("status", string(row.Status)).
		Bool("patched", patched).
		Msg("job instance action applied")
	if sel, ok := s.grid.Selected(); ok {
		s.actions = Gate(&sel)
	}
	return nil
}

func (s *Screen) Confirm(ctx context.Context) error {
	p, err := s.PrepareConfirm()
	if err != nil {
		return err
	}
	row, err := p.Execute(ctx, s.svc)
	return s.ApplyAction(p, row, err)
}

func (s *Screen) ChooseRerun(ctx context.Context) error {
	p, err := s.PrepareRerun()
	if err != nil {
		return err
	}
	row, err := p.Execute(ctx, s.svc)
	return s.ApplyAction(p, row, err)
}

// PrepareHistory returns the id whose history should be fetched.
func (s *Screen) PrepareHistory() (int64, error) {
	row, ok := s.grid.Selected()
	if !ok {
		return 0, ErrNoSelection
	}
	return row.ID, nil
}

func (s *Screen) HistoryFor(id int64, metrics []model.Metric) HistoryView {
	h := HistoryView{ID: id, Metrics: metrics}
	if h.Empty() {
		h.Message = fmt.Sprintf("No history for job instance %d", id)
	}
	return h
}

func (s *Screen) History(ctx context.Context, id int64) (HistoryView, error) {
	metrics, err := s.svc.JobInstanceMetrics(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("job_instance_id", id).Msg("read history failed")
		return HistoryView{}, fmt.Errorf("read history of job instance %d: %w", id, err)
	}
	return s.HistoryFor(id, metrics), nil
}

// NextPage builds the request for the page after the current one. The
// criteria keep their Offset until ApplyPage commits the loaded page.
func (s *Screen) NextPage() (RefreshRequest, error) {
	page, q, err := s.criteria.ToQuery(s.fields)
	if err != nil {
		return RefreshRequest{}, err
	}
	page.Offset += page.Limit
	return RefreshRequest{Page: page, Query: q}, nil
}

// PrevPage builds the request for the page before the current one, stopping
// at 0. It reports false when already on the first page.
func (s *Screen) PrevPage() (RefreshRequest, bool, error) {
	page, q, err := s.criteria.ToQuery(s.fields)
	if err != nil {
		return RefreshRequest{}, false, err
	}
	if page.Offset == 0 {
		return RefreshRequest{}, false, nil
	}
	page.Offset -= page.Limit
	if page.Offset < 0 {
		page.Offset = 0
	}
	return RefreshRequest{Page: page, Query: q}, true, nil
}

// ApplyPage loads the rows of a page and moves Offset to it.
func (s *Screen) ApplyPage(page model.Page, rows []model.JobInstance) {
	s.fields.Offset = strconv.Itoa(page.Offset)
	s.ApplyRefresh(rows)
}
