package enquiry

import (
	"context"
	"fmt"

	"github.com/altinukshini/batch-tui/internal/model"
)

type Action int

const (
	ActionRerun Action = iota + 1
	ActionForceOK
	ActionCancel
	ActionHistory
)

func (a Action) String() string {
	switch a {
	case ActionRerun:
		return "Rerun"
	case ActionForceOK:
		return "Force OK"
	case ActionCancel:
		return "Cancel"
	case ActionHistory:
		return "History"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

type State int

const (
	StateIdle State = iota
	StatePrompting
	StateConfirmed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrompting:
		return "prompting"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

const (
	ButtonYes   = "Yes"
	ButtonNo    = "No"
	ButtonOK    = "OK"
	ButtonRerun = "Rerun"
)

// Prompt describes the dialog to show while the workflow is prompting.
// Detail prompts show Row and offer OK or Rerun.
type Prompt struct {
	Action  Action
	ID      int64
	Title   string
	Message string
	Buttons []string
	Detail  bool
	Row     model.JobInstance
}

// Pending is a confirmed action bound to the id captured when the prompt
// opened.
type Pending struct {
	Action Action
	ID     int64
	AsNew  bool
}

// Execute performs the action against the batch server. It touches no
// screen state so it can run off the event loop.
func (p Pending) Execute(ctx context.Context, svc JobService) (model.JobInstance, error) {
	switch p.Action {
	case ActionRerun:
		return svc.RerunJobInstance(ctx, p.ID, p.AsNew)
	case ActionForceOK:
		return svc.ForceOKJobInstance(ctx, p.ID)
	case ActionCancel:
		return svc.StopJobInstance(ctx, p.ID)
	}
	return model.JobInstance{}, fmt.Errorf("%s is not a job instance action", p.Action)
}

// Workflow is the confirm-then-apply state machine wrapped around every
// mutating action.
type Workflow struct {
	state  State
	last   State
	action Action
	id     int64
	detail bool
}

func (w *Workflow) State() State {
	return w.state
}

// Last is how the most recent prompt ended: StateConfirmed, StateCancelled,
// or StateIdle if none has ended yet.
func (w *Workflow) Last() State {
	return w.last
}

// Begin opens a Yes/No confirmation for action on row.
func (w *Workflow) Begin(action Action, row *model.JobInstance) (Prompt, error) {
	if w.state != StateIdle {
		return Prompt{}, ErrNotIdle
	}
	if row == nil {
		return Prompt{}, ErrNoSelection
	}
	if action == ActionHistory || !Gate(row).Allows(action) {
		return Prompt{}, fmt.Errorf("%s job instance %d (%s): %w", action, row.ID, row.Status.Label(), ErrActionNotAllowed)
	}
	w.open(action, row.ID, false)
	return Prompt{
		Action:  action,
		ID:      row.ID,
		Title:   fmt.Sprintf("%s job instance %d", action, row.ID),
		Message: fmt.Sprintf("Are you sure you want to %s?", action),
		Buttons: []string{ButtonYes, ButtonNo},
		Row:     *row,
	}, nil
}

// BeginDetail opens the row detail dialog. Choosing Rerun there confirms
// without a second prompt.
func (w *Workflow) BeginDetail(row *model.JobInstance) (Prompt, error) {
	if w.state != StateIdle {
		return Prompt{}, ErrNotIdle
	}
	if row == nil {
		return Prompt{}, ErrNoSelection
	}
	w.open(ActionRerun, row.ID, true)
	return Prompt{
		Action:  ActionRerun,
		ID:      row.ID,
		Title:   fmt.Sprintf("Job instance %d", row.ID),
		Buttons: []string{ButtonOK, ButtonRerun},
		Detail:  true,
		Row:     *row,
	}, nil
}

func (w *Workflow) open(action Action, id int64, detail bool) {
	w.state = StatePrompting
	w.action = action
	w.id = id
	w.detail = detail
}

// Decline answers No (or OK on a detail dialog). Nothing is sent to the
// server.
func (w *Workflow) Decline() bool {
	if w.state != StatePrompting {
		return false
	}
	w.reset()
	w.last = StateCancelled
	return true
}

// Confirm answers Yes (or Rerun on a detail dialog) and hands back the
// action to execute. The workflow stays Confirmed until Complete.
func (w *Workflow) Confirm() (Pending, error) {
	if w.state != StatePrompting {
		return Pending{}, ErrNotPrompting
	}
	w.state = StateConfirmed
	return Pending{Action: w.action, ID: w.id}, nil
}

// InDetail reports whether the open prompt is the row detail dialog.
func (w *Workflow) InDetail() bool {
	return w.state == StatePrompting && w.detail
}

// Complete applies the outcome of an executed action. On success the
// returned row replaces the grid row and patched reports whether it was
// present. On failure the grid is not touched and an *ActionRejected is
// returned. Either way the workflow is idle afterwards.
func (w *Workflow) Complete(p Pending, row model.JobInstance, err error, grid *Grid) (patched bool, rerr error) {
	w.reset()
	w.last = StateConfirmed
	if err != nil {
		return false, &ActionRejected{Action: p.Action, ID: p.ID, Err: err}
	}
	return grid.Patch(p.ID, row), nil
}

func (w *Workflow) reset() {
	w.state = StateIdle
	w.action = 0
	w.id = 0
	w.detail = false
}
