package enquiry

import "github.com/altinukshini/batch-tui/internal/model"

// Actions says which actions the current selection permits.
type Actions struct {
	History bool
	Rerun   bool
	ForceOK bool
	Cancel  bool
}

// Gate derives the permitted actions from the selected row, nil meaning no
// selection.
func Gate(row *model.JobInstance) Actions {
	if row == nil {
		return Actions{}
	}
	return Actions{
		History: true,
		Rerun:   true,
		ForceOK: row.Status == model.StatusFailed,
		Cancel:  row.Status == model.StatusRunning,
	}
}

func (a Actions) Allows(action Action) bool {
	switch action {
	case ActionHistory:
		return a.History
	case ActionRerun:
		return a.Rerun
	case ActionForceOK:
		return a.ForceOK
	case ActionCancel:
		return a.Cancel
	}
	return false
}
