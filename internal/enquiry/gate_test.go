package enquiry

import (
	"testing"

	"github.com/altinukshini/batch-tui/internal/model"
)

func TestGate(t *testing.T) {
	tests := []struct {
		status model.Status
		want   Actions
	}{
		{model.StatusPending, Actions{History: true, Rerun: true}},
		{model.StatusRunning, Actions{History: true, Rerun: true, Cancel: true}},
		{model.StatusFailed, Actions{History: true, Rerun: true, ForceOK: true}},
		{model.StatusSucceeded, Actions{History: true, Rerun: true}},
		{model.StatusForcedOK, Actions{History: true, Rerun: true}},
		{model.StatusCancelled, Actions{History: true, Rerun: true}},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			row := model.JobInstance{ID: 1, Status: tt.status}
			if got := Gate(&row); got != tt.want {
				t.Errorf("Gate(%s) = %+v, want %+v", tt.status, got, tt.want)
			}
		})
	}
}

func TestGateNoSelection(t *testing.T) {
	if got := Gate(nil); got != (Actions{}) {
		t.Errorf("Gate(nil) = %+v", got)
	}
}

func TestActionsAllows(t *testing.T) {
	a := Actions{History: true, Rerun: true, ForceOK: true}
	for action, want := range map[Action]bool{
		ActionHistory: true,
		ActionRerun:   true,
		ActionForceOK: true,
		ActionCancel:  false,
		Action(0):     false,
	} {
		if got := a.Allows(action); got != want {
			t.Errorf("Allows(%s) = %v, want %v", action, got, want)
		}
	}
}
