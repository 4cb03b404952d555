package detail

import (
	"strings"
	"testing"

	"github.com/altinukshini/batch-tui/internal/model"
)

func TestRenderShowsKeyFields(t *testing.T) {
	d, _ := model.ParseDate("2024-03-01")
	out := Render(model.JobInstance{
		ID:              42,
		ParentID:        40,
		JobName:         "report",
		Status:          model.StatusFailed,
		ProcessDate:     d,
		BatchID:         "EOD",
		BatchName:       "End of day",
		BatchInstanceID: 7,
		StampBy:         "ops",
	})
	for _, want := range []string{"#42 report", "Failed", "2024-03-01", "#40", "End of day (EOD)", "#7", "ops"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOmitsParentWhenNone(t *testing.T) {
	out := Render(model.JobInstance{ID: 1, Status: model.StatusRunning})
	if strings.Contains(out, "Parent") {
		t.Errorf("unexpected parent line:\n%s", out)
	}
	if !strings.Contains(out, "Running") {
		t.Errorf("status missing:\n%s", out)
	}
}
