package enquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/model"
)

// fakeService records every call made against it.
type fakeService struct {
	rows       []model.JobInstance
	listErr    error
	read       map[int64]model.JobInstance
	readErr    error
	metrics    []model.Metric
	metricsErr error
	actionRow  model.JobInstance
	actionErr  error

	calls     []string
	lastPage  model.Page
	lastQuery model.JobInstanceQuery
}

func (f *fakeService) ListJobInstances(_ context.Context, page model.Page, q model.JobInstanceQuery) ([]model.JobInstance, error) {
	f.calls = append(f.calls, "list")
	f.lastPage, f.lastQuery = page, q
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeService) GetJobInstance(_ context.Context, id int64) (model.JobInstance, error) {
	f.calls = append(f.calls, fmt.Sprintf("get:%d", id))
	if f.readErr != nil {
		return model.JobInstance{}, f.readErr
	}
	return f.read[id], nil
}

func (f *fakeService) JobInstanceMetrics(_ context.Context, id int64) ([]model.Metric, error) {
	f.calls = append(f.calls, fmt.Sprintf("metrics:%d", id))
	return f.metrics, f.metricsErr
}

func (f *fakeService) RerunJobInstance(_ context.Context, id int64, asNew bool) (model.JobInstance, error) {
	f.calls = append(f.calls, fmt.Sprintf("rerun:%d:%t", id, asNew))
	return f.actionRow, f.actionErr
}

func (f *fakeService) ForceOKJobInstance(_ context.Context, id int64) (model.JobInstance, error) {
	f.calls = append(f.calls, fmt.Sprintf("force-ok:%d", id))
	return f.actionRow, f.actionErr
}

func (f *fakeService) StopJobInstance(_ context.Context, id int64) (model.JobInstance, error) {
	f.calls = append(f.calls, fmt.Sprintf("stop:%d", id))
	return f.actionRow, f.actionErr
}

func (f *fakeService) mutations() []string {
	var out []string
	for _, c := range f.calls {
		if c != "list" && !hasPrefix(c, "get:") && !hasPrefix(c, "metrics:") {
			out = append(out, c)
		}
	}
	return out
}

func hasPrefix(s, p string) bool {
	return len(s) >= len(p) && s[:len(p)] == p
}

var testToday = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func testConfig() config.EnquiryConfig {
	return config.EnquiryConfig{Limit: 1000, WindowBackDays: 90, WindowAheadDays: 3}
}

func newTestScreen(svc JobService, handoff *Handoff) *Screen {
	s := NewScreen(svc, testConfig(), handoff, zerolog.Nop())
	s.Criteria().SetClock(func() time.Time { return testToday })
	s.Load()
	return s
}

func sampleRows() []model.JobInstance {
	return []model.JobInstance{
		{ID: 40, Status: model.StatusSucceeded, JobName: "extract"},
		{ID: 41, Status: model.StatusRunning, JobName: "load"},
		{ID: 42, Status: model.StatusFailed, JobName: "report"},
	}
}
