package enquiry

import (
	"context"

	"github.com/altinukshini/batch-tui/internal/model"
)

// JobService is what the enquiry screen needs from the batch server.
// *api.Client implements it.
type JobService interface {
	ListJobInstances(ctx context.Context, page model.Page, q model.JobInstanceQuery) ([]model.JobInstance, error)
	GetJobInstance(ctx context.Context, id int64) (model.JobInstance, error)
	// JobInstanceMetrics may return an empty slice; that is not an error.
	JobInstanceMetrics(ctx context.Context, id int64) ([]model.Metric, error)
	RerunJobInstance(ctx context.Context, id int64, asNew bool) (model.JobInstance, error)
	ForceOKJobInstance(ctx context.Context, id int64) (model.JobInstance, error)
	StopJobInstance(ctx context.Context, id int64) (model.JobInstance, error)
}
