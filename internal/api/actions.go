package api

import (
	"context"
	"fmt"

	"github.com/altinukshini/batch-tui/internal/model"
)

type RerunConfig struct {
	AsNew bool `json:"as_new"`
}

// RerunJobInstance asks the server to run the instance again. With asNew the
// server creates a child instance instead of resetting this one.
func (c *Client) RerunJobInstance(ctx context.Context, id int64, asNew bool) (model.JobInstance, error) {
	var row model.JobInstance
	err := c.Post(ctx, fmt.Sprintf("job-instances/%d/rerun", id), RerunConfig{AsNew: asNew}, &row)
	if err != nil {
		return model.JobInstance{}, wrap(err, "rerun job instance %d", id)
	}
	return row, nil
}

func (c *Client) ForceOKJobInstance(ctx context.Context, id int64) (model.JobInstance, error) {
	var row model.JobInstance
	if err := c.Post(ctx, fmt.Sprintf("job-instances/%d/force-ok", id), nil, &row); err != nil {
		return model.JobInstance{}, wrap(err, "force OK job instance %d", id)
	}
	return row, nil
}

func (c *Client) StopJobInstance(ctx context.Context, id int64) (model.JobInstance, error) {
	var row model.JobInstance
	if err := c.Post(ctx, fmt.Sprintf("job-instances/%d/stop", id), nil, &row); err != nil {
		return model.JobInstance{}, wrap(err, "stop job instance %d", id)
	}
	return row, nil
}
