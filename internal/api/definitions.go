package api

import (
	"context"

	"github.com/altinukshini/batch-tui/internal/model"
)

// ListJobDefinitions returns the configured jobs, used to fill the job picker.
func (c *Client) ListJobDefinitions(ctx context.Context) ([]model.JobDefinition, error) {
	var resp model.JobDefinitionsResponse
	if err := c.Get(ctx, "jobs", &resp); err != nil {
		return nil, wrap(err, "list job definitions")
	}
	return resp.Jobs, nil
}

func (c *Client) ListBatchDefinitions(ctx context.Context) ([]model.BatchDefinition, error) {
	var resp model.BatchDefinitionsResponse
	if err := c.Get(ctx, "batches", &resp); err != nil {
		return nil, wrap(err, "list batch definitions")
	}
	return resp.Batches, nil
}
