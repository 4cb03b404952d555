package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/altinukshini/batch-tui/internal/model"
)

type JobInstancesFilter struct {
	Page  model.Page
	Query model.JobInstanceQuery
}

func (f JobInstancesFilter) QueryString() string {
	v := url.Values{}
	q := f.Query
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.JobInstanceID > 0 {
		v.Set("job_instance_id", strconv.FormatInt(q.JobInstanceID, 10))
	}
	if q.BatchInstanceID > 0 {
		v.Set("batch_instance_id", strconv.FormatInt(q.BatchInstanceID, 10))
	}
	if q.JobID != "" {
		v.Set("job_id", q.JobID)
	}
	if q.BatchID != "" {
		v.Set("batch_id", q.BatchID)
	}
	if q.JobGroup != "" {
		v.Set("job_group", q.JobGroup)
	}
	if q.BatchGroup != "" {
		v.Set("batch_group", q.BatchGroup)
	}
	if !q.DateFrom.IsZero() {
		v.Set("date_from", q.DateFrom.String())
	}
	if !q.DateTo.IsZero() {
		v.Set("date_to", q.DateTo.String())
	}
	if f.Page.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Page.Limit))
		v.Set("offset", strconv.Itoa(f.Page.Offset))
	}
	if qs := v.Encode(); qs != "" {
		return "?" + qs
	}
	return ""
}

func (c *Client) ListJobInstances(ctx context.Context, page model.Page, q model.JobInstanceQuery) ([]model.JobInstance, error) {
	filter := JobInstancesFilter{Page: page, Query: q}
	var resp model.JobInstancesResponse
	err := c.Get(ctx, "job-instances"+filter.QueryString(), &resp)
	if err != nil {
		err = wrap(err, "list job instances")
		// A batch that was purged has no instances; show it as empty.
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp.JobInstances, nil
}

func (c *Client) GetJobInstance(ctx context.Context, id int64) (model.JobInstance, error) {
	var row model.JobInstance
	if err := c.Get(ctx, fmt.Sprintf("job-instances/%d", id), &row); err != nil {
		return model.JobInstance{}, wrap(err, "get job instance %d", id)
	}
	return row, nil
}

func (c *Client) JobInstanceMetrics(ctx context.Context, id int64) ([]model.Metric, error) {
	var resp model.MetricsResponse
	if err := c.Get(ctx, fmt.Sprintf("job-instances/%d/metrics", id), &resp); err != nil {
		return nil, wrap(err, "get metrics for job instance %d", id)
	}
	return resp.Metrics, nil
}
