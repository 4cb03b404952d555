package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusFailed    Status = "failed"
	StatusSucceeded Status = "succeeded"
	StatusForcedOK  Status = "forced_ok"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every job instance status in display order.
var Statuses = []Status{
	StatusPending,
	StatusRunning,
	StatusFailed,
	StatusSucceeded,
	StatusForcedOK,
	StatusCancelled,
}

// ParseStatus accepts the wire form ("forced_ok") as well as loose operator
// input ("Forced OK", "FORCED-OK"). An empty string or "any" yields "".
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if norm == "" || norm == "any" {
		return "", nil
	}
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusFailed:
		return "Failed"
	case StatusSucceeded:
		return "Succeeded"
	case StatusForcedOK:
		return "Forced OK"
	case StatusCancelled:
		return "Cancelled"
	case "":
		return "Any"
	}
	return string(s)
}

type JobInstance struct {
	ID          int64  `json:"id"`
	ParentID    int64  `json:"parent_id,omitempty"`
	Status      Status `json:"status"`
	Priority    int    `json:"priority"`
	ProcessDate Date   `json:"process_date"`
	GroupJob    string `json:"group_job"`
	GroupBatch  string `json:"group_batch"`
	ExtraArgs   string `json:"extra_args"`

	// Joined by the server for display.
	JobName              string    `json:"job_name"`
	BatchInstanceID      int64     `json:"batch_instance_id,omitempty"`
	BatchID              string    `json:"batch_id"`
	BatchName            string    `json:"batch_name"`
	BatchInstanceStatus  Status    `json:"batch_instance_status"`
	BatchRunDate         Date      `json:"batch_run_date"`
	BatchInstanceRunDate Timestamp `json:"batch_instance_run_date"`
	StampBy              string    `json:"stamp_by"`
	StampTime            Timestamp `json:"stamp_time"`
}

func (j JobInstance) HasParent() bool {
	return j.ParentID > 0
}

type JobInstancesResponse struct {
	TotalCount   int           `json:"total_count"`
	JobInstances []JobInstance `json:"job_instances"`
}
