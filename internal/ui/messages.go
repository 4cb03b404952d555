package ui

import (
	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/model"
)

// RefreshMsg asks the app to run the current search.
type RefreshMsg struct{}

// Data fetched messages
type JobInstancesLoadedMsg struct {
	Rows  []model.JobInstance
	Page  model.Page
	Paged bool
	Err   error
}

type JobInstanceReadMsg struct {
	ID  int64
	Row model.JobInstance
	Err error
}

type HistoryLoadedMsg struct {
	ID      int64
	Metrics []model.Metric
	Err     error
}

type DefinitionsLoadedMsg struct {
	Jobs    []model.JobDefinition
	Batches []model.BatchDefinition
	Err     error
}

// Action result messages
type ActionResultMsg struct {
	Pending enquiry.Pending
	Row     model.JobInstance
	Err     error
}

type SelectionChangedMsg struct {
	ID int64 // 0 when nothing is highlighted
}

type StatusMsg struct {
	Text string
}
