package model

import "time"

// Metric is one entry of a job instance's execution history.
type Metric struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
}

type MetricsResponse struct {
	Metrics []Metric `json:"metrics"`
}
