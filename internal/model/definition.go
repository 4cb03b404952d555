package model

// JobDefinition is a scheduled job as configured on the batch server.
type JobDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// BatchDefinition groups job definitions that run together.
type BatchDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type JobDefinitionsResponse struct {
	Jobs []JobDefinition `json:"jobs"`
}

type BatchDefinitionsResponse struct {
	Batches []BatchDefinition `json:"batches"`
}
