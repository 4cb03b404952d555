package model

// Page bounds a list request. The server never caps a page on its own, so
// Limit is always sent.
type Page struct {
	Limit  int
	Offset int
}

// JobInstanceQuery is the typed search filter. Zero values are omitted from
// the request.
type JobInstanceQuery struct {
	Status          Status
	JobInstanceID   int64
	BatchInstanceID int64
	JobID           string
	BatchID         string
	JobGroup        string
	BatchGroup      string
	DateFrom        Date
	DateTo          Date
}

// IsEmpty reports whether no filter other than the date window is set.
func (q JobInstanceQuery) IsEmpty() bool {
	return q.Status == "" && q.JobInstanceID == 0 && q.BatchInstanceID == 0 &&
		q.JobID == "" && q.BatchID == "" && q.JobGroup == "" && q.BatchGroup == ""
}
