package enquiry

import (
	"strconv"
	"strings"
	"time"

	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/model"
)

// Field names as shown to the operator. ValidationError.Field uses these.
const (
	FieldStatus          = "Status"
	FieldJobInstanceID   = "Job instance"
	FieldBatchInstanceID = "Batch instance"
	FieldJobID           = "Job"
	FieldBatchID         = "Batch"
	FieldJobGroup        = "Job group"
	FieldBatchGroup      = "Batch group"
	FieldDateFrom        = "From"
	FieldDateTo          = "To"
	FieldLimit           = "Limit"
	FieldOffset          = "Offset"
)

const defaultLimit = 1000

// Fields holds the search criteria exactly as typed in the form.
type Fields struct {
	Status          string
	JobInstanceID   string
	BatchInstanceID string
	JobID           string
	BatchID         string
	JobGroup        string
	BatchGroup      string
	DateFrom        string
	DateTo          string
	Limit           string
	Offset          string
}

// Overlay returns f with every non-blank field of partial copied over it.
func (f Fields) Overlay(partial Fields) Fields {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&f.Status, partial.Status)
	set(&f.JobInstanceID, partial.JobInstanceID)
	set(&f.BatchInstanceID, partial.BatchInstanceID)
	set(&f.JobID, partial.JobID)
	set(&f.BatchID, partial.BatchID)
	set(&f.JobGroup, partial.JobGroup)
	set(&f.BatchGroup, partial.BatchGroup)
	set(&f.DateFrom, partial.DateFrom)
	set(&f.DateTo, partial.DateTo)
	set(&f.Limit, partial.Limit)
	set(&f.Offset, partial.Offset)
	return f
}

type Criteria struct {
	cfg     config.EnquiryConfig
	handoff *Handoff
	now     func() time.Time
}

func NewCriteria(cfg config.EnquiryConfig, handoff *Handoff) *Criteria {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	return &Criteria{cfg: cfg, handoff: handoff, now: time.Now}
}

// SetClock overrides the source of "today".
func (c *Criteria) SetClock(now func() time.Time) {
	c.now = now
}

// BuildDefault returns the default search window, with any waiting handoff
// applied on top. The handoff is consumed.
func (c *Criteria) BuildDefault() Fields {
	today := model.NewDate(c.now())
	f := Fields{
		DateFrom: today.AddDate(0, 0, -c.cfg.WindowBackDays).Format(model.DateLayout),
		DateTo:   today.AddDate(0, 0, c.cfg.WindowAheadDays).Format(model.DateLayout),
		Limit:    strconv.Itoa(c.cfg.Limit),
		Offset:   "0",
	}
	if partial, ok := c.handoff.Take(); ok {
		f = f.Overlay(partial)
	}
	return f
}

// ToQuery validates the form values and converts them into a typed query.
// Blank fields are left out of the query.
func (c *Criteria) ToQuery(f Fields) (model.Page, model.JobInstanceQuery, error) {
	var (
		page model.Page
		q    model.JobInstanceQuery
		err  error
	)

	if q.Status, err = model.ParseStatus(f.Status); err != nil {
		return page, q, &ValidationError{Field: FieldStatus, Value: f.Status, Reason: "is not a known status"}
	}
	if q.JobInstanceID, err = parseID(FieldJobInstanceID, f.JobInstanceID); err != nil {
		return page, q, err
	}
	if q.BatchInstanceID, err = parseID(FieldBatchInstanceID, f.BatchInstanceID); err != nil {
		return page, q, err
	}
	q.JobID = strings.TrimSpace(f.JobID)
	q.BatchID = strings.TrimSpace(f.BatchID)
	q.JobGroup = strings.TrimSpace(f.JobGroup)
	q.BatchGroup = strings.TrimSpace(f.BatchGroup)

	if q.DateFrom, err = parseDate(FieldDateFrom, f.DateFrom); err != nil {
		return page, q, err
	}
	if q.DateTo, err = parseDate(FieldDateTo, f.DateTo); err != nil {
		return page, q, err
	}
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateTo.Before(q.DateFrom.Time) {
		return page, q, &ValidationError{Field: FieldDateTo, Value: f.DateTo, Reason: "is before " + FieldDateFrom}
	}

	limit, err := parseCount(FieldLimit, f.Limit)
	if err != nil {
		return page, q, err
	}
	switch {
	case limit < 0:
		page.Limit = c.cfg.Limit
	case limit == 0:
		return page, q, &ValidationError{Field: FieldLimit, Value: f.Limit, Reason: "must be greater than zero"}
	default:
		page.Limit = limit
	}
	offset, err := parseCount(FieldOffset, f.Offset)
	if err != nil {
		return page, q, err
	}
	if offset > 0 {
		page.Offset = offset
	}
	return page, q, nil
}

func parseID(field, value string) (int64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}
	if !digitsOnly(v) {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must contain only digits"}
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: value, Reason: "is out of range"}
	}
	if id == 0 {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must be greater than zero"}
	}
	return id, nil
}

// parseCount returns -1 for a blank value.
func parseCount(field, value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return -1, nil
	}
	if !digitsOnly(v) {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must contain only digits"}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: value, Reason: "is out of range"}
	}
	return n, nil
}

func parseDate(field, value string) (model.Date, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return model.Date{}, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return model.Date{}, &ValidationError{Field: field, Value: value, Reason: "must be a date like 2006-01-02"}
	}
	return d, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
