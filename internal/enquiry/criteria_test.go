package enquiry

import (
	"errors"
	"testing"
	"time"

	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/model"
)

func newTestCriteria(h *Handoff) *Criteria {
	c := NewCriteria(testConfig(), h)
	c.SetClock(func() time.Time { return testToday })
	return c
}

func TestBuildDefault(t *testing.T) {
	f := newTestCriteria(nil).BuildDefault()
	want := Fields{DateFrom: "2023-12-11", DateTo: "2024-03-13", Limit: "1000", Offset: "0"}
	if f != want {
		t.Errorf("BuildDefault() = %+v, want %+v", f, want)
	}
}

func TestBuildDefaultUsesConfig(t *testing.T) {
	c := NewCriteria(config.EnquiryConfig{Limit: 50, WindowBackDays: 7, WindowAheadDays: 1}, nil)
	c.SetClock(func() time.Time { return testToday })
	f := c.BuildDefault()
	if f.DateFrom != "2024-03-03" || f.DateTo != "2024-03-11" || f.Limit != "50" {
		t.Errorf("BuildDefault() = %+v", f)
	}
}

func TestBuildDefaultFallsBackToDefaultLimit(t *testing.T) {
	c := NewCriteria(config.EnquiryConfig{}, nil)
	if f := c.BuildDefault(); f.Limit != "1000" {
		t.Errorf("Limit = %q, want 1000", f.Limit)
	}
}

func TestDefaultRoundTrip(t *testing.T) {
	c := newTestCriteria(nil)
	page, q, err := c.ToQuery(c.BuildDefault())
	if err != nil {
		t.Fatalf("ToQuery: %v", err)
	}
	if !q.IsEmpty() {
		t.Errorf("default query has filters: %+v", q)
	}
	if q.DateFrom.String() != "2023-12-11" || q.DateTo.String() != "2024-03-13" {
		t.Errorf("window = %s..%s", q.DateFrom, q.DateTo)
	}
	if page != (model.Page{Limit: 1000, Offset: 0}) {
		t.Errorf("page = %+v", page)
	}
}

func TestToQueryJobInstanceOnly(t *testing.T) {
	page, q, err := newTestCriteria(nil).ToQuery(Fields{JobInstanceID: "42"})
	if err != nil {
		t.Fatalf("ToQuery: %v", err)
	}
	if q != (model.JobInstanceQuery{JobInstanceID: 42}) {
		t.Errorf("query = %+v", q)
	}
	if page.Limit != 1000 || page.Offset != 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestToQueryAllFields(t *testing.T) {
	f := Fields{
		Status:          "Failed",
		JobInstanceID:   " 7 ",
		BatchInstanceID: "9",
		JobID:           "LOAD",
		BatchID:         "EOD",
		JobGroup:        "ETL",
		BatchGroup:      "NIGHT",
		DateFrom:        "2024-01-01",
		DateTo:          "2024-01-01",
		Limit:           "25",
		Offset:          "50",
	}
	page, q, err := newTestCriteria(nil).ToQuery(f)
	if err != nil {
		t.Fatalf("ToQuery: %v", err)
	}
	if q.Status != model.StatusFailed || q.JobInstanceID != 7 || q.BatchInstanceID != 9 {
		t.Errorf("query = %+v", q)
	}
	if q.JobID != "LOAD" || q.BatchID != "EOD" || q.JobGroup != "ETL" || q.BatchGroup != "NIGHT" {
		t.Errorf("query = %+v", q)
	}
	if page != (model.Page{Limit: 25, Offset: 50}) {
		t.Errorf("page = %+v", page)
	}
}

func TestToQueryValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		field  string
	}{
		{"non-numeric job instance", Fields{JobInstanceID: "abc"}, FieldJobInstanceID},
		{"negative batch instance", Fields{BatchInstanceID: "-1"}, FieldBatchInstanceID},
		{"zero job instance", Fields{JobInstanceID: "0"}, FieldJobInstanceID},
		{"overflowing id", Fields{JobInstanceID: "99999999999999999999"}, FieldJobInstanceID},
		{"zero limit", Fields{Limit: "0"}, FieldLimit},
		{"non-numeric limit", Fields{Limit: "ten"}, FieldLimit},
		{"negative offset", Fields{Offset: "-3"}, FieldOffset},
		{"bad date", Fields{DateFrom: "2024/01/01"}, FieldDateFrom},
		{"reversed window", Fields{DateFrom: "2024-02-01", DateTo: "2024-01-01"}, FieldDateTo},
		{"unknown status", Fields{Status: "done"}, FieldStatus},
	}
	c := newTestCriteria(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.ToQuery(tt.fields)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestToQueryBlankFieldsAreValid(t *testing.T) {
	page, q, err := newTestCriteria(nil).ToQuery(Fields{Status: "any", JobID: "  "})
	if err != nil {
		t.Fatalf("ToQuery: %v", err)
	}
	if q != (model.JobInstanceQuery{}) {
		t.Errorf("query = %+v", q)
	}
	if page.Limit != 1000 {
		t.Errorf("Limit = %d", page.Limit)
	}
}

func TestHandoffConsumedOnce(t *testing.T) {
	h := NewHandoff()
	h.Put(Fields{BatchInstanceID: "7"})
	c := newTestCriteria(h)

	first := c.BuildDefault()
	if first.BatchInstanceID != "7" || first.Limit != "1000" {
		t.Errorf("first BuildDefault() = %+v", first)
	}
	if h.Pending() {
		t.Error("handoff still pending after BuildDefault")
	}
	if second := c.BuildDefault(); second.BatchInstanceID != "" {
		t.Errorf("second BuildDefault() = %+v", second)
	}
}

func TestOverlayKeepsBlankFields(t *testing.T) {
	base := Fields{JobID: "LOAD", Limit: "10"}
	got := base.Overlay(Fields{JobID: " ", Status: "failed"})
	if got.JobID != "LOAD" || got.Status != "failed" || got.Limit != "10" {
		t.Errorf("Overlay() = %+v", got)
	}
}
