package search

import (
	"testing"

	"github.com/altinukshini/batch-tui/internal/model"
)

func history() []model.Metric {
	return []model.Metric{
		{Type: "INFO", Message: "job started on node-3"},
		{Type: "ERROR", Message: "Error: input file not found"},
		{Type: "INFO", Message: "retrying after error: timeout"},
		{Type: "STAT", Message: "rows=0"},
		{Type: "ERROR", Message: "giving up"},
	}
}

func TestSearchPlainText(t *testing.T) {
	results, err := New().Search(history(), model.HistoryQuery{Pattern: "error", CaseSensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", results.TotalCount)
	}
	if results.Matches[0].Index != 2 {
		t.Errorf("Index = %d, want 2", results.Matches[0].Index)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	results, err := New().Search(history(), model.HistoryQuery{Pattern: "error"})
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", results.TotalCount)
	}
	if results.TypeCounts["ERROR"] != 1 || results.TypeCounts["INFO"] != 1 {
		t.Errorf("TypeCounts = %v", results.TypeCounts)
	}
}

func TestSearchRegex(t *testing.T) {
	results, err := New().Search(history(), model.HistoryQuery{
		Pattern:       `[Ee]rror:\s+\w+`,
		IsRegex:       true,
		CaseSensitive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", results.TotalCount)
	}
}

func TestSearchInvalidRegex(t *testing.T) {
	if _, err := New().Search(history(), model.HistoryQuery{Pattern: "(", IsRegex: true}); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestSearchErrorsOnly(t *testing.T) {
	results, err := New().Search(history(), model.HistoryQuery{ErrorsOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", results.TotalCount)
	}
	if _, ok := results.TypeCounts["INFO"]; ok {
		t.Error("should not have matched INFO entries")
	}
}

func TestSearchTypePattern(t *testing.T) {
	results, err := New().Search(history(), model.HistoryQuery{TypePattern: "^st"})
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalCount != 1 || results.Matches[0].Metric.Message != "rows=0" {
		t.Errorf("unexpected matches %+v", results.Matches)
	}
}
