package enquiry

import (
	"reflect"
	"testing"

	"github.com/altinukshini/batch-tui/internal/model"
)

func TestGridReplaceAllClearsSelection(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	if !g.Select(41) {
		t.Fatal("Select(41) = false")
	}
	g.ReplaceAll(sampleRows())
	if _, ok := g.Selected(); ok {
		t.Error("selection survived ReplaceAll")
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d", g.Len())
	}
}

func TestGridReplaceAllDropsDuplicateIDs(t *testing.T) {
	var g Grid
	g.ReplaceAll([]model.JobInstance{{ID: 1, JobName: "a"}, {ID: 2}, {ID: 1, JobName: "b"}})
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	if row, _ := g.Row(1); row.JobName != "a" {
		t.Errorf("kept %q, want first occurrence", row.JobName)
	}
}

func TestGridPatchPresent(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	before := g.Rows()

	updated := model.JobInstance{ID: 41, Status: model.StatusCancelled, JobName: "load"}
	if !g.Patch(41, updated) {
		t.Fatal("Patch() = false")
	}
	after := g.Rows()
	if len(after) != len(before) {
		t.Fatalf("row count changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Errorf("order changed at %d", i)
		}
		if i == 1 {
			if after[i] != updated {
				t.Errorf("row 41 = %+v", after[i])
			}
			continue
		}
		if after[i] != before[i] {
			t.Errorf("row %d changed", after[i].ID)
		}
	}
}

func TestGridPatchAbsentIsNoop(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	before := g.Rows()
	if g.Patch(99, model.JobInstance{ID: 99}) {
		t.Error("Patch() = true for absent id")
	}
	if g.Patch(99, model.JobInstance{ID: 99}) {
		t.Error("second Patch() = true for absent id")
	}
	if !reflect.DeepEqual(before, g.Rows()) {
		t.Error("grid changed")
	}
}

func TestGridPatchRejectsMismatchedID(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	before := g.Rows()
	if g.Patch(41, model.JobInstance{ID: 42}) {
		t.Error("Patch() accepted a row with a different id")
	}
	if !reflect.DeepEqual(before, g.Rows()) {
		t.Error("grid changed")
	}
}

func TestGridSelectedReflectsPatch(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	g.Select(42)
	g.Patch(42, model.JobInstance{ID: 42, Status: model.StatusForcedOK})
	row, ok := g.Selected()
	if !ok || row.Status != model.StatusForcedOK {
		t.Errorf("Selected() = %+v, %v", row, ok)
	}
}

func TestGridSelectUnknownClears(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	g.Select(40)
	if g.Select(7) {
		t.Error("Select(7) = true")
	}
	if _, ok := g.Selected(); ok {
		t.Error("selection not cleared")
	}
}

func TestGridRowsIsCopy(t *testing.T) {
	var g Grid
	g.ReplaceAll(sampleRows())
	rows := g.Rows()
	rows[0].Status = model.StatusCancelled
	if row, _ := g.Row(40); row.Status != model.StatusSucceeded {
		t.Error("Rows() aliases grid storage")
	}
}
