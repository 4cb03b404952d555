package enquiry

import "github.com/altinukshini/batch-tui/internal/model"

// Grid holds the rows of the last search in server order, with at most one
// selected. Rows are replaced whole, never edited in place.
type Grid struct {
	rows     []model.JobInstance
	selected int64 // 0 means none; ids are positive
}

// ReplaceAll swaps in a fresh result set and clears the selection. A repeated
// id keeps its first occurrence.
func (g *Grid) ReplaceAll(rows []model.JobInstance) {
	seen := make(map[int64]struct{}, len(rows))
	g.rows = make([]model.JobInstance, 0, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		g.rows = append(g.rows, r)
	}
	g.selected = 0
}

// Patch replaces the row with the given id. It reports false, leaving the
// grid untouched, when the id is not present or row carries a different id.
func (g *Grid) Patch(id int64, row model.JobInstance) bool {
	if row.ID != id {
		return false
	}
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.rows[i] = row
	return true
}

// Select marks the row with id as selected. An unknown id clears the
// selection.
func (g *Grid) Select(id int64) bool {
	if g.index(id) < 0 {
		g.selected = 0
		return false
	}
	g.selected = id
	return true
}

func (g *Grid) ClearSelection() {
	g.selected = 0
}

func (g *Grid) Selected() (model.JobInstance, bool) {
	if g.selected == 0 {
		return model.JobInstance{}, false
	}
	return g.Row(g.selected)
}

func (g *Grid) Row(id int64) (model.JobInstance, bool) {
	if i := g.index(id); i >= 0 {
		return g.rows[i], true
	}
	return model.JobInstance{}, false
}

// Rows returns a copy of the rows.
func (g *Grid) Rows() []model.JobInstance {
	out := make([]model.JobInstance, len(g.rows))
	copy(out, g.rows)
	return out
}

func (g *Grid) Len() int {
	return len(g.rows)
}

func (g *Grid) index(id int64) int {
	if id == 0 {
		return -1
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			return i
		}
	}
	return -1
}
