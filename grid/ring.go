package grid

// Ring returns the in-bounds cells at Chebyshev distance level from center
// Order: left/right edge per row top to bottom, then top/bottom edge per
// interior column left to right
func (g *Grid) Ring(center Cell, level int) []Cell {
	if level < 0 {
		return nil
	}
	if level == 0 {
		if g.Contains(center) {
			return []Cell{center}
		}
		return nil
	}

	cells := make([]Cell, 0, 8*level)
	add := func(c Cell) {
		if g.Contains(c) {
			cells = append(cells, c)
		}
	}

	for row := center.Row - level; row <= center.Row+level; row++ {
		add(Cell{Row: row, Col: center.Col - level})
		add(Cell{Row: row, Col: center.Col + level})
	}
	for col := center.Col - level + 1; col < center.Col+level; col++ {
		add(Cell{Row: center.Row - level, Col: col})
		add(Cell{Row: center.Row + level, Col: col})
	}
	return cells
}

// EachRing walks rings outward from level 0 through maxLevel inclusive
// Iteration stops early when fn returns false
func (g *Grid) EachRing(center Cell, maxLevel int, fn func(level int, cells []Cell) bool) {
	for level := 0; level <= maxLevel; level++ {
		if !fn(level, g.Ring(center, level)) {
			return
		}
	}
}
