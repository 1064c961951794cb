package component

import "github.com/jakecoffman/cp"

type TileState uint8

const (
	TileNormal TileState = iota
	TileWarning
	TileLava
	TileSafe
)

func (s TileState) String() string {
	switch s {
	case TileWarning:
		return "warning"
	case TileLava:
		return "lava"
	case TileSafe:
		return "safe"
	default:
		return "normal"
	}
}

// TileGrid is the safe-tile floor puzzle. A cycle starts with SafeCount
// safe cells and every other cell in warning; at CycleStart+Warning the
// warning cells turn to lava until the next cycle.
type TileGrid struct {
	Origin         cp.Vector
	CellSize       float64
	Rows, Cols     int
	Cells          []TileState
	SafeCount      int
	Warning        float64
	Damage         float64
	DamageInterval float64

	CycleStart float64
	Cycles     int
	LastDamage float64
	HasDamaged bool
}

// NewTileGrid builds an all-normal grid covering bounds.
func NewTileGrid(bounds cp.BB, rows, cols, safe int) *TileGrid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	size := (bounds.R - bounds.L) / float64(cols)
	if h := (bounds.T - bounds.B) / float64(rows); h < size {
		size = h
	}
	if safe < 0 {
		safe = 0
	}
	if safe > rows*cols {
		safe = rows * cols
	}
	return &TileGrid{
		Origin:    cp.Vector{X: bounds.L, Y: bounds.B},
		CellSize:  size,
		Rows:      rows,
		Cols:      cols,
		Cells:     make([]TileState, rows*cols),
		SafeCount: safe,
	}
}

// CellAt returns the index of the cell under p.
func (g *TileGrid) CellAt(p cp.Vector) (int, bool) {
	if g == nil || g.CellSize <= 0 {
		return 0, false
	}
	local := p.Sub(g.Origin)
	if local.X < 0 || local.Y < 0 {
		return 0, false
	}
	col := int(local.X / g.CellSize)
	row := int(local.Y / g.CellSize)
	if col >= g.Cols || row >= g.Rows {
		return 0, false
	}
	return row*g.Cols + col, true
}

// CellCenter returns the center of cell i.
func (g *TileGrid) CellCenter(i int) cp.Vector {
	row, col := i/g.Cols, i%g.Cols
	return g.Origin.Add(cp.Vector{X: (float64(col) + 0.5) * g.CellSize, Y: (float64(row) + 0.5) * g.CellSize})
}

// Count returns the number of cells in state s.
func (g *TileGrid) Count(s TileState) int {
	n := 0
	for _, c := range g.Cells {
		if c == s {
			n++
		}
	}
	return n
}
