// Package grid is the static maze: a 2D array of cell codes with a fixed
// mapping from cell index to world position.
package grid

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/jinzhu/copier"

	"tank-maze/internal/bounds"
	"tank-maze/internal/vmath"
)

// Cell is a maze cell code.
type Cell int

const (
	Empty Cell = 0
	Floor Cell = 1
	Coin  Cell = 2
)

const (
	// HalfExtent is the cube half-scale in world units.
	HalfExtent float32 = 15
	// CellSize is the distance between neighbouring cell centers: 2 (unit
	// cube half-extent) * 15 (half-scale).
	CellSize float32 = 2 * HalfExtent
	// CoinHeight is how far a coin's pickup box reaches above the floor top.
	CoinHeight float32 = 30
)

var (
	ErrOutOfRange = errors.New("grid: cell out of range")
	ErrEmptyMap   = errors.New("grid: empty map")
	ErrBadCell    = errors.New("grid: unknown cell code")
)

// Grid holds the live cells and the source they were loaded from. Rows are
// indexed by x and may have different lengths; cell (x, z) is cells[x][z].
type Grid struct {
	cells  [][]Cell
	source [][]Cell
	coins  int
}

// New validates rows and returns a grid over a private copy of them.
func New(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}
	total := 0
	for x, row := range rows {
		for z, c := range row {
			if c < Empty || c > Coin {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrBadCell, c, x, z)
			}
		}
		total += len(row)
	}
	if total == 0 {
		return nil, ErrEmptyMap
	}
	g := &Grid{}
	if err := copier.CopyWithOption(&g.source, rows, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset restores every cell from the source map and recounts coins.
func (g *Grid) Reset() error {
	g.cells = nil
	if err := copier.CopyWithOption(&g.cells, g.source, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("grid reset: %w", err)
	}
	g.coins = 0
	g.Each(func(_, _ int, c Cell) {
		if c == Coin {
			g.coins++
		}
	})
	return nil
}

// Width is the number of x rows.
func (g *Grid) Width() int { return len(g.cells) }

// Depth is the length of row x, or 0 when x is out of range.
func (g *Grid) Depth(x int) int {
	if x < 0 || x >= len(g.cells) {
		return 0
	}
	return len(g.cells[x])
}

// MaxDepth is the length of the longest row.
func (g *Grid) MaxDepth() int {
	n := 0
	for _, row := range g.cells {
		n = max(n, len(row))
	}
	return n
}

// Coins is the number of uncollected coins.
func (g *Grid) Coins() int { return g.coins }

func (g *Grid) inRange(x, z int) bool {
	return x >= 0 && x < len(g.cells) && z >= 0 && z < len(g.cells[x])
}

// Cell returns the code at (x, z).
func (g *Grid) Cell(x, z int) (Cell, error) {
	if !g.inRange(x, z) {
		return Empty, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, z)
	}
	return g.cells[x][z], nil
}

// SetCell overwrites the code at (x, z), keeping the coin count in sync.
func (g *Grid) SetCell(x, z int, c Cell) error {
	if !g.inRange(x, z) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, z)
	}
	if c < Empty || c > Coin {
		return fmt.Errorf("%w: %d", ErrBadCell, c)
	}
	if g.cells[x][z] == Coin {
		g.coins--
	}
	if c == Coin {
		g.coins++
	}
	g.cells[x][z] = c
	return nil
}

// Each calls fn for every cell in row order.
func (g *Grid) Each(fn func(x, z int, c Cell)) {
	for x, row := range g.cells {
		for z, c := range row {
			fn(x, z, c)
		}
	}
}

// Occupied calls fn for every non-empty cell.
func (g *Grid) Occupied(fn func(x, z int, c Cell)) {
	g.Each(func(x, z int, c Cell) {
		if c != Empty {
			fn(x, z, c)
		}
	})
}

// World maps cell (x, z) to the world position (x*CellSize, y, z*CellSize).
func World(x, z int, y float32) vmath.Vector3 {
	return vmath.V3(float32(x)*CellSize, y, float32(z)*CellSize)
}

// Footprint is the world box of the floor cube at (x, z).
func Footprint(x, z int) bounds.Box {
	c := World(x, z, 0)
	h := vmath.V3(HalfExtent, HalfExtent, HalfExtent)
	return bounds.NewBox(c.Sub(h), c.Add(h))
}

// CoinBox is the pickup volume of a coin at (x, z): the cube's footprint
// extended CoinHeight above its top.
func CoinBox(x, z int) bounds.Box {
	b := Footprint(x, z)
	b.Max.Y += CoinHeight
	return b
}

// Center is the world position of the middle of the map at height y.
func (g *Grid) Center(y float32) vmath.Vector3 {
	w := float32(g.Width()-1) * CellSize / 2
	d := float32(g.MaxDepth()-1) * CellSize / 2
	return vmath.V3(w, y, d)
}

// Start returns the first Floor cell scanning z, then x, the way map files
// are read. Coin cells are never a start. ok is false when the map has no
// Floor cell.
func (g *Grid) Start() (x, z int, ok bool) {
	for z := 0; z < g.MaxDepth(); z++ {
		for x := 0; x < g.Width(); x++ {
			if g.inRange(x, z) && g.cells[x][z] == Floor {
				return x, z, true
			}
		}
	}
	return 0, 0, false
}

// CollectCoins turns every coin whose pickup box overlaps box into floor and
// returns the cells it took. Collected coins stay floor, so a repeated scan
// never counts them twice.
func (g *Grid) CollectCoins(box bounds.Box) []Pickup {
	var taken []Pickup
	g.Each(func(x, z int, c Cell) {
		if c != Coin || !box.Intersects(CoinBox(x, z)) {
			return
		}
		g.cells[x][z] = Floor
		g.coins--
		taken = append(taken, Pickup{X: x, Z: z})
	})
	return taken
}

// Pickup names a collected coin's cell.
type Pickup struct {
	X, Z int
}

// Checksum hashes the source map. Two grids loaded from the same
// description have the same checksum.
func (g *Grid) Checksum() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, row := range g.source {
		buf = buf[:0]
		for _, c := range row {
			buf = append(buf, byte('0'+c))
		}
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Rows returns a copy of the live cells.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, len(g.cells))
	for x, row := range g.cells {
		out[x] = append([]Cell(nil), row...)
	}
	return out
}
