package mapgen

import (
	"time"

	"tank-maze/internal/grid"
)

// Options controls procedural maze generation.
// Width/Depth are in cells. A cell is floor where fractal noise is at or
// above FloorLevel; floor cells become coins with probability CoinDensity.
// Seed == 0 uses a time-based seed. Octaves, Frequency, Lacunarity and Gain
// shape the noise.
type Options struct {
	Width       int
	Depth       int
	Seed        int64
	CoinDensity float32
	FloorLevel  float32

	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a 12x12 maze with roughly one coin per seven floors.
func DefaultOptions() Options {
	return Options{
		Width:       12,
		Depth:       12,
		CoinDensity: 0.15,
		FloorLevel:  0.4,
		Octaves:     3,
		Frequency:   0.35,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

func (o *Options) normalise() {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Depth <= 0 {
		o.Depth = d.Depth
	}
	if o.CoinDensity < 0 {
		o.CoinDensity = 0
	}
	if o.FloorLevel <= 0 || o.FloorLevel >= 1 {
		o.FloorLevel = d.FloorLevel
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}

// Generate builds the cell rows for a maze. Cell (0, 0) is always floor and
// every floor cell is reachable from it through edge neighbours; islands
// the noise produces are dropped. At least one coin is placed whenever the
// maze has more than one floor cell.
func Generate(opts Options) [][]grid.Cell {
	opts.normalise()
	seed := int32(opts.Seed ^ (opts.Seed >> 32))

	rows := make([][]grid.Cell, opts.Width)
	for x := range rows {
		rows[x] = make([]grid.Cell, opts.Depth)
		for z := range rows[x] {
			h := fractalNoise(float32(x)*opts.Frequency, float32(z)*opts.Frequency, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			if h >= opts.FloorLevel {
				rows[x][z] = grid.Floor
			}
		}
	}
	rows[0][0] = grid.Floor

	reached := reachable(rows)
	coins := 0
	for x := range rows {
		for z := range rows[x] {
			if !reached[x][z] {
				rows[x][z] = grid.Empty
				continue
			}
			if (x != 0 || z != 0) && hash2D(int32(x), int32(z), seed+1) < opts.CoinDensity {
				rows[x][z] = grid.Coin
				coins++
			}
		}
	}
	if coins == 0 && opts.CoinDensity > 0 {
		if fx, fz, ok := farthest(rows); ok {
			rows[fx][fz] = grid.Coin
		}
	}
	return rows
}

// reachable flood-fills floor cells from (0, 0).
func reachable(rows [][]grid.Cell) [][]bool {
	seen := make([][]bool, len(rows))
	for x := range rows {
		seen[x] = make([]bool, len(rows[x]))
	}
	queue := [][2]int{{0, 0}}
	seen[0][0] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			x, z := c[0]+d[0], c[1]+d[1]
			if x < 0 || x >= len(rows) || z < 0 || z >= len(rows[x]) {
				continue
			}
			if seen[x][z] || rows[x][z] == grid.Empty {
				continue
			}
			seen[x][z] = true
			queue = append(queue, [2]int{x, z})
		}
	}
	return seen
}

// farthest returns the occupied cell with the largest x+z other than the start.
func farthest(rows [][]grid.Cell) (int, int, bool) {
	bx, bz, best := 0, 0, 0
	for x := range rows {
		for z, c := range rows[x] {
			if c != grid.Empty && x+z > best {
				bx, bz, best = x, z, x+z
			}
		}
	}
	return bx, bz, best > 0
}
