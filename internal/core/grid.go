package core

// Point addresses a single site. X selects the column and Y the row.
type Point struct {
	X, Y int
}

// Grid stores an n×n lattice of binary sites in row-major order.
type Grid struct {
	n    int
	data []uint8
}

// NewGrid allocates an all-zero n×n grid. Sizes below two are rejected because
// the reflective boundary needs an interior to reflect into.
func NewGrid(n int) (*Grid, error) {
	if n <= 1 {
		return nil, &InvalidSizeError{N: n}
	}
	return &Grid{n: n, data: make([]uint8, n*n)}, nil
}

// N returns the side length.
func (g *Grid) N() int { return g.n }

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Snapshot returns a copy of the cells that is safe to hand to renderers.
func (g *Grid) Snapshot() []uint8 {
	out := make([]uint8, len(g.data))
	copy(out, g.data)
	return out
}

// Index returns the linear slice index for p.
func (g *Grid) Index(p Point) int { return p.Y*g.n + p.X }

// At returns the value stored at p.
func (g *Grid) At(p Point) uint8 { return g.data[g.Index(p)] }

// Set stores v at p.
func (g *Grid) Set(p Point, v uint8) { g.data[g.Index(p)] = v }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.n && p.Y >= 0 && p.Y < g.n
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// HalfFill sets columns [n/2, n) to 1 and columns [0, n/2) to 0.
func (g *Grid) HalfFill() {
	half := g.n / 2
	for y := 0; y < g.n; y++ {
		row := g.data[y*g.n : (y+1)*g.n]
		for x := range row {
			if x >= half {
				row[x] = 1
			} else {
				row[x] = 0
			}
		}
	}
}

// Swap exchanges the values at a and b. Swapping a site with itself is a no-op.
func (g *Grid) Swap(a, b Point) {
	i, j := g.Index(a), g.Index(b)
	g.data[i], g.data[j] = g.data[j], g.data[i]
}

// Ones counts the occupied sites.
func (g *Grid) Ones() int {
	total := 0
	for _, v := range g.data {
		total += int(v)
	}
	return total
}

// Reflect applies the reflective boundary to p using the grid's size.
func (g *Grid) Reflect(p Point) Point { return Reflect(p, g.n) }

// Reflect maps an out-of-range coordinate back inside an n×n grid, one axis at
// a time: values >= n land on n-2 and negative values land on 1.
//
// The mapping is a fixed single-step reflection. It is only correct for points
// at most one unit outside the grid, which holds for unit steps taken from a
// valid cursor. Points further out are not mirrored.
func Reflect(p Point, n int) Point {
	return Point{X: reflectAxis(p.X, n), Y: reflectAxis(p.Y, n)}
}

func reflectAxis(v, n int) int {
	switch {
	case v >= n:
		return n - 2
	case v < 0:
		return 1
	default:
		return v
	}
}
