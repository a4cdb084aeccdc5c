package backdrop

import "math"

// pairGrid buckets particle indices into square cells at least as wide as
// the connection distance, so every connected pair lies in the same or an
// adjacent cell.
type pairGrid struct {
	cell       float64
	originX    float64
	originY    float64
	cols, rows int
	buckets    [][]int32
}

// build sizes the grid to cover [minX, maxX] x [minY, maxY] and assigns every
// particle to a cell. Positions outside the area land in the border cells.
func (g *pairGrid) build(ps []Particle, cell, minX, minY, maxX, maxY float64) {
	g.cell = cell
	g.originX, g.originY = minX, minY
	g.cols = max(int(math.Ceil((maxX-minX)/cell)), 1)
	g.rows = max(int(math.Ceil((maxY-minY)/cell)), 1)

	n := g.cols * g.rows
	if cap(g.buckets) < n {
		g.buckets = make([][]int32, n)
	}
	g.buckets = g.buckets[:n]
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
	for i := range ps {
		cx, cy := g.cellOf(ps[i].X, ps[i].Y)
		idx := cy*g.cols + cx
		g.buckets[idx] = append(g.buckets[idx], int32(i))
	}
}

func (g *pairGrid) cellOf(x, y float64) (int, int) {
	cx := int((x - g.originX) / g.cell)
	cy := int((y - g.originY) / g.cell)
	return min(max(cx, 0), g.cols-1), min(max(cy, 0), g.rows-1)
}

// forEachPair calls fn for every unordered pair closer than maxDist, with
// a < b.
func (g *pairGrid) forEachPair(ps []Particle, maxDist float64, fn func(a, b int, d float64)) {
	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			for _, ai := range g.buckets[cy*g.cols+cx] {
				a := int(ai)
				// Check the 3x3 neighbourhood; b > a keeps each pair once.
				for ny := cy - 1; ny <= cy+1; ny++ {
					if ny < 0 || ny >= g.rows {
						continue
					}
					for nx := cx - 1; nx <= cx+1; nx++ {
						if nx < 0 || nx >= g.cols {
							continue
						}
						for _, bi := range g.buckets[ny*g.cols+nx] {
							b := int(bi)
							if b <= a {
								continue
							}
							d := math.Hypot(ps[a].X-ps[b].X, ps[a].Y-ps[b].Y)
							if d < maxDist {
								fn(a, b, d)
							}
						}
					}
				}
			}
		}
	}
}

// forEachPairBrute is the O(n²) pass used for small fields.
func forEachPairBrute(ps []Particle, maxDist float64, fn func(a, b int, d float64)) {
	for a := 0; a < len(ps); a++ {
		for b := a + 1; b < len(ps); b++ {
			d := math.Hypot(ps[a].X-ps[b].X, ps[a].Y-ps[b].Y)
			if d < maxDist {
				fn(a, b, d)
			}
		}
	}
}
