package grid

import (
	"github.com/james-bowman/sparse"
)

// Adjacency returns the symmetric cell-to-cell adjacency matrix of the grid,
// one nonzero per connection endpoint pair. Downstream tooling uses it for
// bandwidth reporting and ordering diagnostics; the conversion itself never
// reads it back.
func (g *Grid) Adjacency() *sparse.DOK {
	n := g.Mesh.NumCells()
	dok := sparse.NewDOK(n, n)
	for _, c := range g.Connections {
		dok.Set(c.Cell1, c.Cell2, 1)
		dok.Set(c.Cell2, c.Cell1, 1)
	}
	return dok
}

// Bandwidth returns the maximum cell-index distance across any connection,
// a rough measure of how cache-friendly the simulator's matrix assembly
// will be for this cell ordering.
func (g *Grid) Bandwidth() int {
	var bw int
	for _, c := range g.Connections {
		d := c.Cell2 - c.Cell1
		if d < 0 {
			d = -d
		}
		if d > bw {
			bw = d
		}
	}
	return bw
}
