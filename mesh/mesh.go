package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gotough/gotough/geom"
)

// Cell is a polyhedron defined by an ordered sequence of point indices and a
// cell-type tag. For the Polyhedron type the bounding faces are listed
// explicitly as point-index loops; for the standard types they derive from
// the canonical face tables in CellFaces.
type Cell struct {
	Type     CellType
	Vertices []int
	Faces    [][]int // Explicit face list, Polyhedron only
}

// Mesh owns the full set of points and cells of an unstructured mesh.
// Topology is immutable after construction; only per-cell properties
// (materials, boundary markers, field data) may be assigned afterwards.
// Derived volumes and centroids are computed on first access and cached.
type Mesh struct {
	Points []r3.Vec
	Cells  []Cell

	// DefaultMaterial is used for cells without an explicit material tag
	DefaultMaterial string

	materials []string
	boundary  []bool

	fields     map[string][]float64
	fieldOrder []string
	defaults   map[string]float64

	volumes   []float64
	centroids []r3.Vec
	haveGeom  []bool
}

// New constructs a Mesh from the generic import-boundary representation: an
// ordered point sequence and an ordered cell sequence. Vertex and face
// indices are validated against the point count; topology is frozen once New
// returns.
func New(points []r3.Vec, cells []Cell) (*Mesh, error) {
	m := &Mesh{
		Points:          points,
		Cells:           cells,
		DefaultMaterial: "ROCK1",
		materials:       make([]string, len(cells)),
		boundary:        make([]bool, len(cells)),
		fields:          make(map[string][]float64),
		defaults:        make(map[string]float64),
		volumes:         make([]float64, len(cells)),
		centroids:       make([]r3.Vec, len(cells)),
		haveGeom:        make([]bool, len(cells)),
	}
	for i, c := range cells {
		if n := c.Type.NumVertices(); n >= 0 && len(c.Vertices) != n {
			return nil, fmt.Errorf("cell %d: %s requires %d vertices, got %d",
				i, c.Type, n, len(c.Vertices))
		}
		if c.Type == Polyhedron && len(c.Faces) < 4 {
			return nil, fmt.Errorf("cell %d: polyhedron requires an explicit face list with at least 4 faces", i)
		}
		for _, v := range c.Vertices {
			if v < 0 || v >= len(points) {
				return nil, fmt.Errorf("cell %d: vertex index %d out of range [0,%d)", i, v, len(points))
			}
		}
		for _, f := range c.Faces {
			for _, v := range f {
				if v < 0 || v >= len(points) {
					return nil, fmt.Errorf("cell %d: face vertex index %d out of range [0,%d)", i, v, len(points))
				}
			}
		}
	}
	return m, nil
}

// NumCells returns the number of cells
func (m *Mesh) NumCells() int { return len(m.Cells) }

// NumPoints returns the number of points
func (m *Mesh) NumPoints() int { return len(m.Points) }

// CellFaces returns the bounding faces of cell i as point-index loops, in
// canonical order. The enumeration order is part of the output contract: the
// connection ordering of the grid builder follows it.
func (m *Mesh) CellFaces(i int) [][]int {
	c := m.Cells[i]
	if c.Type == Polyhedron {
		return c.Faces
	}
	return CellFaces(c.Type, c.Vertices)
}

// faceCoords resolves a face index loop to point coordinates
func (m *Mesh) faceCoords(face []int) []r3.Vec {
	verts := make([]r3.Vec, len(face))
	for j, v := range face {
		verts[j] = m.Points[v]
	}
	return verts
}

// FaceCoords resolves a face index loop to point coordinates
func (m *Mesh) FaceCoords(face []int) []r3.Vec { return m.faceCoords(face) }

// CellVertexCoords returns the coordinates of the distinct vertices of cell
// i. Polyhedra without an explicit vertex list fall back to the unique face
// vertices in first-seen order.
func (m *Mesh) CellVertexCoords(i int) []r3.Vec {
	c := m.Cells[i]
	if len(c.Vertices) > 0 {
		return m.faceCoords(c.Vertices)
	}
	seen := make(map[int]bool)
	var verts []r3.Vec
	for _, f := range c.Faces {
		for _, v := range f {
			if !seen[v] {
				seen[v] = true
				verts = append(verts, m.Points[v])
			}
		}
	}
	return verts
}

func (m *Mesh) computeGeom(i int) {
	faces := m.CellFaces(i)
	coords := make([][]r3.Vec, len(faces))
	for j, f := range faces {
		coords[j] = m.faceCoords(f)
	}
	m.volumes[i] = geom.PolyhedronVolume(coords)
	m.centroids[i] = geom.Centroid(m.CellVertexCoords(i))
	m.haveGeom[i] = true
}

// CellVolume returns the volume of cell i, computed on first access
func (m *Mesh) CellVolume(i int) float64 {
	if !m.haveGeom[i] {
		m.computeGeom(i)
	}
	return m.volumes[i]
}

// CellCentroid returns the vertex-average centroid of cell i, computed on
// first access
func (m *Mesh) CellCentroid(i int) r3.Vec {
	if !m.haveGeom[i] {
		m.computeGeom(i)
	}
	return m.centroids[i]
}

// Material returns the material tag of cell i, falling back to the mesh
// default when no override is set
func (m *Mesh) Material(i int) string {
	if m.materials[i] != "" {
		return m.materials[i]
	}
	return m.DefaultMaterial
}

// SetMaterial overrides the material tag of cell i
func (m *Mesh) SetMaterial(i int, material string) { m.materials[i] = material }

// SetBoundary marks cell i as a boundary placeholder. Boundary placeholders
// are exempt from degenerate-volume checks and get a zero volume in the
// element records, which pins their state in the simulator.
func (m *Mesh) SetBoundary(i int) { m.boundary[i] = true }

// IsBoundary reports whether cell i is a boundary placeholder
func (m *Mesh) IsBoundary(i int) bool { return m.boundary[i] }

// SetField attaches a named per-cell scalar field (initial conditions,
// boundary values). The value sequence must align 1:1 with the cell indices.
// Fields keep their insertion order for serialization.
func (m *Mesh) SetField(name string, values []float64) error {
	if len(values) != len(m.Cells) {
		return fmt.Errorf("field %q: %d values for %d cells", name, len(values), len(m.Cells))
	}
	if _, exists := m.fields[name]; !exists {
		m.fieldOrder = append(m.fieldOrder, name)
	}
	m.fields[name] = values
	return nil
}

// SetFieldDefault registers the value an unset field reads as
func (m *Mesh) SetFieldDefault(name string, value float64) { m.defaults[name] = value }

// Field returns the values of a named field as a fresh slice; mutating it
// never reaches the stored field data. An unset field yields the registered
// default (zero if none was registered) for every cell.
func (m *Mesh) Field(name string) []float64 {
	if v, ok := m.fields[name]; ok {
		out := make([]float64, len(v))
		copy(out, v)
		return out
	}
	out := make([]float64, len(m.Cells))
	if def, ok := m.defaults[name]; ok && def != 0 {
		for i := range out {
			out[i] = def
		}
	}
	return out
}

// HasField reports whether the field was explicitly set
func (m *Mesh) HasField(name string) bool {
	_, ok := m.fields[name]
	return ok
}

// FieldNames returns the explicitly set field names in insertion order
func (m *Mesh) FieldNames() []string {
	out := make([]string, len(m.fieldOrder))
	copy(out, m.fieldOrder)
	return out
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Points: %d\n", m.NumPoints())
	fmt.Printf("  Cells: %d\n", m.NumCells())

	typeCounts := make(map[CellType]int)
	for _, c := range m.Cells {
		typeCounts[c.Type]++
	}
	fmt.Printf("  Cell types:\n")
	for t := Tetra; t <= Polyhedron; t++ {
		if count := typeCounts[t]; count > 0 {
			fmt.Printf("    %s: %d\n", t, count)
		}
	}

	var totalVolume float64
	for i := range m.Cells {
		totalVolume += m.CellVolume(i)
	}
	fmt.Printf("  Total volume: %.6g\n", totalVolume)
}

// BoundingBox returns the min and max corners of the point cloud
func (m *Mesh) BoundingBox() (min, max r3.Vec) {
	if len(m.Points) == 0 {
		return
	}
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range m.Points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return
}
