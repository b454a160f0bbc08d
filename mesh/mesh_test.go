package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1.e-12

func unitCube(t *testing.T) *Mesh {
	t.Helper()
	points := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	m, err := New(points, []Cell{{Type: Hexahedron, Vertices: []int{0, 1, 2, 3, 4, 5, 6, 7}}})
	require.NoError(t, err)
	return m
}

func TestNewValidation(t *testing.T) {
	points := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}

	_, err := New(points, []Cell{{Type: Tetra, Vertices: []int{0, 1, 2}}})
	assert.Error(t, err, "wrong vertex count for type tag")

	_, err = New(points, []Cell{{Type: Tetra, Vertices: []int{0, 1, 2, 9}}})
	assert.Error(t, err, "vertex index out of range")

	_, err = New(points, []Cell{{Type: Polyhedron, Vertices: []int{0, 1, 2, 3}}})
	assert.Error(t, err, "polyhedron without explicit face list")

	_, err = New(points, []Cell{{Type: Tetra, Vertices: []int{0, 1, 2, 3}}})
	assert.NoError(t, err)
}

func TestCellVolumes(t *testing.T) {
	points := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	m, err := New(points, []Cell{{Type: Tetra, Vertices: []int{0, 1, 2, 3}}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, m.CellVolume(0), tol)

	cube := unitCube(t)
	assert.InDelta(t, 1.0, cube.CellVolume(0), tol)
	c := cube.CellCentroid(0)
	assert.InDelta(t, 0.5, c.X, tol)
	assert.InDelta(t, 0.5, c.Y, tol)
	assert.InDelta(t, 0.5, c.Z, tol)
}

func TestCellFacesCounts(t *testing.T) {
	cases := []struct {
		cellType CellType
		nFaces   int
	}{
		{Tetra, 4},
		{Pyramid, 5},
		{Wedge, 5},
		{Hexahedron, 6},
	}
	for _, tc := range cases {
		verts := make([]int, tc.cellType.NumVertices())
		for i := range verts {
			verts[i] = i
		}
		assert.Len(t, CellFaces(tc.cellType, verts), tc.nFaces, tc.cellType.String())
	}
}

func TestMaterials(t *testing.T) {
	m := unitCube(t)
	assert.Equal(t, "ROCK1", m.Material(0))
	m.DefaultMaterial = "SHALE"
	assert.Equal(t, "SHALE", m.Material(0))
	m.SetMaterial(0, "SANDS")
	assert.Equal(t, "SANDS", m.Material(0))
}

func TestFields(t *testing.T) {
	m := unitCube(t)

	// Unset field reads as zeros
	assert.Equal(t, []float64{0}, m.Field("pressure"))
	assert.False(t, m.HasField("pressure"))

	// Registered default applies until the field is set
	m.SetFieldDefault("pressure", 1.0e5)
	assert.Equal(t, []float64{1.0e5}, m.Field("pressure"))

	require.NoError(t, m.SetField("pressure", []float64{2.5e5}))
	assert.Equal(t, []float64{2.5e5}, m.Field("pressure"))
	assert.True(t, m.HasField("pressure"))

	require.NoError(t, m.SetField("temperature", []float64{80}))
	assert.Equal(t, []string{"pressure", "temperature"}, m.FieldNames())

	assert.Error(t, m.SetField("bad", []float64{1, 2, 3}), "misaligned field length")

	// Returned slices are copies: mutating one must not reach the stored data
	v := m.Field("pressure")
	v[0] = -1
	assert.Equal(t, []float64{2.5e5}, m.Field("pressure"))
}

func TestBoundaryMarker(t *testing.T) {
	m := unitCube(t)
	assert.False(t, m.IsBoundary(0))
	m.SetBoundary(0)
	assert.True(t, m.IsBoundary(0))
}

func TestDecode(t *testing.T) {
	doc := `
points:
  - [0, 0, 0]
  - [1, 0, 0]
  - [0, 1, 0]
  - [0, 0, 1]
default_material: GRANI
cells:
  - type: tet
    vertices: [0, 1, 2, 3]
    material: SANDS
fields:
  pressure: [1.0e5]
`
	m, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumCells())
	assert.Equal(t, 4, m.NumPoints())
	assert.Equal(t, "SANDS", m.Material(0))
	assert.Equal(t, "GRANI", m.DefaultMaterial)
	assert.InDelta(t, 1.0/6.0, m.CellVolume(0), tol)
	assert.Equal(t, []float64{1.0e5}, m.Field("pressure"))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`points: [[0, 0]]`))
	assert.Error(t, err, "2D point")

	_, err = Decode([]byte(`
points: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]]
cells:
  - type: dodecahedron
    vertices: [0, 1, 2, 3]
`))
	assert.Error(t, err, "unknown cell type")
}

func TestBoundingBox(t *testing.T) {
	m := unitCube(t)
	min, max := m.BoundingBox()
	assert.Equal(t, r3.Vec{}, min)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, max)
}
