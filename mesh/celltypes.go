package mesh

// CellType represents the supported polyhedral cell types
type CellType int

const (
	Tetra CellType = iota
	Pyramid
	Wedge
	Hexahedron
	Polyhedron
)

func (c CellType) String() string {
	return [...]string{"Tetra", "Pyramid", "Wedge", "Hexahedron", "Polyhedron"}[c]
}

// NumVertices returns the vertex count for fixed-size cell types, -1 for
// generic polyhedra.
func (c CellType) NumVertices() int {
	switch c {
	case Tetra:
		return 4
	case Pyramid:
		return 5
	case Wedge:
		return 6
	case Hexahedron:
		return 8
	default:
		return -1
	}
}

// CellTypeFromString maps an exchange-format tag to a CellType. Both the
// native names and the common short tags (tet, pyr, prism/wedge, hex) are
// accepted.
func CellTypeFromString(s string) (CellType, bool) {
	switch s {
	case "Tetra", "tetra", "tet":
		return Tetra, true
	case "Pyramid", "pyramid", "pyr":
		return Pyramid, true
	case "Wedge", "wedge", "prism":
		return Wedge, true
	case "Hexahedron", "hexahedron", "hex":
		return Hexahedron, true
	case "Polyhedron", "polyhedron", "poly":
		return Polyhedron, true
	}
	return 0, false
}

// CellFaces returns the bounding faces of a cell of the given type as vertex
// index loops, wound outward for the standard vertex ordering. Generic
// polyhedra carry their face list explicitly and are not handled here.
func CellFaces(cellType CellType, vertices []int) [][]int {
	switch cellType {
	case Tetra:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]}, // Face 0 (bottom)
			{vertices[0], vertices[1], vertices[3]}, // Face 1
			{vertices[1], vertices[2], vertices[3]}, // Face 2
			{vertices[0], vertices[3], vertices[2]}, // Face 3
		}
	case Pyramid:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]}, // Face 0 (base quad)
			{vertices[0], vertices[1], vertices[4]},              // Face 1 (tri)
			{vertices[1], vertices[2], vertices[4]},              // Face 2 (tri)
			{vertices[2], vertices[3], vertices[4]},              // Face 3 (tri)
			{vertices[3], vertices[0], vertices[4]},              // Face 4 (tri)
		}
	case Wedge:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]},              // Face 0 (bottom tri)
			{vertices[3], vertices[4], vertices[5]},              // Face 1 (top tri)
			{vertices[0], vertices[1], vertices[4], vertices[3]}, // Face 2 (quad)
			{vertices[1], vertices[2], vertices[5], vertices[4]}, // Face 3 (quad)
			{vertices[2], vertices[0], vertices[3], vertices[5]}, // Face 4 (quad)
		}
	case Hexahedron:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]}, // Face 0 (bottom)
			{vertices[4], vertices[5], vertices[6], vertices[7]}, // Face 1 (top)
			{vertices[0], vertices[1], vertices[5], vertices[4]}, // Face 2
			{vertices[1], vertices[2], vertices[6], vertices[5]}, // Face 3
			{vertices[2], vertices[3], vertices[7], vertices[6]}, // Face 4
			{vertices[3], vertices[0], vertices[4], vertices[7]}, // Face 5
		}
	default:
		return [][]int{}
	}
}
