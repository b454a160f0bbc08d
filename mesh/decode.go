package mesh

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"
)

// meshDocument is the YAML/JSON exchange form of the import boundary: the
// generic mesh object handed over by external mesh tooling. It carries raw
// topology plus optional per-cell properties, never derived geometry.
type meshDocument struct {
	Points          [][]float64          `json:"points"`
	Cells           []cellDocument       `json:"cells"`
	DefaultMaterial string               `json:"default_material,omitempty"`
	Boundary        []int                `json:"boundary,omitempty"`
	Fields          map[string][]float64 `json:"fields,omitempty"`
}

type cellDocument struct {
	Type     string  `json:"type"`
	Vertices []int   `json:"vertices"`
	Faces    [][]int `json:"faces,omitempty"`
	Material string  `json:"material,omitempty"`
}

// Decode builds a Mesh from a YAML (or JSON) exchange document
func Decode(data []byte) (*Mesh, error) {
	var doc meshDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding mesh document: %v", err)
	}

	points := make([]r3.Vec, len(doc.Points))
	for i, p := range doc.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("point %d: expected 3 coordinates, got %d", i, len(p))
		}
		points[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}

	cells := make([]Cell, len(doc.Cells))
	for i, c := range doc.Cells {
		ct, ok := CellTypeFromString(c.Type)
		if !ok {
			return nil, fmt.Errorf("cell %d: unknown cell type %q", i, c.Type)
		}
		cells[i] = Cell{Type: ct, Vertices: c.Vertices, Faces: c.Faces}
	}

	m, err := New(points, cells)
	if err != nil {
		return nil, err
	}
	if doc.DefaultMaterial != "" {
		m.DefaultMaterial = doc.DefaultMaterial
	}
	for i, c := range doc.Cells {
		if c.Material != "" {
			m.SetMaterial(i, c.Material)
		}
	}
	for _, i := range doc.Boundary {
		if i < 0 || i >= m.NumCells() {
			return nil, fmt.Errorf("boundary cell index %d out of range [0,%d)", i, m.NumCells())
		}
		m.SetBoundary(i)
	}
	// Map iteration order is not stable; sort so the field (and INCON
	// column) order is deterministic for a given document.
	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.SetField(name, doc.Fields[name]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DecodeFile reads a mesh exchange document from disk
func DecodeFile(filename string) (*Mesh, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
