package grid

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gotough/gotough/geom"
	"github.com/gotough/gotough/mesh"
)

// DegenerateVolumePolicy selects how non-positive cell volumes are handled
type DegenerateVolumePolicy int

const (
	// VolumeError fails the build with a GeometryError
	VolumeError DegenerateVolumePolicy = iota
	// VolumeWarn logs the cell and clamps its volume to zero; legitimate for
	// meshes carrying intentionally degenerate boundary placeholders that
	// were not marked as such
	VolumeWarn
)

// Options configures the connectivity build
type Options struct {
	// GravityAxis is the unit direction gravity acts along; the direction
	// cosine of each connection is projected onto it. Zero value selects the
	// vertical default {0, 0, 1}.
	GravityAxis r3.Vec

	// DegenerateVolume selects the failure policy for non-positive volumes
	DegenerateVolume DegenerateVolumePolicy

	// Workers sets the number of goroutines for the per-cell geometry pass.
	// Zero selects GOMAXPROCS. The connection ordering is identical for any
	// worker count.
	Workers int
}

// Connection is the finite-volume flow link between two adjacent cells
// through their shared interface. Cell1/Cell2 order is the cell input order.
type Connection struct {
	Cell1, Cell2 int

	// Area is the shared interface area
	Area float64

	// D1, D2 are the nodal distances from each owning cell's centroid to the
	// interface plane; they differ on non-orthogonal meshes and may be zero
	// for flattened cells
	D1, D2 float64

	// Beta is the direction cosine of the centroid-to-centroid direction
	// against the gravity axis
	Beta float64

	// Isot is the 1/2/3 axis code of the dominant interface-normal component,
	// kept for legacy readers and never used in the geometry itself
	Isot int

	// Boundary marks a connection with a boundary placeholder on one side;
	// the simulator treats such links as fixed-state exchanges
	Boundary bool
}

// BoundaryFace is a face owned by a single cell. It carries no connection;
// boundary conditions attach to it in the physical-properties layer.
type BoundaryFace struct {
	Cell     int
	Vertices []int
	Area     float64
}

// Grid is the finite-volume view of a mesh: per-cell volumes remain on the
// Mesh, the derived connection set lives here. Connections are enumerated in
// the order their shared face is first discovered while iterating cells in
// index order and faces in canonical order, which makes repeated builds of
// the same mesh byte-identical.
type Grid struct {
	Mesh          *mesh.Mesh
	Connections   []Connection
	BoundaryFaces []BoundaryFace
}

// distanceTol is the fraction of the face scale below which a negative nodal
// distance is treated as roundoff and clamped to zero
const distanceTol = 1e-9

type faceEntry struct {
	owners   []int
	vertices []int // winding of the first owner
}

// cellGeom carries the per-cell results of the parallel pass
type cellGeom struct {
	faces    [][]int
	volume   float64
	centroid r3.Vec
}

// Build derives the connection set of a mesh. The mesh is read-only during
// and after the build.
func Build(m *mesh.Mesh, opts Options) (*Grid, error) {
	gravity := opts.GravityAxis
	if r3.Norm(gravity) == 0 {
		gravity = r3.Vec{Z: 1}
	}
	gravity = r3.Unit(gravity)

	geoms := computeCellGeometry(m, opts.Workers)

	// Volume sanity pass. Boundary placeholders are intentionally degenerate
	// and exempt.
	for i := range m.Cells {
		if geoms[i].volume > 0 || m.IsBoundary(i) {
			continue
		}
		if opts.DegenerateVolume == VolumeWarn {
			log.Printf("grid: cell %d has non-positive volume %g, clamping to zero",
				i, geoms[i].volume)
			continue
		}
		return nil, &GeometryError{Cell: i, Volume: geoms[i].volume}
	}

	// Face discovery, cells in index order, faces in canonical order. The
	// order a key is first seen defines the connection order, regardless of
	// which later cell completes it.
	faceMap := make(map[string]*faceEntry)
	var keyOrder []string
	for i := range m.Cells {
		for _, face := range geoms[i].faces {
			key := faceKey(face)
			entry, exists := faceMap[key]
			if !exists {
				faceMap[key] = &faceEntry{owners: []int{i}, vertices: face}
				keyOrder = append(keyOrder, key)
				continue
			}
			entry.owners = append(entry.owners, i)
			if len(entry.owners) > 2 {
				return nil, &TopologyError{Cell: i, Reason: fmt.Sprintf(
					"face %v shared by %d cells, mesh is non-manifold",
					entry.vertices, len(entry.owners))}
			}
		}
	}

	g := &Grid{Mesh: m}
	for _, key := range keyOrder {
		entry := faceMap[key]
		if len(entry.owners) != 2 {
			continue
		}
		conn, err := makeConnection(m, geoms, entry, gravity)
		if err != nil {
			return nil, err
		}
		g.Connections = append(g.Connections, conn)
	}

	// Single-owner faces form the boundary, in the same first-seen order
	for _, key := range keyOrder {
		entry := faceMap[key]
		if len(entry.owners) == 1 {
			g.BoundaryFaces = append(g.BoundaryFaces, BoundaryFace{
				Cell:     entry.owners[0],
				Vertices: entry.vertices,
				Area:     geom.PolygonArea(m.FaceCoords(entry.vertices)),
			})
		}
	}
	return g, nil
}

// computeCellGeometry runs the independent per-cell face enumeration and
// volume/centroid computation, chunked across workers. Results land in a
// cell-indexed slice, so the merge is deterministic regardless of scheduling.
func computeCellGeometry(m *mesh.Mesh, workers int) []cellGeom {
	n := m.NumCells()
	geoms := make([]cellGeom, n)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			computeOneCell(m, i, &geoms[i])
		}
		return geoms
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				computeOneCell(m, i, &geoms[i])
			}
		}(start, end)
	}
	wg.Wait()
	return geoms
}

// computeOneCell warms the mesh's lazy volume/centroid cache for cell i and
// records the canonical face list. Workers touch disjoint cells, so the
// per-index cache writes do not race.
func computeOneCell(m *mesh.Mesh, i int, out *cellGeom) {
	out.faces = m.CellFaces(i)
	out.volume = m.CellVolume(i)
	out.centroid = m.CellCentroid(i)
}

// faceKey is the canonical, purely topological face identity: the sorted
// vertex index tuple. Two cells connect iff their face keys match exactly, so
// non-conforming interfaces (hanging nodes, overlaps) silently stay
// unconnected.
func faceKey(face []int) string {
	sorted := make([]int, len(face))
	copy(sorted, face)
	sort.Ints(sorted)
	return fmt.Sprintf("%v", sorted)
}

func makeConnection(m *mesh.Mesh, geoms []cellGeom, entry *faceEntry, gravity r3.Vec) (Connection, error) {
	c1, c2 := entry.owners[0], entry.owners[1]
	verts := m.FaceCoords(entry.vertices)
	fc := geom.Centroid(verts)
	area := geom.PolygonArea(verts)

	cent1 := geoms[c1].centroid
	cent2 := geoms[c2].centroid
	sep := r3.Sub(cent2, cent1)

	normal := geom.PolygonNormal(verts)
	if r3.Norm(normal) == 0 {
		// Degenerate interface: no usable plane, fall back to the
		// centroid-to-centroid direction
		if r3.Norm(sep) == 0 {
			return Connection{Cell1: c1, Cell2: c2, Isot: dominantAxis(normal)}, nil
		}
		normal = r3.Unit(sep)
	}
	// Orient the normal from cell 1 toward cell 2
	if r3.Dot(normal, sep) < 0 {
		normal = r3.Scale(-1, normal)
	}

	d1 := geom.PointPlaneDistance(fc, cent1, normal)
	d2 := -geom.PointPlaneDistance(fc, cent2, normal)

	scale := math.Sqrt(area) + r3.Norm(sep)
	var err error
	if d1, err = checkDistance(c1, d1, distanceTol*scale, entry.vertices); err != nil {
		return Connection{}, err
	}
	if d2, err = checkDistance(c2, d2, distanceTol*scale, entry.vertices); err != nil {
		return Connection{}, err
	}

	var beta float64
	if r3.Norm(sep) > 0 {
		beta = r3.Dot(r3.Unit(sep), gravity)
	}

	return Connection{
		Cell1:    c1,
		Cell2:    c2,
		Area:     area,
		D1:       d1,
		D2:       d2,
		Beta:     beta,
		Isot:     dominantAxis(normal),
		Boundary: m.IsBoundary(c1) || m.IsBoundary(c2),
	}, nil
}

// checkDistance validates a signed nodal distance. A centroid on the wrong
// side of the interface means the cell's vertex ordering is inverted; small
// negatives are roundoff on flattened cells and clamp to zero.
func checkDistance(cell int, d, tol float64, face []int) (float64, error) {
	if d < -tol {
		return 0, &TopologyError{Cell: cell, Reason: fmt.Sprintf(
			"centroid lies on the wrong side of face %v (distance %g), cell ordering is inverted",
			face, d)}
	}
	if d < 0 {
		d = 0
	}
	return d, nil
}

// dominantAxis returns the 1/2/3 code of the axis with the largest normal
// component magnitude, lower axis index winning ties.
func dominantAxis(n r3.Vec) int {
	ax, best := 1, math.Abs(n.X)
	if math.Abs(n.Y) > best {
		ax, best = 2, math.Abs(n.Y)
	}
	if math.Abs(n.Z) > best {
		ax = 3
	}
	return ax
}

// NumConnections returns the number of connections
func (g *Grid) NumConnections() int { return len(g.Connections) }

// NumBoundaryFaces returns the number of single-owner faces
func (g *Grid) NumBoundaryFaces() int { return len(g.BoundaryFaces) }

// PrintStatistics prints grid statistics
func (g *Grid) PrintStatistics() {
	fmt.Printf("Grid Statistics:\n")
	fmt.Printf("  Cells: %d\n", g.Mesh.NumCells())
	fmt.Printf("  Connections: %d\n", g.NumConnections())
	fmt.Printf("  Boundary faces: %d\n", g.NumBoundaryFaces())

	var totalArea float64
	for _, c := range g.Connections {
		totalArea += c.Area
	}
	fmt.Printf("  Total interface area: %.6g\n", totalArea)
	fmt.Printf("  Adjacency bandwidth: %d\n", g.Bandwidth())
}
