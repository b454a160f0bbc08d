package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Centroid returns the arithmetic mean of the vertices. This is the
// finite-volume nodal position, not the center of mass.
func Centroid(verts []r3.Vec) r3.Vec {
	if len(verts) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, v := range verts {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(verts)), sum)
}

// vectorArea returns half the sum of cross products of consecutive edge
// vectors about the polygon centroid. Its magnitude is the polygon area and
// its direction is the summed (Newell) normal, which projects near-planar
// polygons onto their best-fit plane.
func vectorArea(verts []r3.Vec) r3.Vec {
	if len(verts) < 3 {
		return r3.Vec{}
	}
	c := Centroid(verts)
	var sum r3.Vec
	for i := range verts {
		a := r3.Sub(verts[i], c)
		b := r3.Sub(verts[(i+1)%len(verts)], c)
		sum = r3.Add(sum, r3.Cross(a, b))
	}
	return r3.Scale(0.5, sum)
}

// PolygonArea computes the area of a planar or near-planar polygon from its
// ordered vertices. Degenerate input (fewer than 3 distinct points,
// zero-length edges) yields 0, not an error.
func PolygonArea(verts []r3.Vec) float64 {
	return r3.Norm(vectorArea(verts))
}

// PolygonNormal returns the unit normal of the polygon, oriented by the
// vertex winding (right-hand rule). The zero vector is returned for
// degenerate polygons with no measurable area.
func PolygonNormal(verts []r3.Vec) r3.Vec {
	n := vectorArea(verts)
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// PolyhedronVolume computes the volume of a polyhedron given its faces as
// ordered vertex loops. Each face is triangulated about its own centroid and
// the resulting triangles are fanned into signed tetrahedra from the
// polyhedron centroid; the absolute value of the signed sum is returned, so a
// globally reversed winding still yields a positive volume. Exact for convex
// polyhedra with consistently wound faces.
func PolyhedronVolume(faces [][]r3.Vec) float64 {
	var all []r3.Vec
	for _, f := range faces {
		all = append(all, f...)
	}
	anchor := Centroid(all)

	var vol float64
	for _, f := range faces {
		if len(f) < 3 {
			continue
		}
		fc := Centroid(f)
		for i := range f {
			a := f[i]
			b := f[(i+1)%len(f)]
			vol += signedTetVolume(anchor, fc, a, b)
		}
	}
	return math.Abs(vol)
}

// signedTetVolume returns the signed volume of the tetrahedron (d, a, b, c),
// positive when (a-d, b-d, c-d) form a right-handed triple.
func signedTetVolume(d, a, b, c r3.Vec) float64 {
	ad := r3.Sub(a, d)
	bd := r3.Sub(b, d)
	cd := r3.Sub(c, d)
	return r3.Dot(ad, r3.Cross(bd, cd)) / 6
}

// PointPlaneDistance returns the signed distance from p to the plane through
// planePoint with the given unit normal. Positive on the side the normal
// points toward.
func PointPlaneDistance(p, planePoint, unitNormal r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, planePoint), unitNormal)
}
