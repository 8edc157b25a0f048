package geometry

import "math"

// Triangle is a single facet in world space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit face normal (counter-clockwise winding)
func (t Triangle) Normal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Transform returns the triangle with every vertex transformed by m
func (t Triangle) Transform(m Matrix4) Triangle {
	return Triangle{
		V1: m.TransformPoint(t.V1),
		V2: m.TransformPoint(t.V2),
		V3: m.TransformPoint(t.V3),
	}
}

// IntersectRay returns the distance along the ray to the triangle.
// Both windings are hit. Uses the Möller–Trumbore formulation.
func (t Triangle) IntersectRay(ray Ray) (float64, bool) {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)

	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < Epsilon {
		// Ray is parallel to the triangle plane
		return 0, false
	}
	invDet := 1.0 / det

	s := ray.Origin.Sub(t.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(q) * invDet
	if dist < Epsilon {
		return 0, false
	}
	return dist, true
}
