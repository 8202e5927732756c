package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is one emitted polygon as the builder produced it.
type Face struct {
	Points  []v3.Vec `json:"points" yaml:"points"` // 3 or 4 points
	Winding Winding  `json:"winding" yaml:"winding"`
	Surface Surface  `json:"surface" yaml:"surface"`
}

// IsQuad reports whether the face has four points.
func (f Face) IsQuad() bool {
	return len(f.Points) == 4
}

// Normal returns the front normal of the face's first triangle.
func (f Face) Normal() v3.Vec {
	return FrontNormal(f.Points[0], f.Points[1], f.Points[2], f.Winding)
}

// Area returns the face area, treating quads as the two triangles a-b-c
// and a-c-d.
func (f Face) Area() float64 {
	area := f.Points[1].Sub(f.Points[0]).Cross(f.Points[2].Sub(f.Points[0])).Length() / 2
	if f.IsQuad() {
		area += f.Points[2].Sub(f.Points[0]).Cross(f.Points[3].Sub(f.Points[0])).Length() / 2
	}
	return area
}

// FaceRecorder keeps every face in emission order.
type FaceRecorder struct {
	Faces []Face
}

// Compile-time interface check.
var _ Sink = (*FaceRecorder)(nil)

// AddTriangleFace implements Sink.
func (r *FaceRecorder) AddTriangleFace(a, b, c v3.Vec, w Winding, tag Surface) {
	r.Faces = append(r.Faces, Face{Points: []v3.Vec{a, b, c}, Winding: w, Surface: tag})
}

// AddQuadFace implements Sink.
func (r *FaceRecorder) AddQuadFace(a, b, c, d v3.Vec, w Winding, tag Surface) {
	r.Faces = append(r.Faces, Face{Points: []v3.Vec{a, b, c, d}, Winding: w, Surface: tag})
}

// CountBySurface returns the number of faces per surface.
func (r *FaceRecorder) CountBySurface() map[Surface]int {
	counts := make(map[Surface]int)
	for _, f := range r.Faces {
		counts[f.Surface]++
	}
	return counts
}

// AreaBySurface returns the summed face area per surface.
func (r *FaceRecorder) AreaBySurface() map[Surface]float64 {
	areas := make(map[Surface]float64)
	for _, f := range r.Faces {
		areas[f.Surface] += f.Area()
	}
	return areas
}
