package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals and colors have 3 floats per vertex, indices has 3 uint32s per
// triangle. Triangles are counter-clockwise seen from their front.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Colors   []float32 `json:"colors"`   // [r0,g0,b0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Surface  Surface   `json:"surface"`  // which surface every face in this mesh belongs to
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// addTriangle appends a front-facing triangle with a flat normal.
func (m *Mesh) addTriangle(a, b, c v3.Vec, w Winding) {
	n := FrontNormal(a, b, c, w)
	if w == Clockwise {
		b, c = c, b
	}
	col := m.Surface.Color()
	base := uint32(m.VertexCount())
	for _, p := range [3]v3.Vec{a, b, c} {
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.Colors = append(m.Colors, col.R, col.G, col.B)
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// MeshSink collects faces into one Mesh per Surface. Quads are split along
// the a-c diagonal. Vertices are not shared between faces.
type MeshSink struct {
	meshes map[Surface]*Mesh
}

// NewMeshSink returns an empty MeshSink.
func NewMeshSink() *MeshSink {
	return &MeshSink{meshes: make(map[Surface]*Mesh)}
}

// Compile-time interface check.
var _ Sink = (*MeshSink)(nil)

func (s *MeshSink) mesh(tag Surface) *Mesh {
	m, ok := s.meshes[tag]
	if !ok {
		m = &Mesh{Surface: tag}
		s.meshes[tag] = m
	}
	return m
}

// AddTriangleFace implements Sink.
func (s *MeshSink) AddTriangleFace(a, b, c v3.Vec, w Winding, tag Surface) {
	s.mesh(tag).addTriangle(a, b, c, w)
}

// AddQuadFace implements Sink.
func (s *MeshSink) AddQuadFace(a, b, c, d v3.Vec, w Winding, tag Surface) {
	m := s.mesh(tag)
	m.addTriangle(a, b, c, w)
	m.addTriangle(a, c, d, w)
}

// Meshes returns the non-empty meshes in AllSurfaces order.
func (s *MeshSink) Meshes() []*Mesh {
	var out []*Mesh
	for _, tag := range AllSurfaces {
		if m, ok := s.meshes[tag]; ok && !m.IsEmpty() {
			out = append(out, m)
		}
	}
	return out
}
