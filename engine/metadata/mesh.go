package metadata

// Mesh owns the vertex and face records read from one OFF stream.
type Mesh[V Record, F Record] struct {
	Vertices  []V
	Faces     []F
	EdgeCount uint64
}

// AnyMesh is the handle returned when the record shapes are chosen at
// runtime. Callers that need the records type-switch on the concrete
// *Mesh[V, F] once.
type AnyMesh interface {
	VertexCount() int
	FaceCount() int
	Edges() uint64
	// Shapes returns the vertex and face shapes of the mesh type.
	Shapes() (vertex Shape, face Shape)
	// VertexAt and FaceAt expose records without knowing their type.
	VertexAt(i int) Record
	FaceAt(i int) Record
}

func NewMesh[V Record, F Record](vertexCount, faceCount int, edgeCount uint64) *Mesh[V, F] {
	return &Mesh[V, F]{
		Vertices:  make([]V, 0, vertexCount),
		Faces:     make([]F, 0, faceCount),
		EdgeCount: edgeCount,
	}
}

func (m *Mesh[V, F]) VertexCount() int { return len(m.Vertices) }

func (m *Mesh[V, F]) FaceCount() int { return len(m.Faces) }

func (m *Mesh[V, F]) Edges() uint64 { return m.EdgeCount }

func (m *Mesh[V, F]) Shapes() (Shape, Shape) {
	var v V
	var f F
	return v.Shape(), f.Shape()
}

func (m *Mesh[V, F]) VertexAt(i int) Record { return m.Vertices[i] }

func (m *Mesh[V, F]) FaceAt(i int) Record { return m.Faces[i] }
