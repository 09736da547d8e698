/*
Package off reads meshes in the Object File Format.

The layout of vertex and face records (plain, always coloured, or coloured
only when the line carries a colour, with 3 or 4 channels) is chosen before
parsing starts. Parse is generic over the record types and receives one
RecordReader per record kind, so its loops never inspect the layout. Load
resolves the layout from Options through the VertexShapes and FaceShapes
tables and selects the matching instantiation once.
*/
package off

import (
	"io"

	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// maxRecordPrealloc bounds the capacity reserved from the counts line.
const maxRecordPrealloc = 1 << 20

func fail(t *Tokenizer, phase core.ParsePhase, record int, err error) error {
	return &core.ParseError{Phase: phase, Record: record, Line: t.Line(), Err: err}
}

// Parse reads one OFF stream into a mesh whose record types are fixed by
// readVertex and readFace. On error no mesh is returned.
func Parse[V metadata.Record, F metadata.Record](r io.Reader, readVertex RecordReader[V], readFace RecordReader[F]) (*metadata.Mesh[V, F], error) {
	t := NewTokenizer(r)

	// The first line holds the magic token and is not validated.
	if err := t.SkipLine(); err != nil {
		return nil, fail(t, core.PhaseHeader, 0, err)
	}
	if err := t.SkipCommentsAndBlankLines(); err != nil {
		return nil, fail(t, core.PhaseCounts, 0, err)
	}

	var counts [3]uint64
	for i := range counts {
		n, err := ReadInt[uint64](t)
		if err != nil {
			return nil, fail(t, core.PhaseCounts, 0, err)
		}
		counts[i] = n
	}
	nVertices, nFaces, nEdges := counts[0], counts[1], counts[2]
	if err := t.SkipLine(); err != nil {
		return nil, fail(t, core.PhaseCounts, 0, err)
	}

	mesh := metadata.NewMesh[V, F](int(min(nVertices, maxRecordPrealloc)), int(min(nFaces, maxRecordPrealloc)), nEdges)

	for i := uint64(0); i < nVertices; i++ {
		if err := t.SkipCommentsAndBlankLines(); err != nil {
			return nil, fail(t, core.PhaseVertex, int(i), err)
		}
		v, err := readVertex(t)
		if err != nil {
			return nil, fail(t, core.PhaseVertex, int(i), err)
		}
		mesh.Vertices = append(mesh.Vertices, v)
		if err := t.SkipLine(); err != nil {
			return nil, fail(t, core.PhaseVertex, int(i), err)
		}
	}

	for i := uint64(0); i < nFaces; i++ {
		if err := t.SkipCommentsAndBlankLines(); err != nil {
			return nil, fail(t, core.PhaseFace, int(i), err)
		}
		f, err := readFace(t)
		if err != nil {
			return nil, fail(t, core.PhaseFace, int(i), err)
		}
		mesh.Faces = append(mesh.Faces, f)
		if err := t.SkipLine(); err != nil {
			return nil, fail(t, core.PhaseFace, int(i), err)
		}
	}

	return mesh, nil
}
