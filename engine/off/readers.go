package off

import (
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/math"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// maxIndexPrealloc bounds the capacity reserved from a face's declared
// index count, which is untrusted input.
const maxIndexPrealloc = 64

// RecordReader reads the fields of one record. The caller positions the
// tokenizer on the record and discards the rest of its line afterwards.
type RecordReader[R metadata.Record] func(t *Tokenizer) (R, error)

// readVec reads V.Size() components, crossing newlines if needed.
func readVec[V math.Vector[T], P math.VectorPtr[V, T], T math.Float](t *Tokenizer) (V, error) {
	var v V
	for i := 0; i < v.Size(); i++ {
		c, err := ReadFloat[T](t)
		if err != nil {
			return v, err
		}
		P(&v).Set(i, c)
	}
	return v, nil
}

// readVecWithinLine reads V.Size() components from the current line only.
// It returns nil when the line ends before the vector is complete.
func readVecWithinLine[V math.Vector[T], P math.VectorPtr[V, T], T math.Float](t *Tokenizer) (*V, error) {
	var v V
	for i := 0; i < v.Size(); i++ {
		end, err := t.AtLineEnd()
		if err != nil {
			return nil, err
		}
		if end {
			return nil, nil
		}
		c, err := ReadFloat[T](t)
		if err != nil {
			return nil, err
		}
		P(&v).Set(i, c)
	}
	return &v, nil
}

func readPosition[T math.Float](t *Tokenizer) (math.Vec3[T], error) {
	return readVec[math.Vec3[T], *math.Vec3[T], T](t)
}

// readIndices reads the declared index count followed by at most that many
// indices. A line that ends early yields a short list.
func readIndices[I math.Index](t *Tokenizer) ([]I, error) {
	n, err := ReadInt[uint64](t)
	if err != nil {
		return nil, err
	}
	indices := make([]I, 0, min(n, maxIndexPrealloc))
	for j := uint64(0); j < n; j++ {
		end, err := t.AtLineEnd()
		if err != nil {
			return nil, err
		}
		if end {
			core.LogDebug("face on line %d declares %d indices but lists %d", t.Line(), n, j)
			break
		}
		idx, err := ReadInt[I](t)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func VertexReader[T math.Float]() RecordReader[metadata.Vertex[T]] {
	return func(t *Tokenizer) (metadata.Vertex[T], error) {
		p, err := readPosition[T](t)
		return metadata.Vertex[T]{Position: p}, err
	}
}

func ColoredVertexReader[T math.Float, C math.Vector[T], P math.VectorPtr[C, T]]() RecordReader[metadata.ColoredVertex[T, C]] {
	return func(t *Tokenizer) (metadata.ColoredVertex[T, C], error) {
		var v metadata.ColoredVertex[T, C]
		var err error
		if v.Position, err = readPosition[T](t); err != nil {
			return v, err
		}
		v.Color, err = readVec[C, P, T](t)
		return v, err
	}
}

func OptionalColoredVertexReader[T math.Float, C math.Vector[T], P math.VectorPtr[C, T]]() RecordReader[metadata.OptionalColoredVertex[T, C]] {
	return func(t *Tokenizer) (metadata.OptionalColoredVertex[T, C], error) {
		var v metadata.OptionalColoredVertex[T, C]
		var err error
		if v.Position, err = readPosition[T](t); err != nil {
			return v, err
		}
		v.Color, err = readVecWithinLine[C, P, T](t)
		return v, err
	}
}

func FaceReader[I math.Index]() RecordReader[metadata.Face[I]] {
	return func(t *Tokenizer) (metadata.Face[I], error) {
		indices, err := readIndices[I](t)
		return metadata.Face[I]{VertexIndices: indices}, err
	}
}

func ColoredFaceReader[I math.Index, T math.Float, C math.Vector[T], P math.VectorPtr[C, T]]() RecordReader[metadata.ColoredFace[I, T, C]] {
	return func(t *Tokenizer) (metadata.ColoredFace[I, T, C], error) {
		var f metadata.ColoredFace[I, T, C]
		var err error
		if f.VertexIndices, err = readIndices[I](t); err != nil {
			return f, err
		}
		f.Color, err = readVec[C, P, T](t)
		return f, err
	}
}

func OptionalColoredFaceReader[I math.Index, T math.Float, C math.Vector[T], P math.VectorPtr[C, T]]() RecordReader[metadata.OptionalColoredFace[I, T, C]] {
	return func(t *Tokenizer) (metadata.OptionalColoredFace[I, T, C], error) {
		var f metadata.OptionalColoredFace[I, T, C]
		var err error
		if f.VertexIndices, err = readIndices[I](t); err != nil {
			return f, err
		}
		f.Color, err = readVecWithinLine[C, P, T](t)
		return f, err
	}
}
