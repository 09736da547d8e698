package metadata

import (
	"fmt"
	"strconv"

	"github.com/spaghettifunk/offmesh/engine/math"
)

/**
 * @brief A face referencing vertices by index.
 */
type Face[I math.Index] struct {
	VertexIndices []I
}

/**
 * @brief A face whose colour is present on every line.
 */
type ColoredFace[I math.Index, T math.Float, C math.Vector[T]] struct {
	VertexIndices []I
	Color         C
}

/**
 * @brief A face whose colour is present only when its line supplies one.
 * Color is nil when absent.
 */
type OptionalColoredFace[I math.Index, T math.Float, C math.Vector[T]] struct {
	VertexIndices []I
	Color         *C
}

func (Face[I]) Shape() Shape { return ShapePlain }

func (f Face[I]) AppendOFF(dst []byte) []byte {
	return appendIndices(dst, f.VertexIndices)
}

func (f Face[I]) String() string {
	return fmt.Sprint(f.VertexIndices)
}

func (ColoredFace[I, T, C]) Shape() Shape {
	var c C
	return shapeFor(ColorMandatory, c.Size())
}

func (f ColoredFace[I, T, C]) AppendOFF(dst []byte) []byte {
	dst = appendIndices(dst, f.VertexIndices)
	dst = append(dst, ' ')
	return appendVec[T](dst, f.Color)
}

func (f ColoredFace[I, T, C]) String() string {
	return fmt.Sprintf("Face(vi=%v, c=%v)", f.VertexIndices, f.Color)
}

func (OptionalColoredFace[I, T, C]) Shape() Shape {
	var c C
	return shapeFor(ColorOptional, c.Size())
}

func (f OptionalColoredFace[I, T, C]) AppendOFF(dst []byte) []byte {
	dst = appendIndices(dst, f.VertexIndices)
	if f.Color != nil {
		dst = append(dst, ' ')
		dst = appendVec[T](dst, *f.Color)
	}
	return dst
}

func (f OptionalColoredFace[I, T, C]) String() string {
	if f.Color == nil {
		return fmt.Sprintf("Face(vi=%v, c=none)", f.VertexIndices)
	}
	return fmt.Sprintf("Face(vi=%v, c=%v)", f.VertexIndices, *f.Color)
}

// appendIndices writes the declared count followed by the indices.
func appendIndices[I math.Index](dst []byte, indices []I) []byte {
	dst = strconv.AppendInt(dst, int64(len(indices)), 10)
	var zero I
	signed := zero-1 < 0
	for _, idx := range indices {
		dst = append(dst, ' ')
		if signed {
			dst = strconv.AppendInt(dst, int64(idx), 10)
		} else {
			dst = strconv.AppendUint(dst, uint64(idx), 10)
		}
	}
	return dst
}
