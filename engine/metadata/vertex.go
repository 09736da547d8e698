package metadata

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/spaghettifunk/offmesh/engine/math"
)

// Record is implemented by every vertex and face variant.
type Record interface {
	// Shape reports the layout of the record type. It does not depend on
	// the receiver's value, only on its type.
	Shape() Shape
	// AppendOFF appends the record as one OFF text line, without the newline.
	AppendOFF(dst []byte) []byte
}

/**
 * @brief A vertex carrying only a position.
 */
type Vertex[T math.Float] struct {
	Position math.Vec3[T]
}

/**
 * @brief A vertex whose colour is present on every line.
 */
type ColoredVertex[T math.Float, C math.Vector[T]] struct {
	Position math.Vec3[T]
	Color    C
}

/**
 * @brief A vertex whose colour is present only when its line supplies one.
 * Color is nil when absent.
 */
type OptionalColoredVertex[T math.Float, C math.Vector[T]] struct {
	Position math.Vec3[T]
	Color    *C
}

func (Vertex[T]) Shape() Shape { return ShapePlain }

func (v Vertex[T]) AppendOFF(dst []byte) []byte {
	return appendVec[T](dst, v.Position)
}

func (v Vertex[T]) String() string {
	return v.Position.String()
}

func (ColoredVertex[T, C]) Shape() Shape {
	var c C
	return shapeFor(ColorMandatory, c.Size())
}

func (v ColoredVertex[T, C]) AppendOFF(dst []byte) []byte {
	dst = appendVec[T](dst, v.Position)
	dst = append(dst, ' ')
	return appendVec[T](dst, v.Color)
}

func (v ColoredVertex[T, C]) String() string {
	return fmt.Sprintf("Vertex(p=%v, c=%v)", v.Position, v.Color)
}

func (OptionalColoredVertex[T, C]) Shape() Shape {
	var c C
	return shapeFor(ColorOptional, c.Size())
}

func (v OptionalColoredVertex[T, C]) AppendOFF(dst []byte) []byte {
	dst = appendVec[T](dst, v.Position)
	if v.Color != nil {
		dst = append(dst, ' ')
		dst = appendVec[T](dst, *v.Color)
	}
	return dst
}

func (v OptionalColoredVertex[T, C]) String() string {
	if v.Color == nil {
		return fmt.Sprintf("Vertex(p=%v, c=none)", v.Position)
	}
	return fmt.Sprintf("Vertex(p=%v, c=%v)", v.Position, *v.Color)
}

type vector[T math.Float] interface {
	Size() int
	At(i int) T
}

// appendVec writes the components in the shortest form that parses back to
// the same T.
func appendVec[T math.Float](dst []byte, v vector[T]) []byte {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	for i := 0; i < v.Size(); i++ {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendFloat(dst, float64(v.At(i)), 'g', -1, bits)
	}
	return dst
}
