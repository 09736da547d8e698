package math

import "fmt"

/** @brief A 3-component vector, used for positions and RGB colours. */
type Vec3[T Scalar] struct {
	X, Y, Z T
}

/** @brief A 4-component vector, used for RGBA colours. */
type Vec4[T Scalar] struct {
	X, Y, Z, W T
}

/**
 * @brief Constraint satisfied by every fixed-arity vector of element type T.
 * Components are addressed uniformly by index through At.
 */
type Vector[T Scalar] interface {
	Vec3[T] | Vec4[T]
	Size() int
	At(i int) T
}

/**
 * @brief Pointer form of Vector, used when a vector has to be filled
 * component by component.
 */
type VectorPtr[V Vector[T], T Scalar] interface {
	*V
	Set(i int, value T)
}

func NewVec3[T Scalar](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

func NewVec4[T Scalar](x, y, z, w T) Vec4[T] {
	return Vec4[T]{X: x, Y: y, Z: z, W: w}
}

func (v Vec3[T]) Size() int { return 3 }

// At returns the i-th component. It panics if i is out of range.
func (v Vec3[T]) At(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("math: Vec3 index %d out of range", i))
}

func (v *Vec3[T]) Set(i int, value T) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("math: Vec3 index %d out of range", i))
	}
}

func (v Vec3[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}

func (v Vec4[T]) Size() int { return 4 }

// At returns the i-th component. It panics if i is out of range.
func (v Vec4[T]) At(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	case 3:
		return v.W
	}
	panic(fmt.Sprintf("math: Vec4 index %d out of range", i))
}

func (v *Vec4[T]) Set(i int, value T) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	case 3:
		v.W = value
	default:
		panic(fmt.Sprintf("math: Vec4 index %d out of range", i))
	}
}

func (v Vec4[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", v.X, v.Y, v.Z, v.W)
}
