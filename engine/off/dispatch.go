package off

import (
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/mapping"
	"github.com/spaghettifunk/offmesh/engine/math"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// Element types used when the layout is chosen at runtime.
type (
	Scalar = float64
	Index  = uint32

	RGB  = math.Vec3[Scalar]
	RGBA = math.Vec4[Scalar]

	PlainVertex        = metadata.Vertex[Scalar]
	ColoredVertexRGB   = metadata.ColoredVertex[Scalar, RGB]
	ColoredVertexRGBA  = metadata.ColoredVertex[Scalar, RGBA]
	OptionalVertexRGB  = metadata.OptionalColoredVertex[Scalar, RGB]
	OptionalVertexRGBA = metadata.OptionalColoredVertex[Scalar, RGBA]
	PlainFace          = metadata.Face[Index]
	ColoredFaceRGB     = metadata.ColoredFace[Index, Scalar, RGB]
	ColoredFaceRGBA    = metadata.ColoredFace[Index, Scalar, RGBA]
	OptionalFaceRGB    = metadata.OptionalColoredFace[Index, Scalar, RGB]
	OptionalFaceRGBA   = metadata.OptionalColoredFace[Index, Scalar, RGBA]
)

func shapeTable() *mapping.Mapper[metadata.ColorKey, metadata.Shape] {
	return mapping.MustNew(
		mapping.Map(metadata.ColorKey{Mode: metadata.ColorNone, Channels: metadata.NoChannels}, metadata.ShapePlain),
		mapping.Map(metadata.ColorKey{Mode: metadata.ColorMandatory, Channels: 3}, metadata.ShapeColored3),
		mapping.Map(metadata.ColorKey{Mode: metadata.ColorMandatory, Channels: 4}, metadata.ShapeColored4),
		mapping.Map(metadata.ColorKey{Mode: metadata.ColorOptional, Channels: 3}, metadata.ShapeOptional3),
		mapping.Map(metadata.ColorKey{Mode: metadata.ColorOptional, Channels: 4}, metadata.ShapeOptional4),
	)
}

// VertexShapes and FaceShapes select the vertex and face record layouts.
var (
	VertexShapes = shapeTable()
	FaceShapes   = shapeTable()
)

// Options describes how colour is read from vertex and face lines.
// Channel counts are ignored when the matching mode is ColorNone.
type Options struct {
	VertexColor    metadata.ColorMode
	VertexChannels int
	FaceColor      metadata.ColorMode
	FaceChannels   int
}

func (o Options) VertexKey() metadata.ColorKey {
	return metadata.NewColorKey(o.VertexColor, o.VertexChannels)
}

func (o Options) FaceKey() metadata.ColorKey {
	return metadata.NewColorKey(o.FaceColor, o.FaceChannels)
}

// Resolve maps the options to a vertex and a face shape without reading
// anything.
func (o Options) Resolve() (vertex metadata.Shape, face metadata.Shape, err error) {
	if vertex, err = VertexShapes.Resolve(o.VertexKey()); err != nil {
		return 0, 0, fmt.Errorf("vertex colour: %w", err)
	}
	if face, err = FaceShapes.Resolve(o.FaceKey()); err != nil {
		return 0, 0, fmt.Errorf("face colour: %w", err)
	}
	return vertex, face, nil
}

// Load resolves the record layout from opts and parses r with it. The
// returned mesh is a *metadata.Mesh of one of the aliases declared above.
func Load(r io.Reader, opts Options) (metadata.AnyMesh, error) {
	vs, fs, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	core.LogDebug("parsing with vertex shape %s, face shape %s", vs, fs)

	switch vs {
	case metadata.ShapePlain:
		return withFaces(r, VertexReader[Scalar](), fs)
	case metadata.ShapeColored3:
		return withFaces(r, ColoredVertexReader[Scalar, RGB, *RGB](), fs)
	case metadata.ShapeColored4:
		return withFaces(r, ColoredVertexReader[Scalar, RGBA, *RGBA](), fs)
	case metadata.ShapeOptional3:
		return withFaces(r, OptionalColoredVertexReader[Scalar, RGB, *RGB](), fs)
	case metadata.ShapeOptional4:
		return withFaces(r, OptionalColoredVertexReader[Scalar, RGBA, *RGBA](), fs)
	}
	return nil, &core.ConfigurationError{Key: vs.String()}
}

func withFaces[V metadata.Record](r io.Reader, readVertex RecordReader[V], fs metadata.Shape) (metadata.AnyMesh, error) {
	switch fs {
	case metadata.ShapePlain:
		return parseAny(r, readVertex, FaceReader[Index]())
	case metadata.ShapeColored3:
		return parseAny(r, readVertex, ColoredFaceReader[Index, Scalar, RGB, *RGB]())
	case metadata.ShapeColored4:
		return parseAny(r, readVertex, ColoredFaceReader[Index, Scalar, RGBA, *RGBA]())
	case metadata.ShapeOptional3:
		return parseAny(r, readVertex, OptionalColoredFaceReader[Index, Scalar, RGB, *RGB]())
	case metadata.ShapeOptional4:
		return parseAny(r, readVertex, OptionalColoredFaceReader[Index, Scalar, RGBA, *RGBA]())
	}
	return nil, &core.ConfigurationError{Key: fs.String()}
}

func parseAny[V metadata.Record, F metadata.Record](r io.Reader, readVertex RecordReader[V], readFace RecordReader[F]) (metadata.AnyMesh, error) {
	m, err := Parse(r, readVertex, readFace)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ParseFile opens path and loads it with opts.
func ParseFile(path string, opts Options) (metadata.AnyMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
