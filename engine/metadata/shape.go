package metadata

import "fmt"

// ColorMode selects how colour is read for a vertex or face record.
type ColorMode int

const (
	ColorNone ColorMode = iota
	ColorMandatory
	ColorOptional
)

// NoChannels is the channel count used in a ColorKey when colour is disabled.
const NoChannels = -1

func (m ColorMode) String() string {
	switch m {
	case ColorNone:
		return "none"
	case ColorMandatory:
		return "mandatory"
	case ColorOptional:
		return "optional"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode accepts the names produced by String.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "none", "":
		return ColorNone, nil
	case "mandatory":
		return ColorMandatory, nil
	case "optional":
		return ColorOptional, nil
	default:
		return ColorNone, fmt.Errorf("unknown colour mode %q", s)
	}
}

// ColorKey is the runtime key resolved by the shape tables.
type ColorKey struct {
	Mode     ColorMode
	Channels int
}

// NewColorKey builds a key, replacing the channel count with NoChannels
// when colour is disabled.
func NewColorKey(mode ColorMode, channels int) ColorKey {
	if mode == ColorNone {
		return ColorKey{Mode: ColorNone, Channels: NoChannels}
	}
	return ColorKey{Mode: mode, Channels: channels}
}

func (k ColorKey) String() string {
	return fmt.Sprintf("{%s %d}", k.Mode, k.Channels)
}

/**
 * @brief The layout of a vertex or face record, fixed for a whole parse.
 */
type Shape uint8

const (
	ShapePlain Shape = iota
	ShapeColored3
	ShapeColored4
	ShapeOptional3
	ShapeOptional4
)

// Shapes lists every shape in declaration order.
var Shapes = []Shape{ShapePlain, ShapeColored3, ShapeColored4, ShapeOptional3, ShapeOptional4}

func (s Shape) Mode() ColorMode {
	switch s {
	case ShapeColored3, ShapeColored4:
		return ColorMandatory
	case ShapeOptional3, ShapeOptional4:
		return ColorOptional
	default:
		return ColorNone
	}
}

// Channels returns 3 or 4, or NoChannels for ShapePlain.
func (s Shape) Channels() int {
	switch s {
	case ShapeColored3, ShapeOptional3:
		return 3
	case ShapeColored4, ShapeOptional4:
		return 4
	default:
		return NoChannels
	}
}

func (s Shape) Key() ColorKey {
	return ColorKey{Mode: s.Mode(), Channels: s.Channels()}
}

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeColored3:
		return "colored-rgb"
	case ShapeColored4:
		return "colored-rgba"
	case ShapeOptional3:
		return "optional-rgb"
	case ShapeOptional4:
		return "optional-rgba"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

func shapeFor(mode ColorMode, channels int) Shape {
	switch {
	case mode == ColorMandatory && channels == 4:
		return ShapeColored4
	case mode == ColorMandatory:
		return ShapeColored3
	case mode == ColorOptional && channels == 4:
		return ShapeOptional4
	case mode == ColorOptional:
		return ShapeOptional3
	default:
		return ShapePlain
	}
}
