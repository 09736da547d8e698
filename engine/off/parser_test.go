package off

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/math"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

const squareOFF = "OFF\n4 2 5\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n3 0 1 2\n3 0 2 3\n"

func parsePlain(t *testing.T, input string) *metadata.Mesh[PlainVertex, PlainFace] {
	t.Helper()
	m, err := Parse(strings.NewReader(input), VertexReader[Scalar](), FaceReader[Index]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestParseSquare(t *testing.T) {
	m := parsePlain(t, squareOFF)

	expectedPositions := []RGB{
		math.NewVec3[Scalar](0, 0, 0),
		math.NewVec3[Scalar](1, 0, 0),
		math.NewVec3[Scalar](1, 1, 0),
		math.NewVec3[Scalar](0, 1, 0),
	}
	if len(m.Vertices) != len(expectedPositions) {
		t.Fatalf("expected %d vertices, got %d", len(expectedPositions), len(m.Vertices))
	}
	for i, p := range expectedPositions {
		if m.Vertices[i].Position != p {
			t.Errorf("vertex %d: got %v, want %v", i, m.Vertices[i].Position, p)
		}
	}

	expectedFaces := [][]Index{{0, 1, 2}, {0, 2, 3}}
	if len(m.Faces) != len(expectedFaces) {
		t.Fatalf("expected %d faces, got %d", len(expectedFaces), len(m.Faces))
	}
	for i, f := range expectedFaces {
		if !reflect.DeepEqual(m.Faces[i].VertexIndices, f) {
			t.Errorf("face %d: got %v, want %v", i, m.Faces[i].VertexIndices, f)
		}
	}
	if m.EdgeCount != 5 {
		t.Errorf("expected 5 edges, got %d", m.EdgeCount)
	}
}

func TestParseMandatoryVertexColor(t *testing.T) {
	input := "COFF\n4 2 5\n" +
		"0 0 0 1 0 0\n" +
		"1 0 0 0 1 0\n" +
		"1 1 0 0 0 1\n" +
		"0 1 0 0.5 0.5 0.5\n" +
		"3 0 1 2\n3 0 2 3\n"

	m, err := Parse(strings.NewReader(input), ColoredVertexReader[Scalar, RGB, *RGB](), FaceReader[Index]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectedColors := []RGB{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0.5, Y: 0.5, Z: 0.5},
	}
	for i, c := range expectedColors {
		if m.Vertices[i].Color != c {
			t.Errorf("vertex %d colour: got %v, want %v", i, m.Vertices[i].Color, c)
		}
	}
	if m.Vertices[3].Position != (RGB{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected position %v", m.Vertices[3].Position)
	}
}

func TestParseMandatoryColorCrossesLines(t *testing.T) {
	input := "OFF\n2 0 0\n0 0 0\n0.1 0.2 0.3 1\n1 1 1 0.4 0.5 0.6 0.5\n"

	m, err := Parse(strings.NewReader(input), ColoredVertexReader[Scalar, RGBA, *RGBA](), FaceReader[Index]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Vertices[0].Color; got != (RGBA{X: 0.1, Y: 0.2, Z: 0.3, W: 1}) {
		t.Errorf("vertex 0 colour: got %v", got)
	}
	if got := m.Vertices[1].Color; got != (RGBA{X: 0.4, Y: 0.5, Z: 0.6, W: 0.5}) {
		t.Errorf("vertex 1 colour: got %v", got)
	}
}

func TestParseOptionalVertexColor(t *testing.T) {
	input := "OFF\n6 0 0\n" +
		"0 0 0\n" +
		"1 0 0 0.5 0.25 1\n" +
		"1 1 0   \t\n" +
		"0 1 0 0.5 0.5\n" +
		"0 0 1 # no colour here\n" +
		"1 0 1 1 1 1\r\n"

	m, err := Parse(strings.NewReader(input), OptionalColoredVertexReader[Scalar, RGB, *RGB](), FaceReader[Index]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testCases := []struct {
		name     string
		expected *RGB
	}{
		{name: "no trailing tokens", expected: nil},
		{name: "full colour", expected: &RGB{X: 0.5, Y: 0.25, Z: 1}},
		{name: "trailing blanks", expected: nil},
		{name: "partial colour", expected: nil},
		{name: "trailing comment", expected: nil},
		{name: "crlf line", expected: &RGB{X: 1, Y: 1, Z: 1}},
	}
	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Vertices[i].Color; !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("vertex %d colour: got %v, want %v", i, got, tc.expected)
			}
		})
	}
}

func TestParseFaceColors(t *testing.T) {
	input := "OFF\n3 2 3\n0 0 0\n1 0 0\n0 1 0\n" +
		"3 0 1 2 1 0 0 0.5\n" +
		"3 2 1 0\n"

	m, err := Parse(strings.NewReader(input), VertexReader[Scalar](), OptionalColoredFaceReader[Index, Scalar, RGBA, *RGBA]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Faces[0].Color == nil || *m.Faces[0].Color != (RGBA{X: 1, Y: 0, Z: 0, W: 0.5}) {
		t.Errorf("face 0 colour: got %v", m.Faces[0].Color)
	}
	if m.Faces[1].Color != nil {
		t.Errorf("face 1 should have no colour, got %v", *m.Faces[1].Color)
	}
	if !reflect.DeepEqual(m.Faces[1].VertexIndices, []Index{2, 1, 0}) {
		t.Errorf("face 1 indices: got %v", m.Faces[1].VertexIndices)
	}
}

func TestParseShortFaceIsKept(t *testing.T) {
	input := "OFF\n3 2 0\n0 0 0\n1 0 0\n0 1 0\n4 0 1 2\n3 0 1 2\n"
	m := parsePlain(t, input)

	if !reflect.DeepEqual(m.Faces[0].VertexIndices, []Index{0, 1, 2}) {
		t.Errorf("short face: got %v", m.Faces[0].VertexIndices)
	}
	if !reflect.DeepEqual(m.Faces[1].VertexIndices, []Index{0, 1, 2}) {
		t.Errorf("following face: got %v", m.Faces[1].VertexIndices)
	}
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	commented := "OFF\n" +
		"# a comment before the counts\n" +
		"\n" +
		"   \n" +
		"#another\n" +
		"4 2 5\n" +
		"# vertices\n" +
		"0 0 0\n" +
		"\n" +
		"1 0 0\n" +
		"1 1 0\n" +
		"0 1 0\n" +
		"# faces\n" +
		"\n" +
		"3 0 1 2\n" +
		"3 0 2 3\n"

	if got, want := parsePlain(t, commented), parsePlain(t, squareOFF); !reflect.DeepEqual(got, want) {
		t.Errorf("comments changed the result:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseIgnoresTrailingContent(t *testing.T) {
	m := parsePlain(t, squareOFF+"this is not OFF at all\n")
	if len(m.Faces) != 2 {
		t.Errorf("expected 2 faces, got %d", len(m.Faces))
	}
}

func TestParseIsIdempotent(t *testing.T) {
	a := parsePlain(t, squareOFF)
	b := parsePlain(t, squareOFF)
	if !reflect.DeepEqual(a, b) {
		t.Error("parsing the same input twice produced different meshes")
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		err    error
		phase  core.ParsePhase
		record int
	}{
		{
			name:   "missing vertex",
			input:  "OFF\n4 2 5\n0 0 0\n1 0 0\n1 1 0\n",
			err:    core.ErrTruncatedInput,
			phase:  core.PhaseVertex,
			record: 3,
		},
		{
			name:   "missing face",
			input:  "OFF\n3 2 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n",
			err:    core.ErrTruncatedInput,
			phase:  core.PhaseFace,
			record: 1,
		},
		{
			name:  "empty input",
			input: "",
			err:   core.ErrTruncatedInput,
			phase: core.PhaseCounts,
		},
		{
			name:  "incomplete counts",
			input: "OFF\n4 2",
			err:   core.ErrTruncatedInput,
			phase: core.PhaseCounts,
		},
		{
			name:  "malformed count",
			input: "OFF\nfour 2 5\n",
			err:   core.ErrMalformedNumber,
			phase: core.PhaseCounts,
		},
		{
			name:   "malformed coordinate",
			input:  "OFF\n1 0 0\n0 zero 0\n",
			err:    core.ErrMalformedNumber,
			phase:  core.PhaseVertex,
			record: 0,
		},
		{
			name:   "negative index",
			input:  "OFF\n1 1 0\n0 0 0\n3 0 -1 2\n",
			err:    core.ErrMalformedNumber,
			phase:  core.PhaseFace,
			record: 0,
		},
		{
			name:   "index out of type range",
			input:  "OFF\n1 1 0\n0 0 0\n1 4294967296\n",
			err:    core.ErrMalformedNumber,
			phase:  core.PhaseFace,
			record: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tc.input), VertexReader[Scalar](), FaceReader[Index]())
			if m != nil {
				t.Errorf("expected no mesh on failure, got %+v", m)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			var pe *core.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *core.ParseError, got %T", err)
			}
			if pe.Phase != tc.phase || pe.Record != tc.record {
				t.Errorf("got phase %s record %d, want %s record %d", pe.Phase, pe.Record, tc.phase, tc.record)
			}
		})
	}
}

func TestParseErrorReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("OFF\n# c\n2 0 0\n0 0 0\n0 0 oops\n"), VertexReader[Scalar](), FaceReader[Index]())
	var pe *core.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *core.ParseError, got %v", err)
	}
	if pe.Line != 5 {
		t.Errorf("expected error on line 5, got %d", pe.Line)
	}
}
