package format

import (
	"strconv"
	"strings"
	"testing"

	"github.com/spaghettifunk/offmesh/engine/off"
)

func TestOmittedFormat(t *testing.T) {
	item := func(i int) string { return strconv.Itoa(i + 1) }
	testCases := []struct {
		name     string
		omitted  Omitted
		n        int
		expected string
	}{
		{name: "empty", omitted: DefaultOmitted(), n: 0, expected: "[] (size=0)"},
		{name: "short", omitted: DefaultOmitted(), n: 4, expected: "[1, 2, 3, 4] (size=4)"},
		{name: "long", omitted: DefaultOmitted(), n: 10, expected: "[1, 2, ..., 9, 10] (size=10)"},
		{name: "no size", omitted: Omitted{Head: 1, Tail: 1}, n: 5, expected: "[1, ..., 5]"},
		{name: "head only", omitted: Omitted{Head: 3}, n: 5, expected: "[1, 2, 3, ...]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.omitted.Format(tc.n, item); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestMesh(t *testing.T) {
	m, err := off.Load(strings.NewReader("OFF\n3 1 3\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n"), off.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "vertices = [(0, 0, 0), (1, 0, 0), (0, 1, 0)] (size=3),\n" +
		"faces = [[0 1 2]] (size=1),\n" +
		"n_edges = 3"
	if got := Mesh(m, Omitted{Head: 2, Tail: 2, ShowSize: true}); got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}
