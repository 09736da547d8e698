// Package format renders parse results for terminal output.
package format

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/offmesh/engine/math"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// Omitted prints a long sequence as its first Head and last Tail elements.
type Omitted struct {
	Head     int
	Tail     int
	ShowSize bool
}

func DefaultOmitted() Omitted {
	return Omitted{Head: 2, Tail: 2, ShowSize: true}
}

// Format renders n elements, item returning the text of element i.
func (o Omitted) Format(n int, item func(i int) string) string {
	var b strings.Builder
	b.WriteByte('[')

	head := math.Clamp(o.Head, 0, n)
	tail := math.Clamp(o.Tail, 0, n)
	if n <= head+tail {
		writeRange(&b, 0, n, item)
	} else {
		writeRange(&b, 0, head, item)
		if head > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
		if tail > 0 {
			b.WriteString(", ")
		}
		writeRange(&b, n-tail, n, item)
	}

	b.WriteByte(']')
	if o.ShowSize {
		fmt.Fprintf(&b, " (size=%d)", n)
	}
	return b.String()
}

func writeRange(b *strings.Builder, from, to int, item func(i int) string) {
	for i := from; i < to; i++ {
		if i > from {
			b.WriteString(", ")
		}
		b.WriteString(item(i))
	}
}

func record(r metadata.Record) string {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}
	return string(r.AppendOFF(nil))
}

// Mesh renders the vertices, faces and edge count of m.
func Mesh(m metadata.AnyMesh, o Omitted) string {
	return fmt.Sprintf("vertices = %s,\nfaces = %s,\nn_edges = %d",
		o.Format(m.VertexCount(), func(i int) string { return record(m.VertexAt(i)) }),
		o.Format(m.FaceCount(), func(i int) string { return record(m.FaceAt(i)) }),
		m.Edges(),
	)
}
