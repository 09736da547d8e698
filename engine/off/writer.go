package off

import (
	"bufio"
	"io"
	"strconv"

	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// Write emits m as OFF text. Numbers use the shortest representation that
// parses back to the same value.
func Write(w io.Writer, m metadata.AnyMesh) error {
	bw := bufio.NewWriter(w)

	header := "OFF"
	if vs, _ := m.Shapes(); vs != metadata.ShapePlain {
		header = "COFF"
	}
	buf := make([]byte, 0, 128)
	buf = append(buf, header...)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, int64(m.VertexCount()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(m.FaceCount()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, m.Edges(), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for i := 0; i < m.VertexCount(); i++ {
		buf = append(m.VertexAt(i).AppendOFF(buf[:0]), '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for i := 0; i < m.FaceCount(); i++ {
		buf = append(m.FaceAt(i).AppendOFF(buf[:0]), '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
