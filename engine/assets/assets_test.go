package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
)

const triangleOFF = "OFF\n3 1 3\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newManager(t *testing.T, dir string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := am.Initialize(dir, off.Options{}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = am.Close() })
	return am
}

func TestInitializeIndexesMeshes(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "triangle.off"), triangleOFF)
	writeFile(t, filepath.Join(dir, "nested", "other.off"), triangleOFF)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a mesh")

	am := newManager(t, dir)

	assets := am.Assets()
	if len(assets) != 2 {
		t.Fatalf("expected 2 indexed assets, got %d: %+v", len(assets), assets)
	}
	for _, a := range assets {
		if a.Type != metadata.ResourceTypeMesh {
			t.Errorf("%s indexed as %s", a.Path, a.Type)
		}
	}
}

func TestLoadAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.off")
	writeFile(t, path, triangleOFF)

	am := newManager(t, dir)

	res, err := am.LoadAsset(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Name != "triangle" || res.Type != metadata.ResourceTypeMesh {
		t.Errorf("unexpected resource %+v", res)
	}
	mesh, ok := res.Data.(metadata.AnyMesh)
	if !ok {
		t.Fatalf("unexpected data %T", res.Data)
	}
	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 || mesh.Edges() != 3 {
		t.Errorf("unexpected counts %d/%d/%d", mesh.VertexCount(), mesh.FaceCount(), mesh.Edges())
	}

	if err := am.UnloadAsset(res); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if res.Data != nil {
		t.Error("unload kept the mesh data")
	}

	if _, err := am.LoadAsset(filepath.Join(dir, "missing.off"), nil); err == nil {
		t.Error("expected an error for an unindexed asset")
	}
}

func TestLoadAssetWithOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colored.off")
	writeFile(t, path, "COFF\n1 0 0\n0 0 0 1 0 0 1\n")

	am := newManager(t, dir)

	res, err := am.LoadAsset(path, off.Options{VertexColor: metadata.ColorMandatory, VertexChannels: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mesh, ok := res.Data.(*metadata.Mesh[off.ColoredVertexRGBA, off.PlainFace])
	if !ok {
		t.Fatalf("unexpected mesh type %T", res.Data)
	}
	if mesh.Vertices[0].Color != (off.RGBA{X: 1, Y: 0, Z: 0, W: 1}) {
		t.Errorf("unexpected colour %v", mesh.Vertices[0].Color)
	}
}

func TestWatchPublishesEvents(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)

	path := filepath.Join(dir, "late.off")
	tmp := filepath.Join(dir, "late.tmp")
	writeFile(t, tmp, triangleOFF)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case e := <-am.Events():
			if e.Path == filepath.Clean(path) && !e.Removed {
				if _, err := am.LoadAsset(path, nil); err != nil {
					t.Fatalf("load after event: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("no event received for the new mesh")
		}
	}
}

func TestCloseWithoutInitialize(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := am.addRecursive(t.TempDir()); err == nil {
		t.Error("expected an error after close")
	}
}
