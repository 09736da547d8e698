package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
)

// MeshLoader reads OFF files. Params may be nil, an off.Options or an
// *off.Options.
type MeshLoader struct {
	// Defaults is used when Load receives no options.
	Defaults off.Options
}

func (ml *MeshLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeMesh {
		return nil, fmt.Errorf("mesh loader cannot load resources of type %s", assetType)
	}

	opts := ml.Defaults
	switch p := params.(type) {
	case nil:
	case off.Options:
		opts = p
	case *off.Options:
		opts = *p
	default:
		return nil, fmt.Errorf("failed to cast params in mesh loader: %T", params)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mesh, err := off.ParseFile(path, opts)
	if err != nil {
		return nil, err
	}
	core.LogDebug("loaded mesh '%s': %d vertices, %d faces", path, mesh.VertexCount(), mesh.FaceCount())

	return &metadata.Resource{
		ID:       uuid.New(),
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     metadata.ResourceTypeMesh,
		DataSize: uint64(info.Size()),
		Data:     mesh,
	}, nil
}

func (ml *MeshLoader) Unload(res *metadata.Resource) error {
	if res != nil {
		res.Data = nil
		res.DataSize = 0
	}
	return nil
}
