package systems

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spaghettifunk/offmesh/engine/assets"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

/** @brief The configuration for the resource system */
type ResourceSystemConfig struct {
	/** @brief The maximum number of loaders that can be registered with this system. */
	MaxLoaderCount uint32
	/** @brief The base path relative resource names are resolved against. Empty means the working directory. */
	AssetBasePath string
}

// ResourceSystem routes loads to the loader registered for a resource type.
type ResourceSystem struct {
	config  ResourceSystemConfig
	loaders map[metadata.ResourceType]assets.Loader
	mutex   sync.RWMutex
}

func NewResourceSystem(config ResourceSystemConfig) (*ResourceSystem, error) {
	if config.MaxLoaderCount == 0 {
		err := fmt.Errorf("failed to run NewResourceSystem because config.MaxLoaderCount==0")
		core.LogError("%s", err)
		return nil, err
	}
	core.LogDebug("Resource system initialized with base path '%s'.", config.AssetBasePath)
	return &ResourceSystem{
		config:  config,
		loaders: make(map[metadata.ResourceType]assets.Loader, config.MaxLoaderCount),
	}, nil
}

func (rs *ResourceSystem) RegisterLoader(resourceType metadata.ResourceType, loader assets.Loader) error {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	if _, ok := rs.loaders[resourceType]; ok {
		return fmt.Errorf("%w: %s", core.ErrLoaderExists, resourceType)
	}
	if uint32(len(rs.loaders)) >= rs.config.MaxLoaderCount {
		return fmt.Errorf("%w: %d", core.ErrTooManyLoaders, rs.config.MaxLoaderCount)
	}
	rs.loaders[resourceType] = loader
	core.LogDebug("Loader for %s registered.", resourceType)
	return nil
}

func (rs *ResourceSystem) loader(resourceType metadata.ResourceType) (assets.Loader, error) {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()

	l, ok := rs.loaders[resourceType]
	if !ok {
		return nil, fmt.Errorf("%w %s", core.ErrNoLoader, resourceType)
	}
	return l, nil
}

// Load resolves name against the base path and hands it to the loader for
// resourceType.
func (rs *ResourceSystem) Load(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	l, err := rs.loader(resourceType)
	if err != nil {
		return nil, err
	}
	path := name
	if rs.config.AssetBasePath != "" && !filepath.IsAbs(name) {
		path = filepath.Join(rs.config.AssetBasePath, name)
	}
	return l.Load(path, resourceType, params)
}

func (rs *ResourceSystem) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	l, err := rs.loader(resource.Type)
	if err != nil {
		return err
	}
	return l.Unload(resource)
}
