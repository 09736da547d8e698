package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/offmesh/engine/assets/loaders"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetEvent is published when an indexed asset is created, written or removed.
type AssetEvent struct {
	Path    string
	Type    metadata.ResourceType
	Removed bool
}

// AssetManager indexes the assets found under a directory, keeps the index
// current through fsnotify and loads assets through per-type loaders.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	stopped   chan struct{}
	fsnotify  *fsnotify.Watcher
	isClosed  bool
	started   bool
	closeOnce sync.Once
	events    chan AssetEvent
	errors    chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		events:   make(chan AssetEvent, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir recursively, starts watching it and
// registers the mesh loader with the given default options.
func (am *AssetManager) Initialize(assetsDir string, defaults off.Options) error {
	am.RegisterLoader(metadata.ResourceTypeMesh, &loaders.MeshLoader{Defaults: defaults})

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	am.started = true
	go am.start()

	core.LogInfo("Asset manager watching '%s' (%d assets).", assetsDir, len(am.Assets()))
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return core.ErrWatcherClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Assets returns the indexed assets sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Events delivers changes to indexed assets. Events are dropped when the
// channel is full.
func (am *AssetManager) Events() <-chan AssetEvent {
	return am.events
}

func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Load an asset using the loader registered for its type
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("asset not found: %s", path)
	}
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	return loader.Load(path, asset.Type, params)
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", res.Type)
	}
	return loader.Unload(res)
}

// Close stops the watcher and closes the event and error channels.
func (am *AssetManager) Close() error {
	var err error
	am.closeOnce.Do(func() {
		am.isClosed = true
		if !am.started {
			err = am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
		close(am.done)
		<-am.stopped
	})
	return err
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						am.publishError(err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if assetType := am.handleFileEvent(e.Name); assetType != metadata.ResourceTypeNone {
					am.publish(AssetEvent{Path: filepath.Clean(e.Name), Type: assetType})
				}
			}
			// Can't stat a deleted directory, so just pretend that it's always a directory and
			// try to remove from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if assetType := am.removeAsset(e.Name); assetType != metadata.ResourceTypeNone {
					am.publish(AssetEvent{Path: filepath.Clean(e.Name), Type: assetType, Removed: true})
				}
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)
			am.publishError(err)

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

func (am *AssetManager) publish(e AssetEvent) {
	select {
	case am.events <- e:
	default:
		core.LogWarn("asset event for '%s' dropped, nobody is listening", e.Path)
	}
}

func (am *AssetManager) publishError(err error) {
	select {
	case am.errors <- err:
	default:
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found on the way.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) metadata.ResourceType {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	path = filepath.Clean(path)
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) metadata.ResourceType {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	path = filepath.Clean(path)
	asset, ok := am.assets[path]
	if !ok {
		return metadata.ResourceTypeNone
	}
	delete(am.assets, path)
	return asset.Type
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".off", ".OFF":
		return metadata.ResourceTypeMesh
	default:
		return metadata.ResourceTypeNone
	}
}
