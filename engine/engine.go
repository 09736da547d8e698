package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spaghettifunk/offmesh/engine/assets"
	"github.com/spaghettifunk/offmesh/engine/assets/loaders"
	"github.com/spaghettifunk/offmesh/engine/config"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
	"github.com/spaghettifunk/offmesh/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is watching a directory
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// LoadResult is the outcome of loading one OFF file.
type LoadResult struct {
	Path     string
	Resource *metadata.Resource
	Elapsed  time.Duration
	Err      error
}

// Mesh returns the parsed mesh, or nil when loading failed.
func (r LoadResult) Mesh() metadata.AnyMesh {
	if r.Resource == nil {
		return nil
	}
	m, _ := r.Resource.Data.(metadata.AnyMesh)
	return m
}

type Engine struct {
	currentStage Stage
	config       *config.Config
	options      off.Options
	jobSystem    *systems.JobSystem
	resources    *systems.ResourceSystem
	assetManager *assets.AssetManager
	mutex        sync.Mutex
}

func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := core.SetLogLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	opts := cfg.Options()
	// Fail before any file is opened if the layout cannot be resolved.
	vs, fs, err := opts.Resolve()
	if err != nil {
		return nil, err
	}

	js, err := systems.NewJobSystem(cfg.Jobs.Workers, cfg.Jobs.QueueSize)
	if err != nil {
		return nil, err
	}

	rs, err := systems.NewResourceSystem(systems.ResourceSystemConfig{MaxLoaderCount: 1})
	if err != nil {
		return nil, err
	}
	if err := rs.RegisterLoader(metadata.ResourceTypeMesh, &loaders.MeshLoader{Defaults: opts}); err != nil {
		return nil, err
	}
	core.MetricsInitialize()

	core.LogDebug("Engine initialized: vertex shape %s, face shape %s, %d workers.", vs, fs, cfg.Jobs.Workers)

	return &Engine{
		currentStage: EngineStageInitialized,
		config:       cfg,
		options:      opts,
		jobSystem:    js,
		resources:    rs,
	}, nil
}

func (e *Engine) Stage() Stage {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.currentStage
}

func (e *Engine) Options() off.Options {
	return e.options
}

func (e *Engine) loadJob(path string, load func() (*metadata.Resource, error), done func(LoadResult)) metadata.JobTask {
	return metadata.JobTask{
		InputParams: path,
		OnStart: func(input interface{}) (interface{}, error) {
			res, elapsed, err := core.Measure(load)
			if err != nil {
				core.MetricsFailure()
				return nil, err
			}
			core.MetricsUpdate(elapsed)
			return LoadResult{Path: path, Resource: res, Elapsed: elapsed}, nil
		},
		OnComplete: func(result interface{}) {
			done(result.(LoadResult))
		},
		OnFailure: func(err error) {
			done(LoadResult{Path: path, Err: err})
		},
	}
}

// LoadFiles parses every path on the job system and returns the results in
// the order of paths. A failing file does not stop the others.
func (e *Engine) LoadFiles(paths []string) []LoadResult {
	results := make([]LoadResult, len(paths))
	var wg sync.WaitGroup
	wg.Add(len(paths))
	for i, path := range paths {
		i, path := i, path // per-iteration copies (pre-Go 1.22 loop semantics)
		load := func() (*metadata.Resource, error) {
			return e.resources.Load(path, metadata.ResourceTypeMesh, nil)
		}
		e.jobSystem.Submit(e.loadJob(path, load, func(r LoadResult) {
			results[i] = r
			wg.Done()
		}))
	}
	wg.Wait()
	return results
}

// Watch loads every mesh under dir, then reloads meshes as they change until
// ctx is cancelled. onLoad is called from worker goroutines.
func (e *Engine) Watch(ctx context.Context, dir string, onLoad func(LoadResult)) error {
	e.mutex.Lock()
	if e.currentStage != EngineStageInitialized {
		e.mutex.Unlock()
		return fmt.Errorf("engine cannot watch in stage %d", e.currentStage)
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		e.mutex.Unlock()
		return err
	}
	if err := am.Initialize(dir, e.options); err != nil {
		e.mutex.Unlock()
		_ = am.Close()
		return err
	}
	e.assetManager = am
	e.currentStage = EngineStageRunning
	e.mutex.Unlock()

	reload := func(path string) metadata.JobTask {
		load := func() (*metadata.Resource, error) {
			return am.LoadAsset(path, nil)
		}
		return e.loadJob(path, load, onLoad)
	}

	for _, a := range am.Assets() {
		e.jobSystem.Submit(reload(a.Path))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-am.Events():
			if !ok {
				return nil
			}
			if ev.Removed {
				core.LogInfo("Mesh '%s' removed.", filepath.Base(ev.Path))
				continue
			}
			// Keep draining watcher events while the job queue is full.
			e.jobSystem.AddWorkNonBlocking(reload(ev.Path))
		case err, ok := <-am.Errors():
			if !ok {
				return nil
			}
			core.LogWarn("watch error: %s", err)
		}
	}
}

// Shutdown stops the watcher, if any, and waits for queued jobs. The engine
// cannot be used afterwards.
func (e *Engine) Shutdown() error {
	e.mutex.Lock()
	if e.currentStage == EngineStageShuttingDown {
		e.mutex.Unlock()
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	am := e.assetManager
	e.mutex.Unlock()

	if am != nil {
		if err := am.Close(); err != nil {
			return err
		}
	}
	return e.jobSystem.Shutdown()
}
