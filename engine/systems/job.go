package systems

import (
	"sync"

	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
)

// JobSystem runs submitted tasks on a fixed number of goroutines.
type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobTask
	wg         sync.WaitGroup
	mutex      sync.RWMutex
	closed     bool
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, core.ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, core.ErrNegativeQueueSize
	}

	jq := make(chan metadata.JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job metadata.JobTask) {
	result, err := job.OnStart(job.InputParams)
	if err != nil {
		core.LogDebug("job failed: %s", err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	} else if job.OnComplete != nil {
		job.OnComplete(result)
	}

	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}

/**
 * @brief Shuts the job system down, waiting for queued jobs to finish.
 * No job may be submitted afterwards.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mutex.Unlock()

	js.wg.Wait()
	return nil
}

// AddWorkNonBlocking queues the task from a new goroutine and returns immediately.
func (js *JobSystem) AddWorkNonBlocking(jt metadata.JobTask) {
	go js.Submit(jt)
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full. Jobs submitted after Shutdown fail with
 * core.ErrJobSystemClosed through their own callbacks.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) {
	js.mutex.RLock()
	if js.closed {
		js.mutex.RUnlock()
		core.LogWarn("job system is shut down, job rejected")
		js.reject(jt, core.ErrJobSystemClosed)
		return
	}
	js.jobQueue <- jt
	js.mutex.RUnlock()
}

func (js *JobSystem) reject(job metadata.JobTask, err error) {
	if job.OnFailure != nil {
		job.OnFailure(err)
	}
	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}
