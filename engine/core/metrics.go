package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/offmesh/engine/containers"
)

// AVG_COUNT is the number of recent parses the average is taken over.
const AVG_COUNT int = 30

type MetricsState struct {
	mutex   sync.Mutex
	recent  *containers.RingQueue[time.Duration]
	Parsed  uint64
	Failed  uint64
	Total   time.Duration
	Slowest time.Duration
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			recent: containers.NewRingQueue[time.Duration](AVG_COUNT),
		}
	})
}

// MetricsUpdate records one successful parse.
func MetricsUpdate(elapsed time.Duration) {
	MetricsInitialize()
	metricsState.mutex.Lock()
	defer metricsState.mutex.Unlock()

	metricsState.recent.Push(elapsed)
	metricsState.Parsed++
	metricsState.Total += elapsed
	if elapsed > metricsState.Slowest {
		metricsState.Slowest = elapsed
	}
}

// MetricsFailure records one parse that returned an error.
func MetricsFailure() {
	MetricsInitialize()
	metricsState.mutex.Lock()
	defer metricsState.mutex.Unlock()
	metricsState.Failed++
}

// MetricsAverage is the mean duration of the last AVG_COUNT parses.
func MetricsAverage() time.Duration {
	MetricsInitialize()
	metricsState.mutex.Lock()
	defer metricsState.mutex.Unlock()

	n := metricsState.recent.Len()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	metricsState.recent.Each(func(d time.Duration) { sum += d })
	return sum / time.Duration(n)
}

// MetricsParsed returns the number of successful and failed parses.
func MetricsParsed() (uint64, uint64) {
	MetricsInitialize()
	metricsState.mutex.Lock()
	defer metricsState.mutex.Unlock()
	return metricsState.Parsed, metricsState.Failed
}

// MetricsTotals returns the summed and the longest duration of all
// successful parses.
func MetricsTotals() (time.Duration, time.Duration) {
	MetricsInitialize()
	metricsState.mutex.Lock()
	defer metricsState.mutex.Unlock()
	return metricsState.Total, metricsState.Slowest
}
