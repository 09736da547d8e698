package core

import "time"

// Clock measures wall time between Start and Update, e.g. around a parse.
type Clock struct {
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Measure runs fn and returns its result together with the elapsed time.
func Measure[T any](fn func() (T, error)) (T, time.Duration, error) {
	c := NewClock()
	c.Start()
	res, err := fn()
	c.Update()
	c.Stop()
	return res, c.Elapsed(), err
}
