package pathfind

import (
	"sync"
	"time"
)

// Clock supplies the time used to charge a search against its budget.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// StepClock advances by a fixed step on every reading. It makes budget
// accounting reproducible in tests and benchmarks.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewStepClock returns a clock starting at the Unix epoch.
func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{now: time.Unix(0, 0), Step: step}
}

// Now returns the current reading and then advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}
