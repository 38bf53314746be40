package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer es el handle devuelto por AfterFunc. Stop devuelve false si ya disparó.
type Timer interface {
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// MockClock avanza solo con Add/Set; los timers vencidos se disparan
// de forma síncrona dentro de Add, en orden de vencimiento.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
	seq         int
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	d := t.Sub(c.currentTime)
	c.mu.Unlock()
	c.Add(d)
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	target := c.currentTime.Add(d)
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	c.mu.Lock()
	if target.After(c.currentTime) {
		c.currentTime = target
	}
	c.mu.Unlock()
}

func (c *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &mockTimer{clock: c, at: c.currentTime.Add(d), f: f, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Pending devuelve la cantidad de timers armados.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// nextDue saca el próximo timer vencido (<= target) y mueve el reloj a su hora.
func (c *MockClock) nextDue(target time.Time) *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})

	t := c.timers[0]
	if t.at.After(target) {
		return nil
	}
	c.timers = c.timers[1:]
	if t.at.After(c.currentTime) {
		c.currentTime = t.at
	}
	return t
}

func (c *MockClock) remove(t *mockTimer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

type mockTimer struct {
	clock *MockClock
	at    time.Time
	f     func()
	seq   int
}

func (t *mockTimer) Stop() bool {
	return t.clock.remove(t)
}
