package session

import (
	"errors"
	"sync"
)

// ErrNotReady is returned when no puzzle has finished loading.
var ErrNotReady = errors.New("no puzzle loaded")

// State is the controller's lifecycle position.
type State string

const (
	Loading State = "loading"
	Ready   State = "ready"
)

// Ticket tags one puzzle selection. Only the latest ticket may complete.
type Ticket struct {
	seq uint64
	Key string // resolved date key
	Day string // `day` parameter as the player supplied it
}

// Controller drives one device through Loading → Ready. Overlapping
// selections are allowed; responses for anything but the latest selection
// are dropped.
type Controller struct {
	mu      sync.Mutex
	seq     uint64
	current Ticket
	session *Session
}

// NewController returns a controller in Loading with nothing selected.
func NewController() *Controller {
	return &Controller{}
}

// Select starts a new selection and returns its ticket. The controller is
// Loading until Ready is called with that ticket.
func (c *Controller) Select(key, day string) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.current = Ticket{seq: c.seq, Key: key, Day: day}
	c.session = nil
	return c.current
}

// Ready installs s if t is still the latest selection. It reports false for
// a stale ticket, leaving state untouched.
func (c *Controller) Ready(t Ticket, s *Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.seq != c.seq {
		return false
	}
	c.session = s
	return true
}

// Fail records that the selection for t produced no puzzle. The controller
// stays Loading. Stale tickets are ignored.
func (c *Controller) Fail(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.seq != c.seq {
		return false
	}
	c.session = nil
	return true
}

// State reports Loading or Ready.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Loading
	}
	return Ready
}

// Do runs fn with the Ready session and its selection while holding the
// controller lock. It returns ErrNotReady while Loading.
func (c *Controller) Do(fn func(s *Session, t Ticket) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNotReady
	}
	return fn(c.session, c.current)
}
