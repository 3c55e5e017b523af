package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/logchecker/internal/logger"
)

// RefreshState is the state of the RefreshController.
type RefreshState int

const (
	Idle RefreshState = iota
	Active
)

// String returns a human-readable state name.
func (s RefreshState) String() string {
	switch s {
	case Active:
		return "active"
	default:
		return "idle"
	}
}

// DefaultRefreshPeriod is used when no period is configured.
const DefaultRefreshPeriod = 5 * time.Second

// RefreshController owns periodic refresh and the single in-flight flag for
// host-list fetches.
//
// At most one session exists. Each session has its own id and context; a
// tick Command waits on the timer or the context, and a tick that reaches
// OnTick with an id other than the live session is ignored. Stopping the
// session therefore guarantees no further ticks, whatever the timer does.
type RefreshController struct {
	period time.Duration
	after  func(time.Duration) <-chan time.Time
	log    logger.Logger

	state   RefreshState
	session uint64
	cancel  context.CancelFunc
	ctx     context.Context

	inFlight bool
}

// NewRefreshController creates an idle controller. after schedules a timer;
// nil uses time.After.
func NewRefreshController(period time.Duration, after func(time.Duration) <-chan time.Time, log logger.Logger) *RefreshController {
	if period <= 0 {
		period = DefaultRefreshPeriod
	}
	if after == nil {
		after = time.After
	}
	if log == nil {
		log = logger.Default()
	}
	return &RefreshController{
		period: period,
		after:  after,
		log:    log,
	}
}

// Period returns the tick period.
func (c *RefreshController) Period() time.Duration {
	return c.period
}

// State returns Idle or Active.
func (c *RefreshController) State() RefreshState {
	return c.state
}

// Session returns the live session id, or 0 when idle.
func (c *RefreshController) Session() uint64 {
	if c.state == Idle {
		return 0
	}
	return c.session
}

// Toggle flips between Idle and Active. Entering Active returns the Command
// for the first tick, which fires one period from now.
func (c *RefreshController) Toggle() Command {
	if c.state == Active {
		c.Stop()
		return nil
	}

	c.session++
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.state = Active
	c.log.Debug("auto-refresh session %d started (every %s)", c.session, c.period)
	return c.nextTick()
}

// Stop ends the live session, if any.
func (c *RefreshController) Stop() {
	if c.state == Idle {
		return
	}
	c.cancel()
	c.cancel = nil
	c.ctx = nil
	c.state = Idle
	c.log.Debug("auto-refresh session %d stopped", c.session)
}

// OnTick handles a tick from session. It reports whether the tick is live
// and, if so, returns the Command for the following tick.
func (c *RefreshController) OnTick(session uint64) (bool, Command) {
	if c.state != Active || session != c.session {
		return false, nil
	}
	return true, c.nextTick()
}

// TryBegin claims the in-flight flag for a host-list fetch. It returns false
// when a fetch is already running.
func (c *RefreshController) TryBegin() bool {
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

// End releases the in-flight flag.
func (c *RefreshController) End() {
	c.inFlight = false
}

// InFlight reports whether a host-list fetch is running.
func (c *RefreshController) InFlight() bool {
	return c.inFlight
}

func (c *RefreshController) nextTick() Command {
	ctx, session := c.ctx, c.session
	timer := c.after(c.period)
	return func() Event {
		select {
		case <-timer:
			if ctx.Err() != nil {
				return nil
			}
			return refreshTick{session: session}
		case <-ctx.Done():
			return nil
		}
	}
}
