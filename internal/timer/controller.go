// Package timer implements the Pomodoro countdown state machine and
// the fire-and-forget session recorder it emits to.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kpom/kpom/internal/model"
)

// Phase identifies which half of the cycle the countdown covers.
type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// Recorder persists one completed focus session. Implementations must
// be safe for concurrent use; the controller calls from a goroutine.
type Recorder interface {
	RecordSession(ctx context.Context, methodID string, focusMinutes int) error
}

// Snapshot is a point-in-time view of the controller state.
type Snapshot struct {
	Method           model.MethodPreset
	Phase            Phase
	Running          bool
	RemainingSeconds int
}

// Controller drives a focus/break countdown for one method preset.
// It decrements a plain counter once per tick from a single repeating
// ticker; there is no drift correction. A finished focus phase emits
// exactly one session record, fire-and-forget: a failed write is
// logged and never retried, and never blocks the phase transition.
type Controller struct {
	mu        sync.Mutex
	method    model.MethodPreset
	phase     Phase
	running   bool
	remaining int

	recorder Recorder
	logger   *slog.Logger
}

// NewController creates a controller idle at the start of a focus phase.
func NewController(method model.MethodPreset, recorder Recorder, logger *slog.Logger) *Controller {
	return &Controller{
		method:    method,
		phase:     PhaseFocus,
		remaining: method.FocusMinutes * 60,
		recorder:  recorder,
		logger:    logger,
	}
}

// StartPause toggles between running and idle within the current phase.
func (c *Controller) StartPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = !c.running
}

// SwitchMethod changes the active preset, resets the countdown to the
// current phase's duration under the new preset, and forces idle.
func (c *Controller) SwitchMethod(method model.MethodPreset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method = method
	c.running = false
	c.remaining = c.phaseDurationLocked()
}

// SwitchPhase jumps to the given phase, resets the countdown to that
// phase's duration, and forces idle.
func (c *Controller) SwitchPhase(phase Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = phase
	c.running = false
	c.remaining = c.phaseDurationLocked()
}

// State returns a snapshot of the current controller state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Method:           c.method,
		Phase:            c.phase,
		Running:          c.running,
		RemainingSeconds: c.remaining,
	}
}

// Run drives the countdown with a 1-second ticker until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick applies one second of countdown. Idle phases ignore ticks.
func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return
	}

	finished := c.phase
	focusMinutes := c.method.FocusMinutes
	methodID := c.method.ID

	switch finished {
	case PhaseFocus:
		c.phase = PhaseBreak
	case PhaseBreak:
		c.phase = PhaseFocus
	}
	c.running = false
	c.remaining = c.phaseDurationLocked()
	c.mu.Unlock()

	if finished != PhaseFocus {
		return
	}

	// Fire-and-forget: the phase transition above already happened and
	// stands whether or not this write lands.
	go func() {
		if err := c.recorder.RecordSession(ctx, methodID, focusMinutes); err != nil {
			c.logger.Error("failed to record session", "method_id", methodID, "error", err)
		}
	}()
}

// phaseDurationLocked returns the configured duration in seconds for
// the current phase. Caller must hold c.mu.
func (c *Controller) phaseDurationLocked() int {
	if c.phase == PhaseBreak {
		return c.method.BreakMinutes * 60
	}
	return c.method.FocusMinutes * 60
}
