package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/plated/internal/logging"
)

// Verdict is what is known about a candidate username.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictAvailable
	VerdictTaken
)

func (v Verdict) String() string {
	switch v {
	case VerdictAvailable:
		return "available"
	case VerdictTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// UsernameChecker is the slice of the API the checker needs.
type UsernameChecker interface {
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// AvailabilityChecker debounces availability lookups for one input field.
// Each Update cancels the previously scheduled lookup before it fires, so
// only the latest candidate is ever sent; a response that arrives after
// the candidate changed is dropped.
type AvailabilityChecker struct {
	check UsernameChecker
	delay time.Duration
	log   logging.Logger

	mu        sync.Mutex
	gen       uint64
	timer     *time.Timer
	candidate string
	verdict   Verdict
	pending   bool
	inFlight  int
	changed   chan struct{}
}

func NewAvailabilityChecker(check UsernameChecker, delay time.Duration, log logging.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		check:   check,
		delay:   delay,
		log:     log,
		changed: make(chan struct{}),
	}
}

// Update sets a new candidate. Candidates shorter than MinUsernameLength
// are not checked and leave the verdict unknown. The lookup runs with ctx
// once delay has passed without another Update.
func (a *AvailabilityChecker) Update(ctx context.Context, candidate string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	gen := a.resetLocked(candidate, VerdictUnknown)
	if len(candidate) < MinUsernameLength {
		return
	}

	a.pending = true
	a.timer = time.AfterFunc(a.delay, func() { a.fire(ctx, gen, candidate) })
}

// Assume records a verdict for candidate without asking the server.
func (a *AvailabilityChecker) Assume(candidate string, v Verdict) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked(candidate, v)
}

// Reset cancels any scheduled lookup and forgets the verdict.
func (a *AvailabilityChecker) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked("", VerdictUnknown)
}

// Verdict returns the current candidate and what is known about it.
func (a *AvailabilityChecker) Verdict() (string, Verdict) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.candidate, a.verdict
}

// VerdictFor returns the verdict if it belongs to candidate, else unknown.
func (a *AvailabilityChecker) VerdictFor(candidate string) Verdict {
	c, v := a.Verdict()
	if c != candidate {
		return VerdictUnknown
	}
	return v
}

// InFlight reports whether a lookup request is currently outstanding.
func (a *AvailabilityChecker) InFlight() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight > 0
}

// Checking reports whether a lookup is scheduled or outstanding.
func (a *AvailabilityChecker) Checking() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending || a.inFlight > 0
}

// Wait blocks until no lookup is scheduled or outstanding.
func (a *AvailabilityChecker) Wait(ctx context.Context) error {
	for {
		a.mu.Lock()
		if !a.pending && a.inFlight == 0 {
			a.mu.Unlock()
			return nil
		}
		ch := a.changed
		a.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *AvailabilityChecker) fire(ctx context.Context, gen uint64, candidate string) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.inFlight++
	a.notifyLocked()
	a.mu.Unlock()

	available, err := a.check.CheckUsername(ctx, candidate)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight--
	defer a.notifyLocked()

	if gen != a.gen {
		a.log.Debug(ctx, "dropping stale availability answer", "username", candidate)
		return
	}
	if err != nil {
		a.log.Warn(ctx, "username availability check failed", "username", candidate, "err", err)
		return
	}
	if available {
		a.verdict = VerdictAvailable
	} else {
		a.verdict = VerdictTaken
	}
}

// resetLocked cancels the scheduled lookup, starts a new generation and
// returns it.
func (a *AvailabilityChecker) resetLocked(candidate string, v Verdict) uint64 {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.candidate = candidate
	a.verdict = v
	a.pending = false
	a.notifyLocked()
	return a.gen
}

func (a *AvailabilityChecker) notifyLocked() {
	close(a.changed)
	a.changed = make(chan struct{})
}
