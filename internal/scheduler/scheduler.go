// Package scheduler drives a job immediately and then at a fixed rate.
//
// Ticks never wait for earlier runs of the job: a slow run overlaps the next
// one rather than delaying it.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/aquaflow/aquaflow/internal/logger"
	"github.com/robfig/cron/v3"
)

// State is the scheduler lifecycle state.
type State int

const (
	// Idle is the state before Start.
	Idle State = iota
	// Polling is the recurring state after Start.
	Polling
	// Stopped is entered by Stop; there is no way back.
	Stopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// fixedRate fires every period measured from the previous activation.
// Unlike cron.Every it does not round to whole seconds.
type fixedRate struct {
	period time.Duration
}

// FixedRate returns a cron.Schedule that activates every period.
func FixedRate(period time.Duration) cron.Schedule {
	return fixedRate{period: period}
}

func (f fixedRate) Next(t time.Time) time.Time {
	return t.Add(f.period)
}

// Scheduler runs job once on Start and then on every activation of its schedule.
type Scheduler struct {
	mu       sync.Mutex
	job      func()
	schedule cron.Schedule
	cron     *cron.Cron
	log      logger.Logger
	state    State
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLogger routes scheduler diagnostics and recovered job panics to l.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSchedule replaces the fixed-rate schedule.
func WithSchedule(sched cron.Schedule) Option {
	return func(s *Scheduler) {
		if sched != nil {
			s.schedule = sched
		}
	}
}

// New creates an idle scheduler that will run job every period once started.
func New(period time.Duration, job func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		job:      job,
		schedule: FixedRate(period),
		log:      logger.Noop(),
		state:    Idle,
	}
	for _, opt := range opts {
		opt(s)
	}

	cl := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)
	return s
}

// Start runs the job once right away, then arms the repeating schedule.
// Calling Start more than once, or after Stop, does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return
	}

	s.cron.Schedule(s.schedule, cron.FuncJob(s.job))
	s.state = Polling

	go s.runOnce()
	s.cron.Start()
	s.log.Debug("scheduler started")
}

// runOnce runs the initial job with the same panic protection as scheduled runs.
func (s *Scheduler) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scheduler: initial run panicked: %v", r)
		}
	}()
	s.job()
}

// Stop prevents further activations. Runs already in flight are not waited on.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Stopped {
		return
	}
	if s.state == Polling {
		s.cron.Stop()
	}
	s.state = Stopped
	s.log.Debug("scheduler stopped")
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug("cron: %s %s", msg, formatKV(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error("cron: %s: %v %s", msg, err, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	out := ""
	for i := 0; i+1 < len(kv); i += 2 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%v=%v", kv[i], kv[i+1])
	}
	return out
}
