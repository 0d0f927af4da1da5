// Package task runs cooperative sequencing tasks on a per-frame tick.
// Tasks are ordered lists of steps; a step suspends by returning false
// from Tick and the runner resumes it on the next frame. Everything is
// single-threaded: tasks only interleave at frame boundaries.
package task

// Step is a single suspension point in a task. Tick is called once per
// frame with the elapsed seconds and returns true when the step is done.
type Step interface {
	Tick(dt float64) bool
}

type delayStep struct {
	remaining float64
}

func (s *delayStep) Tick(dt float64) bool {
	s.remaining -= dt
	return s.remaining <= 0
}

// Delay suspends for the given number of seconds of real elapsed time.
// Non-positive delays complete immediately.
func Delay(seconds float64) Step {
	return &delayStep{remaining: seconds}
}

type doStep struct {
	fn func()
}

func (s *doStep) Tick(float64) bool {
	if s.fn != nil {
		s.fn()
	}
	return true
}

// Do runs fn and completes within the same frame.
func Do(fn func()) Step {
	return &doStep{fn: fn}
}

type waitStep struct {
	cond      func() bool
	timeout   float64
	elapsed   float64
	onTimeout func()
}

func (s *waitStep) Tick(dt float64) bool {
	if s.cond != nil && s.cond() {
		return true
	}
	s.elapsed += dt
	if s.timeout > 0 && s.elapsed >= s.timeout {
		if s.onTimeout != nil {
			s.onTimeout()
		}
		return true
	}
	return false
}

// WaitFor suspends until cond reports true or timeout seconds elapse,
// whichever is first. On timeout onTimeout is called once and the step
// completes anyway. A timeout of zero waits forever.
func WaitFor(cond func() bool, timeout float64, onTimeout func()) Step {
	return &waitStep{cond: cond, timeout: timeout, onTimeout: onTimeout}
}

type job struct {
	owner    any
	steps    []Step
	idx      int
	rebuild  func() []Step
	canceled bool
}

// Runner owns all in-flight tasks and advances them once per frame.
type Runner struct {
	jobs []*job
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Spawn starts a task owned by owner that runs the given steps in order
// and then finishes. The first step is ticked on the next Update.
func (r *Runner) Spawn(owner any, steps ...Step) {
	if r == nil || len(steps) == 0 {
		return
	}
	r.jobs = append(r.jobs, &job{owner: owner, steps: steps})
}

// SpawnLoop starts a task that rebuilds its step list from build each
// time the previous list finishes. The loop never terminates on its own;
// cancel it by destroying its owner. At most one iteration starts per
// frame, so a body that completes instantly still yields.
func (r *Runner) SpawnLoop(owner any, build func() []Step) {
	if r == nil || build == nil {
		return
	}
	r.jobs = append(r.jobs, &job{owner: owner, steps: build(), rebuild: build})
}

// CancelOwner immediately cancels every task belonging to owner. No
// step of a canceled task runs again; the runner drops canceled tasks
// on its next Update.
func (r *Runner) CancelOwner(owner any) {
	if r == nil {
		return
	}
	for _, j := range r.jobs {
		if j.owner == owner {
			j.canceled = true
		}
	}
}

// Len returns the number of in-flight tasks.
func (r *Runner) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, j := range r.jobs {
		if !j.canceled {
			n++
		}
	}
	return n
}

// Update advances every task by dt. When a step completes, the next step
// is ticked in the same frame with a zero dt, so untimed steps chain
// within one frame while timed steps start counting on the following
// frame. Tasks spawned during Update are first ticked on the next one.
func (r *Runner) Update(dt float64) {
	if r == nil {
		return
	}
	active := r.jobs
	for _, j := range active {
		r.tick(j, dt)
	}
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if j.canceled || j.idx >= len(j.steps) {
			continue
		}
		kept = append(kept, j)
	}
	r.jobs = kept
}

func (r *Runner) tick(j *job, dt float64) {
	for !j.canceled && j.idx < len(j.steps) {
		if !j.steps[j.idx].Tick(dt) {
			return
		}
		j.idx++
		dt = 0
		if j.idx >= len(j.steps) && j.rebuild != nil && !j.canceled {
			// Next loop iteration starts on the next frame.
			j.steps = j.rebuild()
			j.idx = 0
			return
		}
	}
}
