// Package playback arbitrates which clip plays in an animator's override
// slot and sequences single-shot, delayed, and looping playback on top of
// the engine's state-exit notification.
package playback

import (
	"errors"
	"log"

	"github.com/milk9111/animplay/anim"
	"github.com/milk9111/animplay/task"
)

// Names fixed by the contract between this layer and authored controller
// assets. They must match the names configured in the asset; they are not
// negotiable at runtime.
const (
	// ControllerName is the controller asset this layer expects on its
	// animator.
	ControllerName = "playback"
	// OverrideSlot is the slot the play state reads its clip from.
	OverrideSlot = "clip"
	// TriggerParam starts the transition into the play state.
	TriggerParam = "play"
	// LoopParam enables in-engine looping for natively looping clips.
	LoopParam = "loop"
)

// CompletionTimeout bounds every wait on the completion flag, in seconds.
// The exit notification is logically guaranteed but not mechanically
// guaranteed (a mis-authored asset can fail to deliver it), so waits give
// up after this long and proceed as if completion occurred.
const CompletionTimeout = 10.0

// ErrNoAnimator is returned by Bind when no animator is available. This
// is a fatal precondition: nothing proceeds without one.
var ErrNoAnimator = errors.New("playback: no animator")

// ErrNoRunner is returned by Bind when no task runner is available.
var ErrNoRunner = errors.New("playback: no task runner")

// Owner is the entity a controller belongs to. Destroy is invoked as a
// side effect of self-destruct playback.
type Owner interface {
	Destroy()
}

// Controller selects clips, tracks completion of the engine's play
// state, and exposes the play operations. It owns its clip set and event
// registry for the lifetime of its entity; all sequencing runs on the
// bound task runner, single-threaded at frame boundaries.
type Controller struct {
	// Clip is the single clip played when no cycle list is configured.
	Clip *anim.Clip
	// CycleList, when non-empty, supplies the active clip at the current
	// index. The index wraps modulo the list length in both directions.
	CycleList []*anim.Clip
	// Autoplay issues Play at start-of-life when set.
	Autoplay bool

	clipIndex     int
	completed     bool
	events        Registry
	animator      *anim.Animator
	runner        *task.Runner
	owner         Owner
	misconfigured bool
}

// Bind attaches the controller to its animator and task runner. A nil
// animator or runner is fatal. An animator whose controller asset is not
// the expected ControllerName is a configuration error: it is reported
// via the log, play operations become no-ops, and Bind still returns
// nil. On success the asset is duplicated into an instance-local copy so
// clip substitution never touches the shared asset.
func (c *Controller) Bind(a *anim.Animator, r *task.Runner, owner Owner) error {
	if a == nil {
		return ErrNoAnimator
	}
	if r == nil {
		return ErrNoRunner
	}
	c.animator = a
	c.runner = r
	c.owner = owner

	asset := a.Controller()
	if asset == nil || asset.Name != ControllerName {
		got := "<none>"
		if asset != nil {
			got = asset.Name
		}
		log.Printf("playback: animator controller is %q, want %q; playback disabled", got, ControllerName)
		c.misconfigured = true
		return nil
	}
	a.SetController(asset.Instantiate())
	c.misconfigured = false
	return nil
}

// ClipIndex returns the raw selection index. It may be negative or out
// of range; it is normalized when the clip is chosen.
func (c *Controller) ClipIndex() int {
	return c.clipIndex
}

// SetClipIndex sets the selection index. No play operation advances the
// index on its own; callers that want to cycle through the list move it
// themselves.
func (c *Controller) SetClipIndex(i int) {
	c.clipIndex = i
}

// Completed reports whether the current session's state-exit
// notification has arrived.
func (c *Controller) Completed() bool {
	return c.completed
}

// ChooseAnimationClip returns the active clip: the cycle list element at
// the normalized index when the list is non-empty, the single clip
// otherwise.
func (c *Controller) ChooseAnimationClip() *anim.Clip {
	if n := len(c.CycleList); n > 0 {
		return c.CycleList[((c.clipIndex%n)+n)%n]
	}
	return c.Clip
}

// StartAnimation installs the chosen clip into the override slot, clears
// the completion flag, and raises the play trigger. This is the single
// path by which every play variant begins playback. It reports whether
// playback was actually started; missing slot or clip are logged
// configuration errors that abort the operation.
func (c *Controller) StartAnimation() bool {
	if c.animator == nil || c.misconfigured {
		return false
	}
	asset := c.animator.Controller()
	if asset == nil || !asset.HasSlot(OverrideSlot) {
		log.Printf("playback: controller asset has no %q override slot", OverrideSlot)
		return false
	}
	clip := c.ChooseAnimationClip()
	if clip == nil {
		log.Printf("playback: no clip configured")
		return false
	}
	c.animator.SetOverride(OverrideSlot, clip)
	c.completed = false
	c.animator.SetTrigger(TriggerParam)
	return true
}

// Play starts the chosen clip. Natively looping clips are handed to the
// engine's own loop (the loop bool is set, one trigger fires, and
// selfDestruct/onEnd are deliberately ignored: the engine never reports
// iteration boundaries back to this layer). For fire-once clips, when
// selfDestruct or onEnd is requested a sequencing task waits for
// completion, then invokes onEnd and destroys the owner, in that order.
func (c *Controller) Play(selfDestruct bool, onEnd func()) {
	clip := c.ChooseAnimationClip()
	if clip != nil && clip.Loop {
		c.animator.SetBool(LoopParam, true)
		c.StartAnimation()
		return
	}
	if !c.StartAnimation() {
		return
	}
	if !selfDestruct && onEnd == nil {
		return
	}
	c.runner.Spawn(c, c.waitForCompletion(), task.Do(func() {
		if onEnd != nil {
			onEnd()
		}
		if selfDestruct && c.owner != nil {
			c.owner.Destroy()
		}
	}))
}

// PlayDelayed suspends for delay seconds of real elapsed time, then
// performs Play with the same arguments.
func (c *Controller) PlayDelayed(delay float64, selfDestruct bool, onEnd func()) {
	if c.runner == nil || c.misconfigured {
		return
	}
	c.runner.Spawn(c, task.Delay(delay), task.Do(func() {
		c.Play(selfDestruct, onEnd)
	}))
}

// PlayLoop repeats indefinitely: start, wait for completion (or
// timeout), then suspend interval seconds before the next iteration.
// The loop only ends when the owning entity is destroyed. Natively
// looping clips are rejected: the engine's internal loop and this loop
// would fight over the trigger.
func (c *Controller) PlayLoop(interval float64) {
	if c.runner == nil || c.misconfigured {
		return
	}
	clip := c.ChooseAnimationClip()
	if clip != nil && clip.Loop {
		log.Printf("playback: PlayLoop on natively looping clip %q; use Play", clip.Name)
		return
	}
	c.runner.SpawnLoop(c, func() []task.Step {
		steps := []task.Step{
			task.Do(func() { c.StartAnimation() }),
			c.waitForCompletion(),
		}
		if interval > 0 {
			steps = append(steps, task.Delay(interval))
		}
		return steps
	})
}

// PlayLoopDelayed suspends for delay seconds, then starts a PlayLoop
// with the given interval. The delay is not repeated between iterations.
func (c *Controller) PlayLoopDelayed(delay, interval float64) {
	if c.runner == nil || c.misconfigured {
		return
	}
	c.runner.Spawn(c, task.Delay(delay), task.Do(func() {
		c.PlayLoop(interval)
	}))
}

// AddEventCallback registers fn under the animation event name. Multiple
// callbacks per name are invoked in registration order. The returned
// handle removes this registration.
func (c *Controller) AddEventCallback(name string, fn EventFunc) Handle {
	return c.events.Add(name, fn)
}

// RemoveEventCallback drops the registration identified by h under name.
// Unknown names or handles are a no-op.
func (c *Controller) RemoveEventCallback(name string, h Handle) {
	c.events.Remove(name, h)
}

// OnAnimationEvent is invoked by the engine at clip-authored event
// markers. Listener panics are not isolated; they propagate to the
// caller.
func (c *Controller) OnAnimationEvent(name string) {
	c.events.Dispatch(name)
}

// OnAnimationExit sets the completion flag. Idempotent; called by the
// engine-side state-exit notification.
func (c *Controller) OnAnimationExit() {
	c.completed = true
}

func (c *Controller) waitForCompletion() task.Step {
	return task.WaitFor(func() bool { return c.completed }, CompletionTimeout, func() {
		log.Printf("playback: no completion signal within %.0fs; continuing", CompletionTimeout)
	})
}
