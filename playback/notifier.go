package playback

import "github.com/milk9111/animplay/anim"

// StateExitNotifier is the state-machine shim bound to the play state of
// a controller asset. When the engine exits the play state it resolves
// the playback controller bound to the exiting animator and forwards the
// notification. Animators without a controller (the behaviour may sit on
// a shared asset) are silently ignored.
type StateExitNotifier struct {
	lookup func(a *anim.Animator) *Controller
}

// NewStateExitNotifier creates a notifier that resolves controllers
// through lookup.
func NewStateExitNotifier(lookup func(a *anim.Animator) *Controller) *StateExitNotifier {
	return &StateExitNotifier{lookup: lookup}
}

// OnStateEnter implements anim.StateBehaviour. Nothing to do on entry.
func (n *StateExitNotifier) OnStateEnter(*anim.Animator) {}

// OnStateExit implements anim.StateBehaviour.
func (n *StateExitNotifier) OnStateExit(a *anim.Animator) {
	if n == nil || n.lookup == nil {
		return
	}
	if c := n.lookup(a); c != nil {
		c.OnAnimationExit()
	}
}
