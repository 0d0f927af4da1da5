package anim

// StateBehaviour receives state lifecycle notifications from an Animator.
// Behaviours are bound per animator to a named state and are invoked in
// registration order.
type StateBehaviour interface {
	OnStateEnter(a *Animator)
	OnStateExit(a *Animator)
}
