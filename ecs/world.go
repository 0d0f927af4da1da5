// Package ecs owns entities and the per-frame update order for the
// animation playback layer: start-of-life hooks first, then animators,
// then the sequencing task runner.
package ecs

import (
	"fmt"
	"sort"

	"github.com/milk9111/animplay/anim"
	"github.com/milk9111/animplay/playback"
	"github.com/milk9111/animplay/task"
)

// Entity is a handle to one world entity.
type Entity uint64

// World owns entities, their components, and the shared task runner.
type World struct {
	nextID  Entity
	alive   map[Entity]bool
	started map[Entity]bool

	animators map[Entity]*anim.Animator
	playbacks map[Entity]*playback.Controller
	sprites   map[Entity]*Sprite

	runner *task.Runner
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		alive:     make(map[Entity]bool),
		started:   make(map[Entity]bool),
		animators: make(map[Entity]*anim.Animator),
		playbacks: make(map[Entity]*playback.Controller),
		sprites:   make(map[Entity]*Sprite),
		runner:    task.NewRunner(),
	}
}

// Runner returns the world's sequencing task runner.
func (w *World) Runner() *task.Runner {
	if w == nil {
		return nil
	}
	return w.runner
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	w.nextID++
	e := w.nextID
	w.alive[e] = true
	return e
}

// DestroyEntity removes an entity, its components, and every sequencing
// task belonging to it. Pending waits are torn down without running
// their callbacks. Returns false for handles that are not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.alive[e] {
		return false
	}
	if c, ok := w.playbacks[e]; ok {
		w.runner.CancelOwner(c)
	}
	delete(w.alive, e)
	delete(w.started, e)
	delete(w.animators, e)
	delete(w.playbacks, e)
	delete(w.sprites, e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.alive[e]
}

// Entities returns all live entities in creation order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AttachAnimator binds an animator to an entity.
func (w *World) AttachAnimator(e Entity, a *anim.Animator) {
	if w == nil || !w.alive[e] || a == nil {
		return
	}
	w.animators[e] = a
}

// Animator returns the entity's animator, if any.
func (w *World) Animator(e Entity) *anim.Animator {
	return w.animators[e]
}

// AttachSprite binds a sprite to an entity.
func (w *World) AttachSprite(e Entity, s *Sprite) {
	if w == nil || !w.alive[e] || s == nil {
		return
	}
	w.sprites[e] = s
}

// Sprite returns the entity's sprite, if any.
func (w *World) Sprite(e Entity) *Sprite {
	return w.sprites[e]
}

// Playback returns the entity's playback controller, if any.
func (w *World) Playback(e Entity) *playback.Controller {
	return w.playbacks[e]
}

// AttachPlayback binds a playback controller to an entity. This is the
// attach-time initialization hook: the entity must already carry an
// animator (a missing one fails the attach), the controller is bound to
// it, the state-exit notifier is installed on the play state, and
// animation events are routed to the controller.
func (w *World) AttachPlayback(e Entity, c *playback.Controller) error {
	if w == nil || c == nil {
		return fmt.Errorf("ecs: attach playback: nil world or controller")
	}
	if !w.alive[e] {
		return fmt.Errorf("ecs: attach playback: entity %d is not alive", e)
	}
	a := w.animators[e]
	if a == nil {
		return fmt.Errorf("ecs: attach playback to entity %d: %w", e, playback.ErrNoAnimator)
	}
	if err := c.Bind(a, w.runner, entityOwner{w: w, e: e}); err != nil {
		return fmt.Errorf("ecs: attach playback to entity %d: %w", e, err)
	}
	if asset := a.Controller(); asset != nil && asset.PlayState != "" {
		a.AddStateBehaviour(asset.PlayState, playback.NewStateExitNotifier(w.lookupPlayback))
	}
	a.SetEventHandler(c.OnAnimationEvent)
	w.playbacks[e] = c
	return nil
}

// Update runs one frame: start-of-life hooks (autoplay), then animators,
// then the task runner. Entities update in creation order so a frame is
// deterministic.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	for _, e := range w.Entities() {
		c, ok := w.playbacks[e]
		if !ok || w.started[e] {
			continue
		}
		w.started[e] = true
		if c.Autoplay {
			c.Play(false, nil)
		}
	}
	for _, e := range w.Entities() {
		if a, ok := w.animators[e]; ok {
			a.Update(dt)
		}
	}
	w.runner.Update(dt)
}

func (w *World) lookupPlayback(a *anim.Animator) *playback.Controller {
	for e, owned := range w.animators {
		if owned == a {
			return w.playbacks[e]
		}
	}
	return nil
}

type entityOwner struct {
	w *World
	e Entity
}

// Destroy implements playback.Owner.
func (o entityOwner) Destroy() {
	o.w.DestroyEntity(o.e)
}
