package anim

// Animator runs a controller asset's state machine for one entity. It is
// updated once per frame with the elapsed time in seconds; between
// updates all parameter changes are immediate but state transitions only
// happen inside Update.
type Animator struct {
	controller *ControllerAsset
	bools      map[string]bool
	triggers   map[string]bool
	behaviours map[string][]StateBehaviour
	eventFn    func(name string)

	state     string
	clip      *Clip
	cursor    float64
	lastFrame int
}

// NewAnimator creates an animator running the given controller asset.
func NewAnimator(controller *ControllerAsset) *Animator {
	a := &Animator{
		bools:      make(map[string]bool),
		triggers:   make(map[string]bool),
		behaviours: make(map[string][]StateBehaviour),
	}
	a.SetController(controller)
	return a
}

// Controller returns the currently assigned controller asset.
func (a *Animator) Controller() *ControllerAsset {
	if a == nil {
		return nil
	}
	return a.controller
}

// SetController assigns a controller asset and resets the state machine
// to its entry state.
func (a *Animator) SetController(c *ControllerAsset) {
	if a == nil {
		return
	}
	a.controller = c
	a.clip = nil
	a.cursor = 0
	a.lastFrame = -1
	if c != nil {
		a.state = c.EntryState
	} else {
		a.state = ""
	}
}

// SetTrigger raises a fire-once trigger parameter. It is consumed by the
// next Update.
func (a *Animator) SetTrigger(name string) {
	if a == nil || name == "" {
		return
	}
	a.triggers[name] = true
}

// SetBool sets a bool parameter.
func (a *Animator) SetBool(name string, v bool) {
	if a == nil || name == "" {
		return
	}
	a.bools[name] = v
}

// Bool returns a bool parameter's current value.
func (a *Animator) Bool(name string) bool {
	if a == nil {
		return false
	}
	return a.bools[name]
}

// SetOverride rebinds an override slot to a clip.
func (a *Animator) SetOverride(slot string, c *Clip) {
	if a == nil || a.controller == nil || a.controller.Overrides == nil {
		return
	}
	a.controller.Overrides[slot] = c
}

// Override returns the clip currently bound to an override slot.
func (a *Animator) Override(slot string) *Clip {
	if a == nil || a.controller == nil {
		return nil
	}
	return a.controller.Overrides[slot]
}

// AddStateBehaviour binds a behaviour to a named state.
func (a *Animator) AddStateBehaviour(state string, b StateBehaviour) {
	if a == nil || b == nil || state == "" {
		return
	}
	a.behaviours[state] = append(a.behaviours[state], b)
}

// SetEventHandler installs the sink for clip-authored event markers.
func (a *Animator) SetEventHandler(fn func(name string)) {
	if a == nil {
		return
	}
	a.eventFn = fn
}

// State returns the current state name.
func (a *Animator) State() string {
	if a == nil {
		return ""
	}
	return a.state
}

// CurrentClip returns the clip being played, or nil outside the play state.
func (a *Animator) CurrentClip() *Clip {
	if a == nil {
		return nil
	}
	return a.clip
}

// CurrentFrame returns the integer frame index of the playing clip.
func (a *Animator) CurrentFrame() int {
	if a == nil || a.clip == nil {
		return 0
	}
	f := int(a.cursor)
	if f >= a.clip.FrameCount {
		f = a.clip.FrameCount - 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// IsPlaying reports whether the animator is inside the play state.
func (a *Animator) IsPlaying() bool {
	return a != nil && a.controller != nil && a.state == a.controller.PlayState
}

// Update advances the state machine by dt seconds. Triggers raised since
// the last update are consumed first; the play state then advances its
// clip cursor, firing crossed event markers in frame order. Raising the
// trigger while already playing restarts the play state without firing
// exit notifications for the interrupted run.
func (a *Animator) Update(dt float64) {
	if a == nil || a.controller == nil {
		return
	}
	ctrl := a.controller
	if a.triggers[ctrl.Trigger] {
		delete(a.triggers, ctrl.Trigger)
		a.enterPlayState()
	}
	if a.state != ctrl.PlayState {
		return
	}
	if a.clip == nil || a.clip.FrameCount <= 0 || a.clip.FPS <= 0 {
		a.exitPlayState()
		return
	}
	a.advance(dt)
}

func (a *Animator) enterPlayState() {
	ctrl := a.controller
	a.state = ctrl.PlayState
	a.clip = ctrl.Overrides[ctrl.Slot]
	a.cursor = 0
	a.lastFrame = -1
	for _, b := range a.behaviours[ctrl.PlayState] {
		b.OnStateEnter(a)
	}
}

func (a *Animator) exitPlayState() {
	ctrl := a.controller
	a.state = ctrl.EntryState
	a.clip = nil
	a.cursor = 0
	a.lastFrame = -1
	for _, b := range a.behaviours[ctrl.PlayState] {
		b.OnStateExit(a)
	}
}

func (a *Animator) advance(dt float64) {
	clip := a.clip
	a.cursor += clip.FPS * dt
	for {
		limit := int(a.cursor)
		if limit > clip.FrameCount-1 {
			limit = clip.FrameCount - 1
		}
		a.fireMarkers(a.lastFrame+1, limit)
		a.lastFrame = limit
		if a.cursor < float64(clip.FrameCount) {
			return
		}
		if clip.Loop && a.Bool(a.controller.LoopBool) {
			// In-engine loop: wrap the cursor and refire from frame zero.
			a.cursor -= float64(clip.FrameCount)
			a.lastFrame = -1
			continue
		}
		a.exitPlayState()
		return
	}
}

func (a *Animator) fireMarkers(from, to int) {
	if a.eventFn == nil || from > to {
		return
	}
	clip := a.clip
	for f := from; f <= to; f++ {
		for _, m := range clip.Events {
			if m.Frame == f {
				a.eventFn(m.Name)
			}
		}
	}
}
