package anim

// ControllerAsset describes an animator's states and parameters: an entry
// state, a single play state bound to an override slot, a fire-once
// trigger that starts the transition into the play state, and a bool
// parameter that enables in-engine looping. Assets are authored once and
// shared; use Instantiate before substituting clips per entity.
type ControllerAsset struct {
	Name       string
	EntryState string
	PlayState  string
	Slot       string
	Trigger    string
	LoopBool   string
	Overrides  map[string]*Clip
}

// Instantiate returns a copy of the asset with its own override map so
// runtime clip substitution never mutates the shared asset. Clips are
// immutable at runtime and stay shared.
func (a *ControllerAsset) Instantiate() *ControllerAsset {
	if a == nil {
		return nil
	}
	dup := *a
	dup.Overrides = make(map[string]*Clip, len(a.Overrides))
	for slot, clip := range a.Overrides {
		dup.Overrides[slot] = clip
	}
	return &dup
}

// HasSlot reports whether the asset defines the named override slot.
func (a *ControllerAsset) HasSlot(slot string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Overrides[slot]
	return ok
}
