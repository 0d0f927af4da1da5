package playback

// EventFunc handles a named animation event.
type EventFunc func()

// Handle identifies one registered event callback so it can be removed
// later. Handles are only meaningful for the registry that issued them.
type Handle int

type registration struct {
	handle Handle
	fn     EventFunc
}

// Registry maps animation event names to ordered listener lists.
// Listeners registered under the same name are invoked in registration
// order. The zero value is ready to use.
type Registry struct {
	listeners map[string][]registration
	next      Handle
}

// Add registers fn under name and returns its removal handle. A nil fn
// returns an invalid handle and registers nothing.
func (r *Registry) Add(name string, fn EventFunc) Handle {
	if r == nil || fn == nil || name == "" {
		return -1
	}
	if r.listeners == nil {
		r.listeners = make(map[string][]registration)
	}
	r.next++
	h := r.next
	r.listeners[name] = append(r.listeners[name], registration{handle: h, fn: fn})
	return h
}

// Remove drops the listener registered under name with the given handle.
// Removing an unknown name or handle is a no-op.
func (r *Registry) Remove(name string, h Handle) {
	if r == nil || r.listeners == nil {
		return
	}
	regs, ok := r.listeners[name]
	if !ok {
		return
	}
	for i, reg := range regs {
		if reg.handle == h {
			r.listeners[name] = append(regs[:i], regs[i+1:]...)
			if len(r.listeners[name]) == 0 {
				delete(r.listeners, name)
			}
			return
		}
	}
}

// Dispatch invokes every listener registered under name in registration
// order. Listener panics are not recovered; they propagate to the
// caller.
func (r *Registry) Dispatch(name string) {
	if r == nil || r.listeners == nil {
		return
	}
	regs := r.listeners[name]
	for _, reg := range regs {
		reg.fn()
	}
}

// Len returns the number of listeners registered under name.
func (r *Registry) Len(name string) int {
	if r == nil || r.listeners == nil {
		return 0
	}
	return len(r.listeners[name])
}
