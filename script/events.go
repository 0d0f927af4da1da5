// Package script runs tengo event-handler scripts against a playback
// controller. A script declares which animation events it handles in an
// `events` global list; on each dispatch it is re-run with `__event` set
// to the event name and `__engine` bound to a small function map.
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/animplay/playback"
)

// Env is the engine surface exposed to event scripts.
type Env struct {
	SetBool func(name string, v bool)
	Trigger func(name string)
}

// Handler is one compiled event script.
type Handler struct {
	name     string
	src      []byte
	compiled *tengo.Compiled
	events   []string
}

// New prepares a handler from tengo source. Compilation is deferred to
// Bind so construction never fails.
func New(name string, src []byte) *Handler {
	return &Handler{name: name, src: src}
}

// Bind compiles the script, reads its `events` global, and registers a
// callback for each declared event on the controller. Script runtime
// errors during dispatch are logged, not propagated: a broken script
// must not take down native listeners registered after it.
func (h *Handler) Bind(c *playback.Controller, env Env) error {
	if h == nil || c == nil {
		return fmt.Errorf("script: nil handler or controller")
	}
	if err := h.compile(env); err != nil {
		return err
	}
	if len(h.events) == 0 {
		return fmt.Errorf("script %s: no `events` declared", h.name)
	}
	for _, name := range h.events {
		event := name
		c.AddEventCallback(event, func() {
			if err := h.run(event, env); err != nil {
				log.Printf("script %s: event %q: %v", h.name, event, err)
			}
		})
	}
	return nil
}

// Events returns the event names the script declared. Empty before Bind.
func (h *Handler) Events() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.events...)
}

func (h *Handler) compile(env Env) error {
	s := tengo.NewScript(h.src)
	_ = s.Add("__event", "")
	_ = s.Add("__engine", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script %s: compile: %w", h.name, err)
	}
	h.compiled = compiled

	// Initial no-event run so the script's globals are populated.
	if err := h.run("", env); err != nil {
		return fmt.Errorf("script %s: init: %w", h.name, err)
	}
	if !compiled.IsDefined("events") {
		return nil
	}
	raw, ok := compiled.Get("events").Value().([]any)
	if !ok {
		return fmt.Errorf("script %s: `events` must be a list of strings", h.name)
	}
	for _, v := range raw {
		name, ok := v.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("script %s: `events` must be a list of strings", h.name)
		}
		h.events = append(h.events, name)
	}
	return nil
}

func (h *Handler) run(event string, env Env) error {
	if h.compiled == nil {
		return fmt.Errorf("not compiled")
	}
	if err := h.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := h.compiled.Set("__engine", buildEngine(env)); err != nil {
		return err
	}
	return h.compiled.Run()
}

func buildEngine(env Env) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.String())
		}
		log.Printf("script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["set_bool"] = &tengo.UserFunction{Name: "set_bool", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 || env.SetBool == nil {
			return tengo.FalseValue, nil
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		v, ok := tengo.ToBool(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		env.SetBool(name, v)
		return tengo.TrueValue, nil
	}}

	values["trigger"] = &tengo.UserFunction{Name: "trigger", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 || env.Trigger == nil {
			return tengo.FalseValue, nil
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		env.Trigger(name)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
