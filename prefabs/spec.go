package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec loads and unmarshals a yaml spec by file name.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// EventMarkerSpec places a named animation event on a clip frame.
type EventMarkerSpec struct {
	Frame int    `yaml:"frame"`
	Name  string `yaml:"name"`
}

// ClipSpec describes one authored clip. Sheet is optional: clips without
// a sheet are headless (no frame images), which is enough for tools and
// tests.
type ClipSpec struct {
	Name       string            `yaml:"name"`
	Sheet      string            `yaml:"sheet"`
	Row        int               `yaml:"row"`
	FrameCount int               `yaml:"frame_count"`
	FrameW     int               `yaml:"frame_w"`
	FrameH     int               `yaml:"frame_h"`
	FPS        float64           `yaml:"fps"`
	Loop       bool              `yaml:"loop"`
	Events     []EventMarkerSpec `yaml:"events"`
}

// ClipsSpec is the top-level shape of a clips file.
type ClipsSpec struct {
	Clips []ClipSpec `yaml:"clips"`
}

// LoadClipsSpec loads a clips file.
func LoadClipsSpec(filename string) (ClipsSpec, error) {
	return LoadSpec[ClipsSpec](filename)
}

// ControllerSpec describes a controller asset: its identity and the
// state, slot, and parameter names that form the naming contract with
// the playback layer. Default, when set, is the clip initially bound to
// the override slot.
type ControllerSpec struct {
	Name       string `yaml:"name"`
	EntryState string `yaml:"entry_state"`
	PlayState  string `yaml:"play_state"`
	Slot       string `yaml:"slot"`
	Trigger    string `yaml:"trigger"`
	LoopBool   string `yaml:"loop_bool"`
	Default    string `yaml:"default"`
}

// ControllerFileSpec is the top-level shape of a controller file.
type ControllerFileSpec struct {
	Controller ControllerSpec `yaml:"controller"`
}

// LoadControllerSpec loads a controller file.
func LoadControllerSpec(filename string) (ControllerSpec, error) {
	spec, err := LoadSpec[ControllerFileSpec](filename)
	if err != nil {
		return ControllerSpec{}, err
	}
	return spec.Controller, nil
}

// SpriteSpec places an entity on screen in the demo.
type SpriteSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

// PlaybackSpec configures an entity's playback controller by clip name.
type PlaybackSpec struct {
	Clip      string   `yaml:"clip"`
	CycleList []string `yaml:"cycle_list"`
	Autoplay  bool     `yaml:"autoplay"`
	Scripts   []string `yaml:"scripts"`
}

// EntitySpec describes one entity prefab.
type EntitySpec struct {
	Name     string        `yaml:"name"`
	Sprite   *SpriteSpec   `yaml:"sprite"`
	Playback *PlaybackSpec `yaml:"playback"`
}

// LoadEntitySpec loads an entity prefab file.
func LoadEntitySpec(filename string) (EntitySpec, error) {
	return LoadSpec[EntitySpec](filename)
}
