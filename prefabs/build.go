package prefabs

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/animplay/anim"
	"github.com/milk9111/animplay/ecs"
	"github.com/milk9111/animplay/playback"
	"github.com/milk9111/animplay/script"
)

// ImageLoader resolves a sheet path to an image. A nil loader builds
// headless clips regardless of the spec's sheet field.
type ImageLoader func(name string) (*ebiten.Image, error)

// BuildClips turns clip specs into clips keyed by name. Duplicate names
// and nameless clips are errors.
func BuildClips(specs []ClipSpec, load ImageLoader) (map[string]*anim.Clip, error) {
	clips := make(map[string]*anim.Clip, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("prefabs: clip without a name")
		}
		if _, exists := clips[spec.Name]; exists {
			return nil, fmt.Errorf("prefabs: duplicate clip %q", spec.Name)
		}
		var clip *anim.Clip
		if spec.Sheet != "" && load != nil {
			sheet, err := load(spec.Sheet)
			if err != nil {
				return nil, fmt.Errorf("prefabs: clip %q: load sheet %q: %w", spec.Name, spec.Sheet, err)
			}
			clip = anim.NewSheetClip(spec.Name, sheet, spec.FrameW, spec.FrameH, spec.Row, spec.FrameCount, spec.FPS, spec.Loop)
		} else {
			clip = anim.NewClip(spec.Name, spec.FrameCount, spec.FPS, spec.Loop)
		}
		for _, m := range spec.Events {
			if m.Name == "" || m.Frame < 0 || m.Frame >= clip.FrameCount {
				return nil, fmt.Errorf("prefabs: clip %q: event %q at frame %d out of range", spec.Name, m.Name, m.Frame)
			}
			clip.Events = append(clip.Events, anim.EventMarker{Frame: m.Frame, Name: m.Name})
		}
		clips[spec.Name] = clip
	}
	return clips, nil
}

// BuildController turns a controller spec into a shared controller
// asset, applying the playback layer's default names where the spec
// leaves them blank and validating that a default clip, when named,
// exists. The override slot always exists on the built asset.
func BuildController(spec ControllerSpec, clips map[string]*anim.Clip) (*anim.ControllerAsset, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("prefabs: controller without a name")
	}
	asset := &anim.ControllerAsset{
		Name:       spec.Name,
		EntryState: spec.EntryState,
		PlayState:  spec.PlayState,
		Slot:       spec.Slot,
		Trigger:    spec.Trigger,
		LoopBool:   spec.LoopBool,
		Overrides:  make(map[string]*anim.Clip),
	}
	if asset.EntryState == "" {
		asset.EntryState = "idle"
	}
	if asset.PlayState == "" {
		asset.PlayState = "play"
	}
	if asset.Slot == "" {
		asset.Slot = playback.OverrideSlot
	}
	if asset.Trigger == "" {
		asset.Trigger = playback.TriggerParam
	}
	if asset.LoopBool == "" {
		asset.LoopBool = playback.LoopParam
	}
	asset.Overrides[asset.Slot] = nil
	if spec.Default != "" {
		clip, ok := clips[spec.Default]
		if !ok {
			return nil, fmt.Errorf("prefabs: controller %q: default clip %q is not defined", spec.Name, spec.Default)
		}
		asset.Overrides[asset.Slot] = clip
	}
	return asset, nil
}

// BuildEntity creates an entity from its prefab spec: animator running
// the shared asset, optional sprite, and a playback controller with its
// clip set resolved by name. Event scripts listed in the spec are bound
// to the controller. Unknown clip names are descriptive errors.
func BuildEntity(w *ecs.World, spec EntitySpec, asset *anim.ControllerAsset, clips map[string]*anim.Clip) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("prefabs: build entity: world is nil")
	}
	if asset == nil {
		return 0, fmt.Errorf("prefabs: build entity %q: controller asset is nil", spec.Name)
	}

	e := w.CreateEntity()
	a := anim.NewAnimator(asset)
	w.AttachAnimator(e, a)

	if spec.Sprite != nil {
		scale := spec.Sprite.Scale
		if scale <= 0 {
			scale = 1
		}
		w.AttachSprite(e, &ecs.Sprite{X: spec.Sprite.X, Y: spec.Sprite.Y, Scale: scale})
	}

	if spec.Playback == nil {
		return e, nil
	}

	ctrl := &playback.Controller{Autoplay: spec.Playback.Autoplay}
	if spec.Playback.Clip != "" {
		clip, ok := clips[spec.Playback.Clip]
		if !ok {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("prefabs: entity %q: clip %q is not defined", spec.Name, spec.Playback.Clip)
		}
		ctrl.Clip = clip
	}
	for _, name := range spec.Playback.CycleList {
		clip, ok := clips[name]
		if !ok {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("prefabs: entity %q: cycle clip %q is not defined", spec.Name, name)
		}
		ctrl.CycleList = append(ctrl.CycleList, clip)
	}
	if err := w.AttachPlayback(e, ctrl); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("prefabs: entity %q: %w", spec.Name, err)
	}

	for _, name := range spec.Playback.Scripts {
		src, err := LoadScript(name)
		if err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("prefabs: entity %q: load script %q: %w", spec.Name, name, err)
		}
		handler := script.New(name, src)
		if err := handler.Bind(ctrl, scriptEnv(a)); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("prefabs: entity %q: bind script %q: %w", spec.Name, name, err)
		}
	}
	return e, nil
}

func scriptEnv(a *anim.Animator) script.Env {
	return script.Env{
		SetBool: a.SetBool,
		Trigger: a.SetTrigger,
	}
}
