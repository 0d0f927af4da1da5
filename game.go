package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/animplay/anim"
	"github.com/milk9111/animplay/ecs"
	"github.com/milk9111/animplay/prefabs"
)

const (
	baseWidth  = 960
	baseHeight = 540

	tickSeconds = 1.0 / 60.0
)

// Game drives the demo: one prefab-built entity whose playback is
// controlled from the UI panel or the keyboard.
type Game struct {
	world   *ecs.World
	entity  ecs.Entity
	clips   map[string]*anim.Clip
	asset   *anim.ControllerAsset
	ui      *controlPanel
	watcher *prefabs.Watcher

	lastEvent string
}

// NewGame builds the world from the embedded prefabs.
func NewGame(watch bool) (*Game, error) {
	g := &Game{}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	g.ui = newControlPanel(g)

	if watch {
		w, err := prefabs.NewWatcher("prefabs/data")
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// rebuild loads clips, controller, and the runner entity from prefab
// specs into a fresh world.
func (g *Game) rebuild() error {
	clipsSpec, err := prefabs.LoadClipsSpec("clips.yaml")
	if err != nil {
		return err
	}
	clips, err := prefabs.BuildClips(clipsSpec.Clips, nil)
	if err != nil {
		return err
	}
	ctrlSpec, err := prefabs.LoadControllerSpec("controller.yaml")
	if err != nil {
		return err
	}
	asset, err := prefabs.BuildController(ctrlSpec, clips)
	if err != nil {
		return err
	}
	entitySpec, err := prefabs.LoadEntitySpec("runner.yaml")
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	entity, err := prefabs.BuildEntity(world, entitySpec, asset, clips)
	if err != nil {
		return err
	}
	if c := world.Playback(entity); c != nil {
		c.AddEventCallback("hit", func() { g.lastEvent = "hit" })
		c.AddEventCallback("recover", func() { g.lastEvent = "recover" })
	}

	g.world = world
	g.entity = entity
	g.clips = clips
	g.asset = asset
	return nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleKeys()
	g.ui.Update()
	g.world.Update(tickSeconds)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Changed:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", name)
			reload = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			if reload {
				if err := g.rebuild(); err != nil {
					log.Printf("reload failed: %v", err)
				}
			}
			return
		}
	}
}

func (g *Game) handleKeys() {
	c := g.world.Playback(g.entity)
	if c == nil {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		c.Play(false, func() { g.lastEvent = "done" })
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		c.PlayDelayed(1.0, false, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		c.PlayLoop(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		c.SetClipIndex(c.ClipIndex() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.world.DestroyEntity(g.entity)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawEntity(screen)
	g.ui.Draw(screen)

	status := "destroyed"
	if c := g.world.Playback(g.entity); c != nil {
		a := g.world.Animator(g.entity)
		clip := "<none>"
		frame := 0
		if cur := a.CurrentClip(); cur != nil {
			clip = cur.Name
			frame = a.CurrentFrame()
		}
		status = fmt.Sprintf(
			"state: %s  clip: %s  frame: %d  index: %d  completed: %v  event: %s",
			a.State(), clip, frame, c.ClipIndex(), c.Completed(), g.lastEvent,
		)
	}
	ebitenutil.DebugPrint(screen, "space: play  d: delayed  l: loop  n: next clip  x: destroy\n"+status)
}

// drawEntity renders the playing frame. Sheetless clips get a flat
// swatch whose brightness tracks the frame index so playback is still
// visible without art assets.
func (g *Game) drawEntity(screen *ebiten.Image) {
	for _, e := range g.world.Entities() {
		s := g.world.Sprite(e)
		a := g.world.Animator(e)
		if s == nil || a == nil {
			continue
		}
		clip := a.CurrentClip()
		if clip == nil {
			vector.StrokeRect(screen, float32(s.X), float32(s.Y), float32(16*s.Scale), float32(16*s.Scale), 1, colornames.Dimgray, false)
			continue
		}
		if img := clip.Frame(a.CurrentFrame()); img != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(s.Scale, s.Scale)
			op.GeoM.Translate(s.X, s.Y)
			op.Filter = ebiten.FilterNearest
			screen.DrawImage(img, op)
			continue
		}
		c := colornames.Steelblue
		shade := uint8(255 * (a.CurrentFrame() + 1) / clip.FrameCount)
		c.A = shade
		vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(16*s.Scale), float32(16*s.Scale), c, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
