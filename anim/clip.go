package anim

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventMarker names an animation event authored at a specific frame of a
// clip. The animator reports the name to its event sink when playback
// crosses the frame.
type EventMarker struct {
	Frame int
	Name  string
}

// Clip is an authored animation asset: a fixed number of frames played at
// a fixed rate, with an author-set native-loop flag and optional event
// markers. Frames may be nil; headless clips are valid for tools and
// tests that never draw.
type Clip struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
	Events     []EventMarker

	frames []*ebiten.Image
}

// NewClip creates a headless clip. frameCount must be positive; fps
// defaults to 12 if <= 0.
func NewClip(name string, frameCount int, fps float64, loop bool) *Clip {
	if frameCount <= 0 {
		frameCount = 1
	}
	if fps <= 0 {
		fps = 12
	}
	return &Clip{
		Name:       name,
		FrameCount: frameCount,
		FPS:        fps,
		Loop:       loop,
	}
}

// NewSheetClip slices a spritesheet into a clip. Frames are laid out
// left-to-right, top-to-bottom; `row` selects the 0-based starting row
// and reads frameCount frames from there, continuing onto subsequent
// rows if needed.
func NewSheetClip(name string, sheet *ebiten.Image, frameW, frameH, row, frameCount int, fps float64, loop bool) *Clip {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return NewClip(name, frameCount, fps, loop)
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols <= 0 || rows <= 0 {
		return NewClip(name, frameCount, fps, loop)
	}
	if row < 0 {
		row = 0
	}
	start := row * cols
	maxFrames := cols*rows - start
	if frameCount <= 0 || frameCount > maxFrames {
		frameCount = maxFrames
	}
	c := NewClip(name, frameCount, fps, loop)
	c.frames = make([]*ebiten.Image, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		idx := start + i
		sx := (idx % cols) * frameW
		sy := (idx / cols) * frameH
		r := image.Rect(sx, sy, sx+frameW, sy+frameH)
		c.frames = append(c.frames, sheet.SubImage(r).(*ebiten.Image))
	}
	return c
}

// Duration returns the clip length in seconds for a single iteration.
func (c *Clip) Duration() float64 {
	if c == nil || c.FPS <= 0 {
		return 0
	}
	return float64(c.FrameCount) / c.FPS
}

// Frame returns the image for frame i, clamped into range. Nil for
// headless clips.
func (c *Clip) Frame(i int) *ebiten.Image {
	if c == nil || len(c.frames) == 0 {
		return nil
	}
	i = int(math.Max(0, math.Min(float64(i), float64(len(c.frames)-1))))
	return c.frames[i]
}
