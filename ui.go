package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// controlPanel is the button bar driving the demo entity's playback.
type controlPanel struct {
	ui *ebitenui.UI
}

func newControlPanel(g *Game) *controlPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	withPlayback := func(fn func()) func() {
		return func() {
			if g.world.Playback(g.entity) != nil {
				fn()
			}
		}
	}
	panel.AddChild(button("Play", withPlayback(func() {
		g.world.Playback(g.entity).Play(false, func() { g.lastEvent = "done" })
	})))
	panel.AddChild(button("Play Delayed", withPlayback(func() {
		g.world.Playback(g.entity).PlayDelayed(1.0, false, nil)
	})))
	panel.AddChild(button("Play Loop", withPlayback(func() {
		g.world.Playback(g.entity).PlayLoop(0.5)
	})))
	panel.AddChild(button("Next Clip", withPlayback(func() {
		c := g.world.Playback(g.entity)
		c.SetClipIndex(c.ClipIndex() + 1)
	})))
	panel.AddChild(button("Destroy", func() {
		g.world.DestroyEntity(g.entity)
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &controlPanel{ui: &ebitenui.UI{Container: root}}
}

func (p *controlPanel) Update() {
	if p == nil || p.ui == nil {
		return
	}
	p.ui.Update()
}

func (p *controlPanel) Draw(screen *ebiten.Image) {
	if p == nil || p.ui == nil {
		return
	}
	p.ui.Draw(screen)
}
