package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	watch := flag.Bool("watch", false, "hot-reload prefabs/data when files change")
	flag.Parse()

	game, err := NewGame(*watch)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("animplay")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
