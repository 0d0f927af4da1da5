package ecs

// Sprite places an entity's current animation frame on screen.
type Sprite struct {
	X     float64
	Y     float64
	Scale float64
}
