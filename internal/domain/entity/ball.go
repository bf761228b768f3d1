package entity

import (
	"math"
	"math/rand/v2"
)

// Ball defaults.
const (
	BallSize  = 15
	BallSpeed = 300

	// BounceSpeedup multiplies the velocity on every paddle hit.
	BounceSpeedup = 1.05
	// DeflectFactor scales the vertical speed a paddle hit can add,
	// relative to the horizontal speed.
	DeflectFactor = 0.75
)

// Ball is the square ball. Its velocity grows with every paddle hit and is
// reset on serve.
type Ball struct {
	Body
	BaseSpeed float64
}

// NewBall creates a stationary ball centered on cx, cy.
func NewBall(cx, cy float64) *Ball {
	b := &Ball{
		Body:      Body{Rect: Rect{W: BallSize, H: BallSize}},
		BaseSpeed: BallSpeed,
	}
	b.Center(cx, cy)
	return b
}

// Center places the ball's center at cx, cy.
func (b *Ball) Center(cx, cy float64) {
	b.X = cx - b.W/2
	b.Y = cy - b.H/2
}

// Serve centers the ball on cx, cy and launches it at BaseSpeed in a random
// direction that is never too flat.
func (b *Ball) Serve(cx, cy float64, rng *rand.Rand) {
	b.Center(cx, cy)

	angle := 0.5 + rng.Float64()*0.5
	if rng.IntN(2) == 0 {
		angle = -angle
	}
	dx := 1.0
	if rng.IntN(2) == 0 {
		dx = -1
	}
	length := math.Hypot(dx, angle)
	b.VX = dx / length * b.BaseSpeed
	b.VY = angle / length * b.BaseSpeed
}

// Speed returns the current speed in pixels per second.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// BounceVertical reflects the ball off a horizontal wall.
func (b *Ball) BounceVertical() {
	b.VY = -b.VY
}

// BounceHorizontal reflects the ball off a paddle and speeds it up.
func (b *Ball) BounceHorizontal() {
	b.VX = -b.VX * BounceSpeedup
	b.VY *= BounceSpeedup
}

// WallBounce bounces off the top or bottom edge of a court height tall and
// keeps the ball inside. It reports whether a bounce happened.
func (b *Ball) WallBounce(height float64) bool {
	switch {
	case b.Y <= 0:
		b.Y = 0
	case b.Bottom() >= height:
		b.Y = height - b.H
	default:
		return false
	}
	b.BounceVertical()
	return true
}

// Deflect bounces the ball off p if they overlap and the ball is moving
// toward it. The exit angle depends on where the ball struck: hits near
// the paddle's ends leave steeper. The ball is pushed out of the paddle so
// a hit registers once. It reports whether a hit happened.
func (b *Ball) Deflect(p *Paddle) bool {
	if !b.Intersects(p.Rect) {
		return false
	}
	towardRight := b.VX > 0 && b.CenterX() < p.CenterX()
	towardLeft := b.VX < 0 && b.CenterX() > p.CenterX()
	if !towardRight && !towardLeft {
		return false
	}

	b.BounceHorizontal()

	relative := (p.CenterY() - b.CenterY()) / (p.H / 2)
	relative = max(-1, min(1, relative))
	b.VY = -relative * math.Abs(b.VX) * DeflectFactor

	if towardRight {
		b.X = p.X - b.W
	} else {
		b.X = p.Right()
	}
	return true
}
