// Package entity holds the Pong game objects: an axis-aligned Rect and the
// Paddle and Ball built on it.
package entity

// Rect is an axis-aligned rectangle in screen pixels. X, Y is the top-left
// corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the X coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the Y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ClampY keeps r vertically inside [0, height].
func (r *Rect) ClampY(height float64) {
	switch {
	case r.Y < 0:
		r.Y = 0
	case r.Bottom() > height:
		r.Y = height - r.H
	}
}

// Body is a Rect that moves with a velocity in pixels per second.
type Body struct {
	Rect
	VX, VY float64
}

// ApplyVelocity moves the body by its velocity over dt seconds.
func (b *Body) ApplyVelocity(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}
