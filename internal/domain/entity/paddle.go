package entity

// Paddle defaults.
const (
	PaddleWidth  = 20
	PaddleHeight = 100
	PaddleOffset = 50 // distance from the screen edge
	PaddleSpeed  = 400

	// AIDeadZone is how far the AI paddle may drift from its target before
	// it moves, so it never jitters.
	AIDeadZone = 10
)

// Paddle is a player- or AI-controlled bat.
type Paddle struct {
	Rect
	Speed float64 // pixels per second

	// MoveUp and MoveDown are the held-key flags for a player paddle.
	MoveUp, MoveDown bool

	Score int
}

// NewPaddle creates a default-sized paddle with its top-left corner at x, y.
func NewPaddle(x, y float64) *Paddle {
	return &Paddle{
		Rect:  Rect{X: x, Y: y, W: PaddleWidth, H: PaddleHeight},
		Speed: PaddleSpeed,
	}
}

// Drive moves the paddle by the held-key flags.
func (p *Paddle) Drive(dt float64) {
	if p.MoveUp {
		p.Y -= p.Speed * dt
	}
	if p.MoveDown {
		p.Y += p.Speed * dt
	}
}

// Track moves the paddle's center toward targetY at factor times its
// speed, never overshooting and ignoring offsets inside AIDeadZone.
func (p *Paddle) Track(targetY, factor, dt float64) {
	target := targetY - p.H/2
	diff := target - p.Y
	if diff > -AIDeadZone && diff < AIDeadZone {
		return
	}
	step := p.Speed * factor * dt
	if diff > 0 {
		p.Y += min(step, diff)
	} else {
		p.Y -= min(step, -diff)
	}
}

// Release clears the held-key flags.
func (p *Paddle) Release() {
	p.MoveUp = false
	p.MoveDown = false
}

// IncrementScore adds a point and returns the new score.
func (p *Paddle) IncrementScore() int {
	p.Score++
	return p.Score
}
