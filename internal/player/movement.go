package player

import (
	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdatePosition advances the player by dt seconds. Horizontal axes are tried
// one at a time and reverted on collision, then gravity is applied the same
// way; landing on something re-enables jumping.
func (p *Player) UpdatePosition(dt float32, in Intent, w Collider) {
	defer profiling.Track("player.UpdatePosition")()

	forward := p.HorizontalFront()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Backward {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if move.LenSqr() > 0 {
		move = move.Normalize()
	}

	speed := float32(WalkSpeed)
	if in.Sprint {
		speed = SprintSpeed
	}
	move = move.Mul(speed * dt)

	p.attemptMoveAxis(w, move.X(), 0)
	p.attemptMoveAxis(w, move.Z(), 2)

	width, height, depth := w.Dimensions()
	p.Position[0] = mgl32.Clamp(p.Position[0], 1, float32(width-2))
	p.Position[2] = mgl32.Clamp(p.Position[2], 1, float32(depth-2))

	p.VelocityY -= Gravity * dt
	dy := p.VelocityY * dt
	p.Position[1] += dy
	if w.Collides(p.Position, Radius, Height) {
		wasFalling := p.VelocityY < 0
		p.Position[1] -= dy
		p.VelocityY = 0
		if wasFalling {
			p.CanJump = true
		}
	} else {
		p.CanJump = false
	}
	p.Position[1] = mgl32.Clamp(p.Position[1], 2, float32(height+20))
}

func (p *Player) attemptMoveAxis(w Collider, offset float32, axis int) {
	if offset == 0 {
		return
	}
	p.Position[axis] += offset
	if w.Collides(p.Position, Radius, Height) {
		p.Position[axis] -= offset
	}
}
