package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HandleMouseMovement turns the camera by the cursor delta scaled by
// sensitivity (degrees per pixel).
func (p *Player) HandleMouseMovement(xpos, ypos, sensitivity float64) {
	if p.FirstMouse {
		p.LastMouseX = xpos
		p.LastMouseY = ypos
		p.FirstMouse = false
		return
	}

	xoffset := (xpos - p.LastMouseX) * sensitivity
	yoffset := (p.LastMouseY - ypos) * sensitivity
	p.LastMouseX = xpos
	p.LastMouseY = ypos

	p.CamYaw += xoffset
	p.CamPitch += yoffset

	// Constrain pitch
	if p.CamPitch > 89.0 {
		p.CamPitch = 89.0
	}
	if p.CamPitch < -89.0 {
		p.CamPitch = -89.0
	}
}

// FrontVector is the unit view direction.
func (p *Player) FrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// HorizontalFront is the view direction flattened onto the ground plane.
func (p *Player) HorizontalFront() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(p.CamYaw)))
	return mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
}

// ViewMatrix looks from the eye along FrontVector.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	front := p.FrontVector()
	return mgl32.LookAtV(p.Position, p.Position.Add(front), mgl32.Vec3{0, 1, 0})
}
