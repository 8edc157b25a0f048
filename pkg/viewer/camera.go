package viewer

import (
	"math"

	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// Camera is a perspective camera orbiting a target point
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in degrees
	Near      float64
	Far       float64
	Distance  float64
	RotationX float64 // Elevation above the target's horizontal plane
	RotationY float64 // Azimuth around the vertical axis

	home struct {
		position geometry.Vector3
		target   geometry.Vector3
	}
}

// NewCamera creates a camera at position looking at target
func NewCamera(position, target geometry.Vector3, fov, near, far float64) *Camera {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
		Near:     near,
		Far:      far,
	}
	c.syncOrbit()
	c.home.position = position
	c.home.target = target
	return c
}

// syncOrbit derives the orbit parameters from Position and Target
func (c *Camera) syncOrbit() {
	offset := c.Position.Sub(c.Target)
	c.Distance = offset.Length()
	if c.Distance == 0 {
		c.RotationX, c.RotationY = 0, 0
		return
	}
	c.RotationX = math.Asin(math.Max(-1, math.Min(1, offset.Y/c.Distance)))
	c.RotationY = math.Atan2(offset.X, offset.Z)
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp elevation to avoid flipping over the poles
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < c.Near*2 {
		c.Distance = c.Near * 2
	}
	c.UpdatePosition()
}

// Pan moves the target (and camera) in the view plane. dx, dy are screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.basis()
	speed := c.Distance * 0.001

	move := right.Mul(-dx * speed).Add(up.Mul(dy * speed))
	c.Target = c.Target.Add(move)
	c.UpdatePosition()
}

// Reset returns to the position and target the camera was created or fitted with
func (c *Camera) Reset() {
	c.Position = c.home.position
	c.Target = c.home.target
	c.syncOrbit()
}

// FitToBounds aims at the box center from a distance that frames it, keeping
// the current viewing direction. The result becomes the new Reset position.
func (c *Camera) FitToBounds(bbox geometry.BoundingBox) {
	if bbox.IsEmpty() {
		return
	}
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	c.Target = bbox.Center()
	c.Distance = maxDim * 2.0
	if c.Distance == 0 {
		c.Distance = 1
	}
	c.UpdatePosition()
	c.home.position = c.Position
	c.home.target = c.Target
}

// basis returns the camera's forward, right and up unit vectors
func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up)
	if right.Length() < 1e-9 {
		// Looking along Up: take right from the orbit azimuth instead
		right = geometry.NewVector3(math.Cos(c.RotationY), 0, -math.Sin(c.RotationY))
	}
	right = right.Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a world point to screen pixels. depth is the distance
// along the view direction; points with depth <= Near are behind the lens.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	cx := relative.Dot(right)
	cy := relative.Dot(up)
	depth = relative.Dot(forward)

	z := math.Max(depth, 1e-6)
	aspect := width / height
	fovScale := math.Tan(c.fovRadians() / 2)

	x = (cx/(z*fovScale*aspect))*(width/2) + width/2
	y = (-cy/(z*fovScale))*(height/2) + height/2
	return x, y, depth
}

// ScreenToNDC maps pixel coordinates to normalized device coordinates in
// [-1, 1]. Screen y grows downwards, NDC y grows upwards.
func ScreenToNDC(px, py, width, height float64) (x, y float64) {
	x = (px/width)*2 - 1
	y = -(py/height)*2 + 1
	return x, y
}

// RayFromNDC builds the pick ray through an NDC point
func (c *Camera) RayFromNDC(ndcX, ndcY, aspect float64) geometry.Ray {
	forward, right, up := c.basis()
	fovScale := math.Tan(c.fovRadians() / 2)

	dir := forward.
		Add(right.Mul(ndcX * fovScale * aspect)).
		Add(up.Mul(ndcY * fovScale))
	return geometry.NewRay(c.Position, dir)
}

// Unproject converts 2D screen coordinates to a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX, ndcY := ScreenToNDC(screenX, screenY, width, height)
	return c.RayFromNDC(ndcX, ndcY, width/height)
}

func (c *Camera) fovRadians() float64 {
	return c.FOV * math.Pi / 180
}
