package engine

import (
	"math"

	"github.com/sondrele/raytracer/internal/scene"
)

// viewPlaneScale places the virtual image plane far from the camera so
// pixel offsets stay well conditioned relative to the view center.
const viewPlaneScale = 1000.0

type camera struct {
	pos           vec3
	center        vec3 // point on the view axis, viewPlaneScale away
	parallelUp    vec3
	parallelRight vec3
	verticalFOV   float64 // radians
	horizontalFOV float64
	width, height int
}

// newCamera derives the orthonormal screen basis from the view
// direction and the up hint, and scales the FOV to the image aspect.
func newCamera(c scene.Camera, width, height int) camera {
	viewDir := v(c.ViewDir.X, c.ViewDir.Y, c.ViewDir.Z).unit()
	orthoUp := v(c.OrthoUp.X, c.OrthoUp.Y, c.OrthoUp.Z)

	right := viewDir.cross(orthoUp).unit()
	up := right.cross(viewDir).unit()

	vfov := c.FOV * math.Pi / 180
	hfov := vfov * (float64(width) / float64(height))

	pos := v(c.Position.X, c.Position.Y, c.Position.Z)

	return camera{
		pos:           pos,
		center:        pos.add(viewDir.mul(viewPlaneScale)),
		parallelUp:    up,
		parallelRight: right,
		verticalFOV:   vfov,
		horizontalFOV: hfov,
		width:         width,
		height:        height,
	}
}

func (c camera) verticalPlane() vec3 {
	return c.parallelUp.mul(math.Tan(c.verticalFOV/2) * viewPlaneScale)
}

func (c camera) horizontalPlane() vec3 {
	return c.parallelRight.mul(math.Tan(c.horizontalFOV/2) * viewPlaneScale)
}

// rayThrough maps pixel coordinates to a world-space ray through the
// image plane. The mapping is pure: equal inputs yield equal rays.
func (c camera) rayThrough(x, y float64) ray {
	u := x / float64(c.width)
	w := y / float64(c.height)
	dx := c.horizontalPlane().mul(2*u - 1)
	dy := c.verticalPlane().mul(2*w - 1)
	dir := c.center.add(dx).add(dy).sub(c.pos).unit()
	return ray{orig: c.pos, dir: dir}
}
