package engine

import "math"

type vec3 struct {
	x, y, z float64
}

func v(x, y, z float64) vec3 { return vec3{x, y, z} }

func (a vec3) add(b vec3) vec3    { return vec3{x: a.x + b.x, y: a.y + b.y, z: a.z + b.z} }
func (a vec3) sub(b vec3) vec3    { return vec3{x: a.x - b.x, y: a.y - b.y, z: a.z - b.z} }
func (a vec3) mul(t float64) vec3 { return vec3{x: a.x * t, y: a.y * t, z: a.z * t} }

// mulVec is the component-wise (Hadamard) product, used for color math.
func (a vec3) mulVec(b vec3) vec3 { return vec3{x: a.x * b.x, y: a.y * b.y, z: a.z * b.z} }

func (a vec3) invert() vec3 { return vec3{x: -a.x, y: -a.y, z: -a.z} }

func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3) cross(b vec3) vec3 {
	return v(
		a.y*b.z-a.z*b.y,
		a.z*b.x-a.x*b.z,
		a.x*b.y-a.y*b.x,
	)
}

func (a vec3) length() float64 { return math.Sqrt(a.dot(a)) }

func (a vec3) distance(b vec3) float64 { return a.sub(b).length() }

// unit returns the normalized vector. A zero vector is returned
// unchanged; geometry that would produce one is rejected at world
// build, so callers never see a non-unit result.
func (a vec3) unit() vec3 {
	l := a.length()
	if l == 0 {
		return a
	}
	return vec3{x: a.x / l, y: a.y / l, z: a.z / l}
}

// reflectVec mirrors v about the normal n. n must be unit length.
func reflectVec(v, n vec3) vec3 {
	d := 2 * v.dot(n)
	return vec3{
		x: v.x - n.x*d,
		y: v.y - n.y*d,
		z: v.z - n.z*d,
	}
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}

// clampColor clamps every channel to [0,1].
func clampColor(c vec3) vec3 {
	return vec3{
		x: clamp(c.x, 0, 1),
		y: clamp(c.y, 0, 1),
		z: clamp(c.z, 0, 1),
	}
}

type ray struct {
	orig vec3
	dir  vec3

	// inside tracks whether the ray currently travels within a
	// refractive medium, flipping the index ratio at each boundary.
	inside bool
}

func (r ray) at(t float64) vec3 {
	return r.orig.add(r.dir.mul(t))
}
