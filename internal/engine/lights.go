package engine

import (
	"math"

	"github.com/sondrele/raytracer/internal/scene"
)

type light interface {
	intensity() vec3

	// sample returns a unit direction from p toward the light and the
	// distance to the sampled point. Directional lights report an
	// infinite distance: any occluder blocks them.
	sample(p vec3, rng *randSource) (dir vec3, dist float64)

	// sampleCount reports how many shadow/shading samples the light
	// needs; only area lights use more than one.
	sampleCount(areaSamples int) int

	// attenuation is the distance falloff factor at p.
	attenuation(p vec3) float64
}

type pointLight struct {
	pos   vec3
	color vec3
}

func (l pointLight) intensity() vec3 { return l.color }

func (l pointLight) sample(p vec3, _ *randSource) (vec3, float64) {
	d := l.pos.sub(p)
	return d.unit(), d.length()
}

func (l pointLight) sampleCount(int) int { return 1 }

func (l pointLight) attenuation(p vec3) float64 {
	return distanceFalloff(p.distance(l.pos))
}

type directionalLight struct {
	dir   vec3 // unit, direction the light travels
	color vec3
}

func (l directionalLight) intensity() vec3 { return l.color }

func (l directionalLight) sample(vec3, *randSource) (vec3, float64) {
	return l.dir.invert(), math.Inf(1)
}

func (l directionalLight) sampleCount(int) int { return 1 }

func (l directionalLight) attenuation(vec3) float64 { return 1 }

// areaLight is an axis-aligned rectangle emitter sampled stochastically
// for soft shadows.
type areaLight struct {
	min, max vec3
	color    vec3
}

func (l areaLight) intensity() vec3 { return l.color }

func (l areaLight) sample(p vec3, rng *randSource) (vec3, float64) {
	ext := l.max.sub(l.min)
	pt := vec3{
		x: l.min.x + rng.Float64()*ext.x,
		y: l.min.y + rng.Float64()*ext.y,
		z: l.min.z + rng.Float64()*ext.z,
	}
	d := pt.sub(p)
	return d.unit(), d.length()
}

func (l areaLight) sampleCount(areaSamples int) int {
	if areaSamples < 1 {
		return 1
	}
	return areaSamples
}

func (l areaLight) attenuation(p vec3) float64 {
	center := l.min.add(l.max).mul(0.5)
	return distanceFalloff(p.distance(center))
}

// distanceFalloff is the point/area light attenuation curve.
func distanceFalloff(d float64) float64 {
	return math.Min(1.0, 1.0/(0.25+0.1*d+0.01*d*d))
}

func convertLight(l scene.Light) (light, bool) {
	col := v(l.Color.R, l.Color.G, l.Color.B)

	switch l.Type {
	case scene.LightPoint:
		return pointLight{
			pos:   v(l.Position.X, l.Position.Y, l.Position.Z),
			color: col,
		}, true
	case scene.LightDirectional:
		dir := v(l.Direction.X, l.Direction.Y, l.Direction.Z)
		if dir.length() == 0 {
			return nil, false
		}
		return directionalLight{dir: dir.unit(), color: col}, true
	case scene.LightArea:
		return areaLight{
			min:   v(l.Min.X, l.Min.Y, l.Min.Z),
			max:   v(l.Max.X, l.Max.Y, l.Max.Z),
			color: col,
		}, true
	}
	return nil, false
}
