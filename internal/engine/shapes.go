package engine

import (
	"log"
	"math"

	"github.com/sondrele/raytracer/internal/scene"
)

// hitEpsilon is the minimum accepted intersection distance and the
// offset applied to secondary-ray origins. Small relative to scene
// units; keeps shadow and reflection rays from re-hitting their own
// surface ("shadow acne").
const hitEpsilon = 1e-4

// refractOffset pushes refracted-ray origins through the surface so the
// transmitted ray starts inside the new medium.
const refractOffset = 1e-2

type hitRecord struct {
	t      float64
	p      vec3
	normal vec3 // unit length, oriented against the incoming ray
	dir    vec3 // incoming ray direction
	inside bool // incoming ray traveled inside a medium
	mat    material
}

func (h *hitRecord) setFaceNormal(r ray, outward vec3) {
	if r.dir.dot(outward) < 0 {
		h.normal = outward
	} else {
		h.normal = outward.invert()
	}
}

type shape interface {
	// intersect reports the smallest non-negative distance along r at
	// which the shape is struck, if any.
	intersect(r ray) (float64, bool)
	normalAt(p vec3) vec3
	material() material
}

// Sphere primitive.
type sphere struct {
	center vec3
	radius float64
	mat    material
}

func (s sphere) intersect(r ray) (float64, bool) {
	oc := r.orig.sub(s.center)

	a := r.dir.dot(r.dir)
	b := 2.0 * r.dir.dot(oc)
	c := oc.dot(oc) - s.radius*s.radius

	disc := b*b - 4.0*a*c
	if disc < 0 {
		return 0, false
	}

	// Stable quadratic: pick the root computation that avoids
	// catastrophic cancellation.
	sqrtD := math.Sqrt(disc)
	var q float64
	if b < 0 {
		q = (-b - sqrtD) / 2.0
	} else {
		q = (-b + sqrtD) / 2.0
	}

	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

func (s sphere) normalAt(p vec3) vec3 {
	return p.sub(s.center).unit()
}

func (s sphere) material() material { return s.mat }

// Infinite plane defined by a point and a normal.
type plane struct {
	point  vec3
	normal vec3
	mat    material
}

func (p plane) intersect(r ray) (float64, bool) {
	denom := p.normal.dot(r.dir)
	if math.Abs(denom) < 1e-6 {
		return 0, false
	}
	t := p.point.sub(r.orig).dot(p.normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

func (p plane) normalAt(vec3) vec3 { return p.normal }

func (p plane) material() material { return p.mat }

// Triangle defined by three vertices, wound counter-clockwise.
type triangle struct {
	v0, v1, v2 vec3
	mat        material
}

// intersect implements the Möller–Trumbore test.
func (tr triangle) intersect(r ray) (float64, bool) {
	const eps = 1e-7

	e1 := tr.v1.sub(tr.v0)
	e2 := tr.v2.sub(tr.v0)

	h := r.dir.cross(e2)
	a := e1.dot(h)
	if a > -eps && a < eps {
		return 0, false // ray parallel to triangle plane
	}

	f := 1.0 / a
	s := r.orig.sub(tr.v0)
	u := f * s.dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.cross(e1)
	vv := f * r.dir.dot(q)
	if vv < 0 || u+vv > 1 {
		return 0, false
	}

	t := f * e2.dot(q)
	if t <= eps {
		return 0, false // line intersection behind the origin
	}
	return t, true
}

func (tr triangle) normalAt(vec3) vec3 {
	return tr.v1.sub(tr.v0).cross(tr.v2.sub(tr.v0)).unit()
}

func (tr triangle) material() material { return tr.mat }

// world is the immutable render-time form of a scene: shapes and lights
// converted out of their DTOs, shared read-only by all workers.
type world struct {
	shapes     []shape
	lights     []light
	background vec3
}

func (w *world) intersect(r ray) (hitRecord, bool) {
	var rec hitRecord
	closest := math.MaxFloat64
	hit := false

	for _, s := range w.shapes {
		t, ok := s.intersect(r)
		if !ok || t < hitEpsilon || t >= closest {
			continue
		}
		closest = t
		rec.t = t
		rec.p = r.at(t)
		rec.dir = r.dir
		rec.inside = r.inside
		rec.mat = s.material()
		rec.setFaceNormal(r, s.normalAt(rec.p))
		hit = true
	}
	return rec, hit
}

// buildWorld converts the scene description into render-time shapes and
// lights. Degenerate geometry is skipped here so shading math never
// sees a zero-length normal or direction.
func buildWorld(sc *scene.Scene) *world {
	materials := make(map[string]material)
	for _, m := range sc.Materials {
		materials[m.ID] = convertMaterial(m)
	}

	w := &world{
		background: v(sc.Background.R, sc.Background.G, sc.Background.B),
	}

	for _, o := range sc.Objects {
		mat := materials[o.MaterialID]

		switch o.Type {
		case scene.ObjectSphere:
			if o.Radius <= 0 {
				log.Printf("scene: skipping sphere %q with radius %g", o.ID, o.Radius)
				continue
			}
			w.shapes = append(w.shapes, sphere{
				center: v(o.Position.X, o.Position.Y, o.Position.Z),
				radius: o.Radius,
				mat:    mat,
			})
		case scene.ObjectPlane:
			n := v(o.Normal.X, o.Normal.Y, o.Normal.Z)
			if n.length() == 0 {
				log.Printf("scene: skipping plane %q with zero normal", o.ID)
				continue
			}
			w.shapes = append(w.shapes, plane{
				point:  v(o.Position.X, o.Position.Y, o.Position.Z),
				normal: n.unit(),
				mat:    mat,
			})
		case scene.ObjectTriangle:
			v0 := v(o.Vertices[0].X, o.Vertices[0].Y, o.Vertices[0].Z)
			v1 := v(o.Vertices[1].X, o.Vertices[1].Y, o.Vertices[1].Z)
			v2 := v(o.Vertices[2].X, o.Vertices[2].Y, o.Vertices[2].Z)
			if v1.sub(v0).cross(v2.sub(v0)).length() == 0 {
				log.Printf("scene: skipping degenerate triangle %q", o.ID)
				continue
			}
			w.shapes = append(w.shapes, triangle{v0: v0, v1: v1, v2: v2, mat: mat})
		default:
			log.Printf("scene: skipping object %q with unknown type %q", o.ID, o.Type)
		}
	}

	for _, l := range sc.Lights {
		lt, ok := convertLight(l)
		if !ok {
			log.Printf("scene: skipping malformed light %q", l.ID)
			continue
		}
		w.lights = append(w.lights, lt)
	}

	return w
}
