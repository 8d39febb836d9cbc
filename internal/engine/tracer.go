package engine

import "math"

// trace resolves the color seen along r. depth is the remaining bounce
// budget: it strictly decreases on every recursive call, so a primary
// ray spawns at most depth secondary rays per branch. Rays that strike
// nothing resolve to the scene background.
func (w *world) trace(r ray, depth int, rng *randSource, areaSamples int) vec3 {
	rec, ok := w.intersect(r)
	if !ok {
		return w.background
	}

	m := rec.mat
	kt := m.transparency

	// Ambient and emissive terms carry no light dependency. Ambient is
	// scaled down by transparency: what passes through is not lit here.
	col := m.ambient.mulVec(m.diffuse).mul(1 - kt).add(m.emissive)

	for _, l := range w.lights {
		fatt := l.attenuation(rec.p)
		if fatt <= 0 {
			continue
		}
		col = col.add(w.directLight(l, rec, fatt, depth, rng, areaSamples))
	}

	if depth > 0 && m.isReflective() {
		refl := ray{
			orig:   rec.p.add(rec.normal.mul(hitEpsilon)),
			dir:    reflectVec(rec.dir, rec.normal),
			inside: rec.inside,
		}
		col = col.add(m.specular.mulVec(w.trace(refl, depth-1, rng, areaSamples)))
	}

	if depth > 0 && m.isRefractive() {
		refr := refractionRay(rec, m)
		col = col.add(w.trace(refr, depth-1, rng, areaSamples).mul(kt))
	}

	return clampColor(col)
}

// directLight accumulates the shadowed diffuse and Phong specular
// contribution of one light, averaged over its sample count.
func (w *world) directLight(l light, rec hitRecord, fatt float64, depth int, rng *randSource, areaSamples int) vec3 {
	m := rec.mat
	kt := m.transparency
	q := m.shininess * 128
	view := rec.dir.invert()

	n := l.sampleCount(areaSamples)
	invN := 1.0 / float64(n)
	shadowOrig := rec.p.add(rec.normal.mul(hitEpsilon))

	var sum vec3
	for i := 0; i < n; i++ {
		dir, dist := l.sample(rec.p, rng)

		// depth+1: direct shadow tests run even with the bounce budget
		// spent; only chains of transparent occluders are truncated.
		shade := w.transmission(shadowOrig, dir, dist, depth+1)
		if shade == 0 {
			continue
		}

		diffuse := m.diffuse.mul((1 - kt) * math.Max(0, rec.normal.dot(dir)))

		// Phong: reflect the light direction about the normal and
		// compare with the view direction.
		rj := rec.normal.mul(2 * rec.normal.dot(dir)).sub(dir)
		specular := m.specular.mul(math.Pow(math.Max(0, rj.dot(view)), q))

		direct := l.intensity().mul(shade * fatt)
		sum = sum.add(direct.mulVec(diffuse.add(specular)).mul(invN))
	}
	return sum
}

// transmission reports how much light reaches orig from the direction
// dir, with the light source dist away: 1 for a clear path, 0 when
// fully occluded, and a fraction when the occluders are transparent.
// depth bounds the chain of transparent occluders.
func (w *world) transmission(orig, dir vec3, dist float64, depth int) float64 {
	if depth <= 0 {
		return 0
	}

	rec, ok := w.intersect(ray{orig: orig, dir: dir})
	if !ok {
		return 1 // direct light
	}
	if rec.t > dist {
		return 1 // struck something behind the light
	}
	if rec.mat.transparency == 0 {
		return 0
	}

	// Transparent occluder: continue through it toward the light.
	next := orig.add(dir.mul(rec.t + hitEpsilon))
	return rec.mat.transparency * w.transmission(next, dir, dist-rec.t, depth-1)
}

// refractionRay bends the incoming ray at the hit point by Snell's law.
// Total internal reflection falls back to the mirror ray.
func refractionRay(rec hitRecord, m material) ray {
	ratio := 1.0 / m.ior
	if rec.inside {
		ratio = m.ior
	}

	c := rec.dir.dot(rec.normal) // <= 0, normal faces the incoming ray
	cosPhi2 := 1 - ratio*ratio*(1-c*c)
	if cosPhi2 < 0 {
		return ray{
			orig:   rec.p.add(rec.normal.mul(hitEpsilon)),
			dir:    reflectVec(rec.dir, rec.normal),
			inside: rec.inside,
		}
	}

	cosPhi := math.Sqrt(cosPhi2)
	dir := rec.dir.sub(rec.normal.mul(c)).mul(ratio).sub(rec.normal.mul(cosPhi))
	return ray{
		orig:   rec.p.sub(rec.normal.mul(refractOffset)),
		dir:    dir.unit(),
		inside: !rec.inside,
	}
}
