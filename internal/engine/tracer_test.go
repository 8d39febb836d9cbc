package engine

import (
	"testing"
)

func opaque(diffuse, ambient vec3) material {
	return material{diffuse: diffuse, ambient: ambient, ior: defaultIOR}
}

func mirror() material {
	return material{specular: v(1, 1, 1), ior: defaultIOR}
}

func traceOnce(w *world, r ray, depth int) vec3 {
	return w.trace(r, depth, newRandSource(1), 1)
}

func TestTraceMissReturnsBackground(t *testing.T) {
	w := &world{
		shapes:     []shape{sphere{center: v(0, 0, -5), radius: 1}},
		background: v(0.1, 0.2, 0.3),
	}

	col := traceOnce(w, ray{orig: v(0, 0, 0), dir: v(0, 1, 0)}, 10)
	if !vecEqual(col, v(0.1, 0.2, 0.3)) {
		t.Errorf("expected exact background color, got %+v", col)
	}
}

func TestTraceWithoutLightsFallsBackToAmbient(t *testing.T) {
	w := &world{shapes: []shape{
		sphere{center: v(0, 0, -5), radius: 1, mat: opaque(v(1, 1, 1), v(0.3, 0.2, 0.1))},
	}}

	col := traceOnce(w, ray{orig: v(0, 0, 0), dir: v(0, 0, -1)}, 10)
	if !vecEqual(col, v(0.3, 0.2, 0.1)) {
		t.Errorf("expected ambient-only shading, got %+v", col)
	}
}

func TestTraceDiffuseLitSphere(t *testing.T) {
	w := &world{
		shapes: []shape{sphere{center: v(0, 0, 0), radius: 1, mat: opaque(v(1, 1, 1), v(0, 0, 0))}},
		lights: []light{directionalLight{dir: v(0, -1, 0), color: v(1, 1, 1)}},
	}

	// Straight down onto the pole: n·l = 1, full diffuse.
	col := traceOnce(w, ray{orig: v(0, 5, 0), dir: v(0, -1, 0)}, 10)
	if !almostEqual(col.x, 1) || !almostEqual(col.y, 1) || !almostEqual(col.z, 1) {
		t.Errorf("expected full diffuse at the pole, got %+v", col)
	}
}

func TestTraceOccludedLightContributesNothing(t *testing.T) {
	w := &world{
		shapes: []shape{
			plane{point: v(0, 0, 0), normal: v(0, 1, 0), mat: opaque(v(1, 1, 1), v(0, 0, 0))},
			sphere{center: v(0, 5, 0), radius: 1, mat: opaque(v(1, 1, 1), v(0, 0, 0))},
		},
		lights: []light{pointLight{pos: v(0, 10, 0), color: v(1, 1, 1)}},
	}

	// The shadow ray from the plane hit at the origin toward the light
	// strikes the opaque sphere in between.
	col := traceOnce(w, ray{orig: v(0, 2, 0), dir: v(0, -1, 0)}, 10)
	if !vecEqual(col, v(0, 0, 0)) {
		t.Errorf("expected fully shadowed point to be black, got %+v", col)
	}
}

func TestTraceOccluderBehindLightDoesNotShadow(t *testing.T) {
	w := &world{
		shapes: []shape{
			plane{point: v(0, 0, 0), normal: v(0, 1, 0), mat: opaque(v(1, 1, 1), v(0, 0, 0))},
			sphere{center: v(0, 5, 0), radius: 1, mat: opaque(v(1, 1, 1), v(0, 0, 0))},
		},
		// Light below the sphere: the sphere sits behind it.
		lights: []light{pointLight{pos: v(0, 3, 0), color: v(1, 1, 1)}},
	}

	col := traceOnce(w, ray{orig: v(0, 2, 0.5), dir: v(0, -1, 0)}, 10)
	if col.x <= 0 {
		t.Errorf("occluder behind the light must not shadow, got %+v", col)
	}
}

func TestTraceTransparentOccluderPassesScaledLight(t *testing.T) {
	base := []shape{plane{point: v(0, 0, 0), normal: v(0, 1, 0), mat: opaque(v(1, 1, 1), v(0, 0, 0))}}
	lights := []light{pointLight{pos: v(0, 10, 0), color: v(1, 1, 1)}}

	clear := &world{shapes: base, lights: lights}
	lit := traceOnce(clear, ray{orig: v(0, 2, 0), dir: v(0, -1, 0)}, 10)

	glassMat := opaque(v(1, 1, 1), v(0, 0, 0))
	glassMat.transparency = 0.5
	blocked := &world{
		shapes: append([]shape{sphere{center: v(0, 5, 0), radius: 1, mat: glassMat}}, base...),
		lights: lights,
	}
	dimmed := traceOnce(blocked, ray{orig: v(0, 2, 0), dir: v(0, -1, 0)}, 10)

	if !(dimmed.x > 0) {
		t.Fatalf("transparent occluder should pass some light, got %+v", dimmed)
	}
	if !(dimmed.x < lit.x) {
		t.Errorf("transparent occluder should dim the light: %v >= %v", dimmed.x, lit.x)
	}
}

func TestTraceTerminatesBetweenFacingMirrors(t *testing.T) {
	w := &world{
		shapes: []shape{
			plane{point: v(0, 0, 0), normal: v(0, 0, 1), mat: mirror()},
			plane{point: v(0, 0, 10), normal: v(0, 0, -1), mat: mirror()},
		},
		background: v(0.5, 0.5, 0.5),
	}

	// Fully reflective chamber: only the explicit depth counter stops
	// the recursion.
	col := traceOnce(w, ray{orig: v(0, 0, 5), dir: v(0, 0, -1)}, 50)
	for _, ch := range []float64{col.x, col.y, col.z} {
		if ch < 0 || ch > 1 {
			t.Errorf("channel out of range: %+v", col)
		}
	}
}

func TestTraceClampsAccumulatedLight(t *testing.T) {
	w := &world{
		shapes: []shape{sphere{center: v(0, 0, 0), radius: 1, mat: opaque(v(1, 1, 1), v(0, 0, 0))}},
		lights: []light{
			directionalLight{dir: v(0, -1, 0), color: v(100, 100, 100)},
			directionalLight{dir: v(0, -1, 0.01), color: v(100, 100, 100)},
		},
	}

	col := traceOnce(w, ray{orig: v(0, 5, 0), dir: v(0, -1, 0)}, 10)
	for _, ch := range []float64{col.x, col.y, col.z} {
		if ch < 0 || ch > 1 {
			t.Errorf("channel out of range after clamping: %+v", col)
		}
	}
}

func TestTraceReflectionShowsSurroundings(t *testing.T) {
	w := &world{
		shapes: []shape{
			// Mirror plane facing up, red sphere above the camera.
			plane{point: v(0, 0, 0), normal: v(0, 1, 0), mat: mirror()},
			sphere{center: v(0, 4, 0), radius: 1, mat: opaque(v(1, 0, 0), v(1, 0, 0))},
		},
	}

	// Straight down into the mirror: the bounce flies back up into the
	// sphere, so its ambient red arrives weighted by the specular color.
	col := traceOnce(w, ray{orig: v(0, 2, 0), dir: v(0, -1, 0)}, 10)
	if !(col.x > 0) {
		t.Errorf("expected reflected red component, got %+v", col)
	}

	// With the budget spent, the bounce is skipped.
	flat := traceOnce(w, ray{orig: v(0, 2, 0), dir: v(0, -1, 0)}, 0)
	if !vecEqual(flat, v(0, 0, 0)) {
		t.Errorf("expected no reflection at depth 0, got %+v", flat)
	}
}

func TestRefractionRayStraightThroughIsUnbent(t *testing.T) {
	rec := hitRecord{
		p:      v(0, 0, -4),
		normal: v(0, 0, 1),
		dir:    v(0, 0, -1),
	}

	r := refractionRay(rec, material{transparency: 1, ior: defaultIOR})
	if !vecEqual(r.dir, v(0, 0, -1)) {
		t.Errorf("normal incidence must pass straight through, got %+v", r.dir)
	}
	if !r.inside {
		t.Error("refracted ray should be flagged as inside the medium")
	}
}

func TestRefractionRayTotalInternalReflection(t *testing.T) {
	// Leaving a dense medium at a grazing angle: sin > 1/ratio forces
	// total internal reflection, which falls back to the mirror ray.
	rec := hitRecord{
		p:      v(0, 0, 0),
		normal: v(0, 1, 0),
		dir:    v(0.9396926, -0.3420201, 0).unit(), // ~70° off the normal
		inside: true,
	}

	r := refractionRay(rec, material{transparency: 1, ior: defaultIOR})
	want := reflectVec(rec.dir, rec.normal)
	if !vecEqual(r.dir, want) {
		t.Errorf("expected reflected fallback %+v, got %+v", want, r.dir)
	}
	if !r.inside {
		t.Error("reflected fallback must stay inside the medium")
	}
}
