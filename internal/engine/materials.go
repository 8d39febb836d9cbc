package engine

import "github.com/sondrele/raytracer/internal/scene"

// material is the render-time surface description. Values are read-only
// once the world is built; multiple shapes may carry the same material.
type material struct {
	diffuse      vec3
	ambient      vec3
	specular     vec3
	emissive     vec3
	shininess    float64 // Phong exponent scale, [0,1]
	transparency float64 // [0,1], > 0 enables refraction
	ior          float64 // index of refraction
}

const defaultIOR = 1.5

func convertMaterial(m scene.Material) material {
	ior := m.IOR
	if ior == 0 {
		ior = defaultIOR
	}
	return material{
		diffuse:      v(m.Diffuse.R, m.Diffuse.G, m.Diffuse.B),
		ambient:      v(m.Ambient.R, m.Ambient.G, m.Ambient.B),
		specular:     v(m.Specular.R, m.Specular.G, m.Specular.B),
		emissive:     v(m.Emissive.R, m.Emissive.G, m.Emissive.B),
		shininess:    clamp(m.Shininess, 0, 1),
		transparency: clamp(m.Transparency, 0, 1),
		ior:          ior,
	}
}

func (m material) isReflective() bool { return m.specular.length() > 0 }

func (m material) isRefractive() bool { return m.transparency > 0 }
