package scene

// Vec3 represents a simple 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color is an RGB color in linear space, channels in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Camera describes the viewpoint for the renderer. ViewDir and OrthoUp
// span the screen basis; FOV is the vertical field of view in degrees.
type Camera struct {
	Position Vec3    `json:"position"`
	ViewDir  Vec3    `json:"view_dir"`
	OrthoUp  Vec3    `json:"ortho_up"`
	FOV      float64 `json:"fov"`
}

// Material describes surface properties. A material may be shared by
// any number of objects via its ID.
type Material struct {
	ID string `json:"id"`

	Diffuse  Color `json:"diffuse"`
	Ambient  Color `json:"ambient"`
	Specular Color `json:"specular"` // non-zero makes the surface reflective
	Emissive Color `json:"emissive"`

	Shininess    float64 `json:"shininess"`    // Phong exponent scale, 0..1
	Transparency float64 `json:"transparency"` // 0..1, > 0 enables refraction
	IOR          float64 `json:"ior"`          // index of refraction, 0 = default
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

const (
	ObjectSphere   ObjectType = "sphere"
	ObjectPlane    ObjectType = "plane"
	ObjectTriangle ObjectType = "triangle"
)

// Object is a single primitive in the scene.
type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	Position Vec3    `json:"position"` // sphere center / plane point
	Radius   float64 `json:"radius"`   // sphere
	Normal   Vec3    `json:"normal"`   // plane
	Vertices [3]Vec3 `json:"vertices"` // triangle

	MaterialID string `json:"material_id"`
}

// LightType enumerates supported light kinds.
type LightType string

const (
	LightPoint       LightType = "point"
	LightDirectional LightType = "directional"
	LightArea        LightType = "area"
)

// Light is a single light source. Position is used by point lights,
// Direction by directional lights, Min/Max (an axis-aligned rectangle)
// by area lights.
type Light struct {
	ID   string    `json:"id"`
	Type LightType `json:"type"`

	Position  Vec3 `json:"position"`
	Direction Vec3 `json:"direction"`
	Min       Vec3 `json:"min"`
	Max       Vec3 `json:"max"`

	Color Color `json:"color"`
}

// RenderSettings defines quality/performance parameters.
type RenderSettings struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	MaxDepth    int   `json:"max_depth"`
	AreaSamples int   `json:"area_samples"`
	Seed        int64 `json:"seed"`
}

// Scene holds everything needed to render an image. It is constructed
// once and treated as read-only by the renderer. Empty object or light
// lists are valid: they produce background-only or unlit images.
type Scene struct {
	Name      string         `json:"name"`
	Camera    Camera         `json:"camera"`
	Objects   []Object       `json:"objects"`
	Materials []Material     `json:"materials"`
	Lights    []Light        `json:"lights"`
	Settings  RenderSettings `json:"settings"`

	Background Color `json:"background"`
}
