package config

import (
	"os"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scene lists the bodies and static constraints to spawn in a store
type Scene struct {
	Config      *Config            `yaml:"config,omitempty"`
	Bodies      []BodyConfig       `yaml:"bodies"`
	Constraints []ConstraintConfig `yaml:"constraints"`
}

// BodyConfig describes one rigid body. Kind is particle, sphere or box.
type BodyConfig struct {
	Name        string          `yaml:"name,omitempty"`
	Kind        string          `yaml:"kind"`
	Position    mgl64.Vec3      `yaml:"position"`
	Orientation mgl64.Vec3      `yaml:"orientation,omitempty"` // Euler radians
	Velocity    mgl64.Vec3      `yaml:"velocity,omitempty"`
	Radius      float64         `yaml:"radius,omitempty"`
	HalfExtents mgl64.Vec3      `yaml:"half_extents,omitempty"`
	Material    *MaterialConfig `yaml:"material,omitempty"`
}

type MaterialConfig struct {
	Mass           float64 `yaml:"mass"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
}

// UnmarshalYAML fills the keys missing from the document with actor.DefaultMaterial()
func (m *MaterialConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain MaterialConfig
	desc := plain(materialConfig(actor.DefaultMaterial()))
	if err := node.Decode(&desc); err != nil {
		return err
	}
	*m = MaterialConfig(desc)

	return nil
}

func materialConfig(m actor.Material) MaterialConfig {
	return MaterialConfig{
		Mass:           m.Mass,
		Restitution:    m.Restitution,
		Friction:       m.Friction,
		LinearDamping:  m.LinearDamping,
		AngularDamping: m.AngularDamping,
	}
}

func (m MaterialConfig) material() actor.Material {
	return actor.Material{
		Mass:           m.Mass,
		Restitution:    m.Restitution,
		Friction:       m.Friction,
		LinearDamping:  m.LinearDamping,
		AngularDamping: m.AngularDamping,
	}
}

// ConstraintConfig describes a static box collider
type ConstraintConfig struct {
	Name        string     `yaml:"name,omitempty"`
	Position    mgl64.Vec3 `yaml:"position"`
	Orientation mgl64.Vec3 `yaml:"orientation,omitempty"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Restitution float64    `yaml:"restitution"`
	Friction    float64    `yaml:"friction"`
}

// UnmarshalYAML defaults both coefficients to 1
func (c *ConstraintConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain ConstraintConfig
	desc := plain{Restitution: 1, Friction: 1}
	if err := node.Decode(&desc); err != nil {
		return err
	}
	*c = ConstraintConfig(desc)

	return nil
}

// LoadScene reads a YAML scene file
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrapf(err, "read scene %s", path)
	}

	return ParseScene(data)
}

func ParseScene(data []byte) (Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, errors.Wrap(err, "decode scene")
	}

	if scene.Config != nil {
		if err := scene.Config.Validate(); err != nil {
			return Scene{}, err
		}
	}

	return scene, nil
}

// Build adds every body then every constraint of the scene to the store, and returns the
// ids in the same order. Nothing is added when a description is invalid.
func (s Scene) Build(store *entity.Store) ([]uuid.UUID, error) {
	bodies := make([]*actor.RigidBody, 0, len(s.Bodies))
	for i, desc := range s.Bodies {
		body, err := desc.build()
		if err != nil {
			return nil, errors.Wrapf(err, "body %d %q", i, desc.Name)
		}
		bodies = append(bodies, body)
	}

	constraints := make([]*entity.StaticConstraint, 0, len(s.Constraints))
	for i, desc := range s.Constraints {
		if !positive(desc.HalfExtents) {
			return nil, errors.Wrapf(ErrInvalidConfig, "constraint %d %q: half_extents %v must be positive", i, desc.Name, desc.HalfExtents)
		}

		c := entity.NewStaticConstraint(desc.Position, desc.HalfExtents, desc.Orientation)
		c.Restitution = desc.Restitution
		c.Friction = desc.Friction
		constraints = append(constraints, c)
	}

	ids := make([]uuid.UUID, 0, len(bodies)+len(constraints))
	for _, body := range bodies {
		ids = append(ids, store.AddBody(body))
	}
	for _, c := range constraints {
		ids = append(ids, store.AddConstraint(c))
	}

	return ids, nil
}

func (b BodyConfig) build() (*actor.RigidBody, error) {
	material := actor.DefaultMaterial()
	if b.Material != nil {
		material = b.Material.material()
	}
	if material.Mass < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative mass %v", material.Mass)
	}

	transform := actor.NewTransform()
	transform.Position = b.Position
	transform.Rotation = actor.EulerToQuat(b.Orientation)

	var body *actor.RigidBody
	switch b.Kind {
	case "particle":
		body = actor.NewParticle(b.Position, material)
	case "sphere":
		if !(b.Radius > 0) {
			return nil, errors.Wrapf(ErrInvalidConfig, "radius %v must be positive", b.Radius)
		}
		body = actor.NewSphere(transform, b.Radius, material)
	case "box":
		if !positive(b.HalfExtents) {
			return nil, errors.Wrapf(ErrInvalidConfig, "half_extents %v must be positive", b.HalfExtents)
		}
		body = actor.NewBox(transform, b.HalfExtents, material)
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown kind %q", b.Kind)
	}
	body.Velocity = b.Velocity

	return body, nil
}

func positive(v mgl64.Vec3) bool {
	return v.X() > 0 && v.Y() > 0 && v.Z() > 0
}
