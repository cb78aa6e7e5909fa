// Package skeleton holds the figure's topology table and builds a
// figure.Figure from it.
package skeleton

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"robot-viewer/internal/figure"
)

// Bone is one row of a skeleton table.
// Parent indexes an earlier row; -1 marks the root.
type Bone struct {
	Name   string     `yaml:"name"`
	Parent int        `yaml:"parent"`
	Scale  [3]float32 `yaml:"scale"`
	Joint  [3]float32 `yaml:"joint"`
	Mesh   [3]float32 `yaml:"mesh"`
}

// Table enumerates every segment of a figure.
// Order lists bone names in selection order; empty means row order.
type Table struct {
	Bones []Bone   `yaml:"bones"`
	Order []string `yaml:"order,omitempty"`
}

var ErrEmpty = errors.New("skeleton: empty table")

// Robot is the default humanoid: torso, head, two-part arms and legs.
var Robot = Table{Bones: []Bone{
	{"torso", -1, [3]float32{2.2, 3, 1.6}, [3]float32{0, -2.5, 0}, [3]float32{0, 0, 0}},
	{"head", 0, [3]float32{1.2, 1.2, 1.2}, [3]float32{0, 1.5, 0}, [3]float32{0, 0.5, 0}},
	{"upper_right_arm", 0, [3]float32{2.5, 0.9, 1.0}, [3]float32{-1.15, 1, 0}, [3]float32{-1.2, 0, 0}},
	{"lower_right_arm", 2, [3]float32{2.0, 0.6, 0.7}, [3]float32{-2.2, 0, 0}, [3]float32{-1, 0, 0}},
	{"upper_left_arm", 0, [3]float32{2.5, 0.9, 1.0}, [3]float32{1.15, 1, 0}, [3]float32{1.2, 0, 0}},
	{"lower_left_arm", 4, [3]float32{2, 0.6, 0.7}, [3]float32{2.2, 0, 0}, [3]float32{1, 0, 0}},
	{"upper_right_leg", 0, [3]float32{0.9, 2.7, 1}, [3]float32{-0.5, -1.3, 0}, [3]float32{0, -1.2, 0}},
	{"lower_right_leg", 6, [3]float32{0.75, 2, 0.7}, [3]float32{0, -2.3, 0}, [3]float32{0, -1.2, 0}},
	{"upper_left_leg", 0, [3]float32{0.9, 2.7, 1}, [3]float32{0.6, -1.3, 0}, [3]float32{0, -1.2, 0}},
	{"lower_left_leg", 8, [3]float32{0.75, 2, 0.7}, [3]float32{0, -2.3, 0}, [3]float32{0, -1.2, 0}},
}}

// Build creates the figure described by t, links its selection order
// and validates both relations. The returned order starts at the head
// of the selection order.
func Build(t Table) (*figure.Figure, []figure.Node, error) {
	if len(t.Bones) == 0 {
		return nil, nil, ErrEmpty
	}

	fig := figure.New()
	nodes := make([]figure.Node, len(t.Bones))
	for i, b := range t.Bones {
		parent := figure.Nil
		if b.Parent >= 0 {
			if b.Parent >= i {
				return nil, nil, fmt.Errorf("skeleton: bone %d (%s): parent %d must precede it", i, b.Name, b.Parent)
			}
			parent = nodes[b.Parent]
		}
		n, err := fig.Add(b.Name, mgl32.Vec3(b.Scale), mgl32.Vec3(b.Joint), mgl32.Vec3(b.Mesh), parent)
		if err != nil {
			return nil, nil, fmt.Errorf("skeleton: bone %d (%s): %w", i, b.Name, err)
		}
		nodes[i] = n
	}
	if err := fig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("skeleton: %w", err)
	}

	order := nodes
	if len(t.Order) > 0 {
		order = make([]figure.Node, len(t.Order))
		for i, name := range t.Order {
			n, ok := fig.Lookup(name)
			if !ok {
				return nil, nil, fmt.Errorf("skeleton: order: unknown bone %q", name)
			}
			order[i] = n
		}
	}
	if err := fig.Link(order); err != nil {
		return nil, nil, fmt.Errorf("skeleton: %w", err)
	}
	return fig, order, nil
}

// Load reads a YAML skeleton table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("skeleton: read %s: %w", path, err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("skeleton: parse %s: %w", path, err)
	}
	if len(t.Bones) == 0 {
		return Table{}, fmt.Errorf("skeleton: %s: %w", path, ErrEmpty)
	}
	return t, nil
}

// Open loads the table at path, or returns Robot when path is empty.
func Open(path string) (Table, error) {
	if path == "" {
		return Robot, nil
	}
	return Load(path)
}
