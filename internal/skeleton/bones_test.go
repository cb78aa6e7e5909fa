package skeleton

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robot-viewer/internal/figure"
)

func TestBuildRobot(t *testing.T) {
	fig, order, err := Build(Robot)
	require.NoError(t, err)

	assert.Equal(t, len(Robot.Bones), fig.Len())
	assert.Len(t, order, len(Robot.Bones))
	assert.Equal(t, order, fig.Order())
	assert.Equal(t, order[0], fig.Root())
	assert.Equal(t, figure.Nil, fig.Prev(order[0]))
	assert.Equal(t, figure.Nil, fig.Next(order[len(order)-1]))

	torso := fig.Root()
	assert.Equal(t, "torso", fig.Name(torso))
	assert.Len(t, fig.Children(torso), 5)
	for i, b := range Robot.Bones {
		n := order[i]
		assert.Equal(t, b.Name, fig.Name(n))
		assert.Equal(t, mgl32.Vec3(b.Scale), fig.Scale(n))
		if b.Parent >= 0 {
			assert.Equal(t, order[b.Parent], fig.Parent(n), b.Name)
		}
	}

	lra, ok := fig.Lookup("lower_right_arm")
	require.True(t, ok)
	assert.Equal(t, "upper_right_arm", fig.Name(fig.Parent(lra)))
	assert.Empty(t, fig.Children(lra))
}

func TestBuildErrors(t *testing.T) {
	_, _, err := Build(Table{})
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, err = Build(Table{Bones: []Bone{{Name: "a", Parent: 1}, {Name: "b", Parent: -1}}})
	assert.Error(t, err)

	_, _, err = Build(Table{Bones: []Bone{{Name: "a", Parent: -1}, {Name: "b", Parent: -1}}})
	assert.ErrorIs(t, err, figure.ErrRootExists)

	two := []Bone{{Name: "a", Parent: -1}, {Name: "b", Parent: 0}}
	_, _, err = Build(Table{Bones: two, Order: []string{"a"}})
	assert.ErrorIs(t, err, figure.ErrBadOrder)

	_, _, err = Build(Table{Bones: two, Order: []string{"a", "c"}})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	tab, err := Load(filepath.Join("testdata", "arm.yaml"))
	require.NoError(t, err)
	require.Len(t, tab.Bones, 3)
	assert.Equal(t, [3]float32{1, 0.5, 0.5}, tab.Bones[1].Scale)

	fig, order, err := Build(tab)
	require.NoError(t, err)
	names := make([]string, len(order))
	for i, n := range order {
		names[i] = fig.Name(n)
	}
	assert.Equal(t, []string{"wrist", "elbow", "shoulder"}, names)
	assert.Equal(t, "shoulder", fig.Name(fig.Root()))

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("bones: []\n"), 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestOpen(t *testing.T) {
	tab, err := Open("")
	require.NoError(t, err)
	assert.Len(t, tab.Bones, len(Robot.Bones))

	tab, err = Open(filepath.Join("testdata", "arm.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "shoulder", tab.Bones[0].Name)
}
