package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{ResourceDir: "res"})

	assert.Equal(t, filepath.Join("res", "cube.obj"), c.MeshFile)
	assert.Equal(t, filepath.Join("res", "vert.glsl"), c.VertShader)
	assert.Equal(t, filepath.Join("res", "frag.glsl"), c.FragShader)
	assert.Empty(t, c.SkeletonFile)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 480, c.Height)
	assert.Equal(t, "robot.webp", c.Output)
	assert.Equal(t, 2, c.Supersample)
	assert.Positive(t, c.Workers)

	opts := c.ViewerOptions()
	assert.InDelta(t, 0.1, opts.Step, 1e-7)
	assert.InDelta(t, 0.2, opts.Highlight, 1e-7)
	assert.InDelta(t, math.Pi/4, opts.FOV, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 4, -15}, opts.Camera)
}

func TestLoadJSON(t *testing.T) {
	path := write(t, "viewer.json", `{
		"mesh": "/abs/box.obj",
		"skeleton": "arm.yaml",
		"width": 800,
		"fov_degrees": 60,
		"camera": [0, 0, -5]
	}`)
	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{ResourceDir: "res", Height: 600})

	assert.Equal(t, "/abs/box.obj", c.MeshFile)
	assert.Equal(t, filepath.Join("res", "arm.yaml"), c.SkeletonFile)
	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 600, c.Height)
	opts := c.ViewerOptions()
	assert.InDelta(t, math.Pi/3, opts.FOV, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, opts.Camera)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "viewer.toml", `
title = "Arm"
step = 0.05
camera = [0.0, 0.0, 0.0]
supersample = 4
crop = true
`)
	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{Skeleton: "my/arm.yaml", Supersample: 3})

	assert.Equal(t, "Arm", c.Title)
	assert.Equal(t, "my/arm.yaml", c.SkeletonFile)
	assert.Equal(t, 3, c.Supersample)
	assert.True(t, c.Crop)
	assert.Equal(t, "cube.obj", c.MeshFile)
	opts := c.ViewerOptions()
	assert.InDelta(t, 0.05, opts.Step, 1e-7)
	assert.Equal(t, mgl32.Vec3{}, opts.Camera)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "bad.json", "{"))
	assert.Error(t, err)

	_, err = Load(write(t, "bad.toml", "width = ["))
	assert.Error(t, err)
}
