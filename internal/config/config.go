package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"robot-viewer/internal/mathutil"
	"robot-viewer/internal/viewer"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ResourceDir  string `json:"resource_dir" toml:"resource_dir"`
	MeshFile     string `json:"mesh" toml:"mesh"`
	VertShader   string `json:"vert_shader" toml:"vert_shader"`
	FragShader   string `json:"frag_shader" toml:"frag_shader"`
	SkeletonFile string `json:"skeleton" toml:"skeleton"`

	// Window
	Title  string `json:"title" toml:"title"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`

	// Interaction and camera
	Step      float32     `json:"step" toml:"step"`
	Highlight float32     `json:"highlight" toml:"highlight"`
	FOV       float32     `json:"fov_degrees" toml:"fov_degrees"`
	Near      float32     `json:"near" toml:"near"`
	Far       float32     `json:"far" toml:"far"`
	Camera    *[3]float32 `json:"camera,omitempty" toml:"camera,omitempty"`

	// Snapshot settings
	Output      string `json:"output" toml:"output"`
	Supersample int    `json:"supersample" toml:"supersample"`
	Crop        bool   `json:"crop" toml:"crop"`
	Workers     int    `json:"workers" toml:"workers"`
}

// Load reads a JSON or TOML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ResourceDir string
	Skeleton    string
	Output      string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ResourceDir != "" {
		c.ResourceDir = flags.ResourceDir
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resource files are relative to the resource dir
	c.MeshFile = resolvePath(c.ResourceDir, c.MeshFile, "cube.obj")
	c.VertShader = resolvePath(c.ResourceDir, c.VertShader, "vert.glsl")
	c.FragShader = resolvePath(c.ResourceDir, c.FragShader, "frag.glsl")
	if c.SkeletonFile != "" {
		c.SkeletonFile = resolvePath(c.ResourceDir, c.SkeletonFile, "")
	}
	// A skeleton given on the command line is taken as is.
	if flags.Skeleton != "" {
		c.SkeletonFile = flags.Skeleton
	}

	if c.Title == "" {
		c.Title = "Robot"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}

	def := viewer.DefaultOptions()
	if c.Step <= 0 {
		c.Step = def.Step
	}
	if c.Highlight <= 0 {
		c.Highlight = def.Highlight
	}
	if c.FOV <= 0 {
		c.FOV = 45
	}
	if c.Near <= 0 {
		c.Near = def.Near
	}
	if c.Far <= c.Near {
		c.Far = def.Far
	}
	if c.Camera == nil {
		cam := [3]float32(def.Camera)
		c.Camera = &cam
	}

	if c.Output == "" {
		c.Output = "robot.webp"
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// ViewerOptions converts the interaction and camera settings.
// Call after Resolve.
func (c *Config) ViewerOptions() viewer.Options {
	opts := viewer.DefaultOptions()
	opts.Step = c.Step
	opts.Highlight = c.Highlight
	opts.FOV = float32(mathutil.Deg2Rad(float64(c.FOV)))
	opts.Near = c.Near
	opts.Far = c.Far
	if c.Camera != nil {
		opts.Camera = mgl32.Vec3(*c.Camera)
	}
	return opts
}

func resolvePath(base, p, def string) string {
	if p == "" {
		p = def
	}
	if p == "" || filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
