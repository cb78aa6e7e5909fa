// Package batch renders poses of a figure in software, one frame or a
// whole key-script sequence at a time.
package batch

import (
	"fmt"
	"image"
	"image/color"

	"robot-viewer/internal/obj"
	"robot-viewer/internal/postprocess"
	"robot-viewer/internal/raster"
	"robot-viewer/internal/skeleton"
	"robot-viewer/internal/viewer"
)

// Background is the clear color of rendered frames.
var Background = color.NRGBA{255, 255, 255, 255}

// Config holds all shared resources for a render run.
// Table and Mesh are only read, so one Config serves every worker.
type Config struct {
	Table       skeleton.Table
	Mesh        *obj.Mesh
	Options     viewer.Options
	Width       int
	Height      int
	Supersample int
	Lit         bool
	Crop        bool

	OutputDir string
	Ext       string // output extension, e.g. ".webp"
	Workers   int
}

// Render builds a fresh figure, replays keys through a viewer and draws
// one frame. Keys without an action are an error.
func Render(cfg Config, keys string) (*image.NRGBA, error) {
	fig, _, err := skeleton.Build(cfg.Table)
	if err != nil {
		return nil, err
	}
	v, err := viewer.New(fig, cfg.Options)
	if err != nil {
		return nil, err
	}
	for i, r := range keys {
		if !v.HandleChar(r) {
			return nil, fmt.Errorf("batch: key %d %q has no action", i, r)
		}
	}

	ss := max(cfg.Supersample, 1)
	rr := raster.NewRenderer(cfg.Width*ss, cfg.Height*ss, Background)
	if cfg.Lit {
		rr.Shader = raster.NewLitShader()
	}
	if err := v.RenderFrame(rr, rr, rr.Mesh(cfg.Mesh)); err != nil {
		return nil, err
	}

	img := postprocess.Downsample(rr.FB.Image(), cfg.Width, cfg.Height)
	if cfg.Crop {
		img = postprocess.Crop(img, Background, 4)
	}
	return img, nil
}
