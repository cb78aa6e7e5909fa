package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"robot-viewer/internal/batch"
	"robot-viewer/internal/config"
	"robot-viewer/internal/obj"
	"robot-viewer/internal/skeleton"
	"robot-viewer/internal/snapshot"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or TOML config file")
	skeletonFile := flag.String("skeleton", "", "YAML skeleton table (default: built-in robot)")
	keys := flag.String("keys", "", "Key presses to replay before rendering, e.g. \"..zzzX\"")
	output := flag.String("o", "", "Output image, .webp/.tga/.png (default: robot.webp)")
	frames := flag.String("frames", "", "Render every prefix of -keys as numbered frames into this directory")
	width := flag.Int("width", 0, "Image width (default: 640)")
	height := flag.Int("height", 0, "Image height (default: 480)")
	supersample := flag.Int("supersample", 0, "Render at N times the size, then downsample (default: 2)")
	workers := flag.Int("workers", 0, "Number of worker goroutines for -frames (default: NumCPU)")
	lit := flag.Bool("lit", false, "Shade with lights instead of normal colors")
	crop := flag.Bool("crop", false, "Crop to the drawn figure")
	flag.Usage = func() {
		fmt.Println("usage: snapshot [flags] RESOURCE_DIR")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Please specify the resource directory.")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		ResourceDir: flag.Arg(0),
		Skeleton:    *skeletonFile,
		Output:      *output,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})

	table, err := skeleton.Open(cfg.SkeletonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mesh, err := obj.Load(cfg.MeshFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	bc := batch.Config{
		Table:       table,
		Mesh:        mesh,
		Options:     cfg.ViewerOptions(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Lit:         *lit,
		Crop:        cfg.Crop || *crop,
		OutputDir:   *frames,
		Ext:         filepath.Ext(cfg.Output),
		Workers:     cfg.Workers,
	}
	if _, err := snapshot.FormatOf(cfg.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	if *frames == "" {
		img, err := batch.Render(bc, *keys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := snapshot.Save(cfg.Output, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		b := img.Bounds()
		fmt.Printf("Wrote %s (%dx%d) in %v\n", cfg.Output, b.Dx(), b.Dy(), time.Since(start).Round(time.Millisecond))
		return
	}

	seq := batch.Sequence(*keys)
	fmt.Printf("Frames: %d, Workers: %d\n", len(seq), cfg.Workers)
	fmt.Printf("Output: %s\n", *frames)
	fmt.Println("------------------------------------------------------------")

	results := batch.Run(bc, seq)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Printf("  %s: %s\n", r.Name, r.Error)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))

	manifestPath := filepath.Join(*frames, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
