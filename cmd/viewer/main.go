package main

import (
	"flag"
	"fmt"
	"os"

	"robot-viewer/internal/config"
	"robot-viewer/internal/figure"
	"robot-viewer/internal/glrender"
	"robot-viewer/internal/obj"
	"robot-viewer/internal/skeleton"
	"robot-viewer/internal/viewer"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or TOML config file")
	skeletonFile := flag.String("skeleton", "", "YAML skeleton table (default: built-in robot)")
	width := flag.Int("width", 0, "Window width (default: 640)")
	height := flag.Int("height", 0, "Window height (default: 480)")
	flag.Usage = func() {
		fmt.Println("usage: viewer [flags] RESOURCE_DIR")
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
		Width:       *width,
		Height:      *height,
	})

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	table, err := skeleton.Open(cfg.SkeletonFile)
	if err != nil {
		return err
	}
	fig, _, err := skeleton.Build(table)
	if err != nil {
		return err
	}
	v, err := viewer.New(fig, cfg.ViewerOptions())
	if err != nil {
		return err
	}
	mesh, err := obj.Load(cfg.MeshFile)
	if err != nil {
		return err
	}

	win, err := glrender.NewWindow(cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	glVersion, glslVersion := glrender.Versions()
	fmt.Printf("OpenGL version: %s\n", glVersion)
	fmt.Printf("GLSL version: %s\n", glslVersion)

	prog, err := glrender.LoadProgram(cfg.VertShader, cfg.FragShader)
	if err != nil {
		return err
	}
	defer prog.Delete()
	prog.AddUniform(figure.UniformProjection)
	prog.AddUniform(figure.UniformModelView)
	prog.AddAttribute(glrender.AttribPosition)
	prog.AddAttribute(glrender.AttribNormal)

	shape := glrender.NewMesh(mesh)
	defer shape.Delete()

	win.OnChar(func(r rune) { v.HandleChar(r) })

	fmt.Println("x/X y/Y z/Z rotate the selected part, . and , change the selection, Esc quits.")
	return win.Run(func() error {
		return v.RenderFrame(win, prog, shape)
	})
}
