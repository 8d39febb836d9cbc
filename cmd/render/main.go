package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sondrele/raytracer/internal/engine"
	"github.com/sondrele/raytracer/internal/scene"
	"github.com/sondrele/raytracer/internal/ui"
)

func main() {
	scenePath := flag.String("scene", "scenes/example_simple.json", "path to scene JSON file")
	mode := flag.String("mode", "preview", "render mode: preview or final")
	size := flag.Int("size", 0, "override width and height of the image")
	depth := flag.Int("depth", 0, "override recursion depth of the tracer")
	samples := flag.Int("area-samples", 0, "override the number of area light samples")
	headless := flag.Bool("headless", false, "render without UI and save the image")
	output := flag.String("out", "img.bmp", "output image file (.bmp or .png) for headless render")
	flag.Parse()

	log.Printf("raytracer: scene=%s mode=%s headless=%v out=%s", *scenePath, *mode, *headless, *output)

	if *headless {
		if err := renderHeadless(*scenePath, *mode, *output, *size, *depth, *samples); err != nil {
			log.Println("headless render error:", err)
			os.Exit(1)
		}
		return
	}

	if err := ui.Run(*scenePath, *mode); err != nil {
		log.Println("ui error:", err)
		os.Exit(1)
	}
}

func renderHeadless(scenePath, mode, outPath string, size, depth, samples int) error {
	sc, err := scene.Load(scenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	settings := engine.RenderSettingsForMode(mode)
	if sc.Settings.Width > 0 && sc.Settings.Height > 0 {
		settings = sc.Settings
	}
	if size > 0 {
		settings.Width = size
		settings.Height = size
	}
	if depth > 0 {
		settings.MaxDepth = depth
	}
	if samples > 0 {
		settings.AreaSamples = samples
	}

	start := time.Now()
	img, err := engine.RenderScene(sc, settings)
	if err != nil {
		return fmt.Errorf("render scene: %w", err)
	}
	log.Printf("render completed in %v", time.Since(start))

	if err := engine.SaveImage(outPath, img); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	log.Printf("render saved as %s", outPath)
	return nil
}
