package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/sondrele/raytracer/internal/scene"
)

// RenderScene traces the given scene using the provided settings.
func RenderScene(sc *scene.Scene, settings scene.RenderSettings) (image.Image, error) {
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("render: invalid resolution %dx%d", settings.Width, settings.Height)
	}
	cfg := RenderConfig{
		Width:       settings.Width,
		Height:      settings.Height,
		MaxDepth:    settings.MaxDepth,
		AreaSamples: settings.AreaSamples,
		Seed:        settings.Seed,
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.AreaSamples <= 0 {
		cfg.AreaSamples = 10
	}
	return Render(sc, cfg), nil
}

// RenderSettingsForMode returns reasonable defaults for preview/final
// modes. Scene files may override any field.
func RenderSettingsForMode(mode string) scene.RenderSettings {
	switch mode {
	case "final":
		return scene.RenderSettings{
			Width:       1000,
			Height:      1000,
			MaxDepth:    10,
			AreaSamples: 100,
		}
	default:
		return scene.RenderSettings{
			Width:       400,
			Height:      400,
			MaxDepth:    10,
			AreaSamples: 10,
		}
	}
}

// SaveImage writes the image to path, choosing the encoder from the
// file extension (.bmp or .png).
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp", "":
		err = bmp.Encode(f, img)
	default:
		return fmt.Errorf("save image: unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}
