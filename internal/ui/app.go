package ui

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"

	"github.com/sondrele/raytracer/internal/engine"
	"github.com/sondrele/raytracer/internal/scene"
)

// Maximum size of the preview canvas on screen; larger renders are
// downscaled for display only.
const (
	maxDisplayW = 1024
	maxDisplayH = 768
)

// Run starts the interactive preview with the given scene file.
func Run(scenePath, mode string) error {
	log.Printf("ui: starting with scene %q, mode=%s", scenePath, mode)

	sc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	settings := engine.RenderSettingsForMode(mode)
	if sc.Settings.Width > 0 && sc.Settings.Height > 0 {
		settings = sc.Settings
	}

	a := app.New()
	w := a.NewWindow("Ray Tracer")

	img := image.NewRGBA(image.Rect(0, 0, settings.Width, settings.Height))

	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	displayW, displayH := fitDisplay(settings.Width, settings.Height)
	imgCanvas.SetMinSize(fyne.NewSize(float32(displayW), float32(displayH)))

	status := widget.NewLabel("Idle")

	var mu sync.Mutex
	rendering := false

	refresh := func() {
		// The full-resolution buffer may exceed the preview area;
		// display a downscaled copy and keep the original for saving.
		if settings.Width > maxDisplayW || settings.Height > maxDisplayH {
			imgCanvas.Image = imaging.Fit(img, maxDisplayW, maxDisplayH, imaging.Lanczos)
		} else {
			imgCanvas.Image = img
		}
		imgCanvas.Refresh()
	}

	doRender := func() {
		mu.Lock()
		if rendering {
			mu.Unlock()
			return
		}
		rendering = true
		mu.Unlock()

		go func() {
			status.SetText("Rendering...")
			start := time.Now()

			cfg := engine.RenderConfig{
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
			engine.RenderInto(sc, cfg, img, refresh)

			status.SetText(fmt.Sprintf("Done in %v", time.Since(start).Round(time.Millisecond)))
			mu.Lock()
			rendering = false
			mu.Unlock()
		}()
	}

	renderBtn := widget.NewButton("Render", doRender)
	saveBtn := widget.NewButton("Save", func() {
		name := fmt.Sprintf("render_%s.bmp", time.Now().Format("20060102_150405"))
		if err := engine.SaveImage(name, img); err != nil {
			status.SetText("Save failed: " + err.Error())
			return
		}
		status.SetText("Saved " + name)
	})

	controls := container.NewHBox(renderBtn, saveBtn, status)
	w.SetContent(container.NewBorder(nil, controls, nil, nil, imgCanvas))

	doRender()
	w.ShowAndRun()
	return nil
}

func fitDisplay(w, h int) (int, int) {
	if w <= maxDisplayW && h <= maxDisplayH {
		return w, h
	}
	aspect := float64(w) / float64(h)
	dw, dh := maxDisplayW, int(maxDisplayW/aspect)
	if dh > maxDisplayH {
		dh = maxDisplayH
		dw = int(maxDisplayH * aspect)
	}
	return dw, dh
}
