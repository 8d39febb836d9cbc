package engine

import (
	"image"
	"runtime"
	"sync"

	"github.com/sondrele/raytracer/internal/scene"
)

// RenderConfig defines internal render parameters.
type RenderConfig struct {
	Width       int
	Height      int
	MaxDepth    int   // recursion limit for reflection/refraction
	AreaSamples int   // shadow samples per area light
	Seed        int64 // base seed for stochastic sampling
}

// Render traces the given scene and returns a new image.
func Render(sc *scene.Scene, cfg RenderConfig) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	RenderInto(sc, cfg, img, nil)
	return img
}

// RenderInto renders the scene into the provided image. If progress is
// not nil it is called periodically from worker goroutines after
// finished tiles, allowing interactive preview.
//
// The scene is read-only for the whole render and each worker writes a
// disjoint set of pixels, so no locking is needed beyond the tile queue.
func RenderInto(sc *scene.Scene, cfg RenderConfig, img *image.RGBA, progress func()) {
	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		return
	}

	w := buildWorld(sc)
	cam := newCamera(sc.Camera, cfg.Width, cfg.Height)

	pix := img.Pix
	stride := img.Stride

	const tileSize = 32
	type tile struct {
		x0, y0, x1, y1 int
	}
	numTilesX := (cfg.Width + tileSize - 1) / tileSize
	numTilesY := (cfg.Height + tileSize - 1) / tileSize
	tiles := make(chan tile, numTilesX*numTilesY)

	for ty := 0; ty < cfg.Height; ty += tileSize {
		for tx := 0; tx < cfg.Width; tx += tileSize {
			tiles <- tile{
				x0: tx,
				y0: ty,
				x1: minInt(tx+tileSize, cfg.Width),
				y1: minInt(ty+tileSize, cfg.Height),
			}
		}
	}
	close(tiles)

	workerCount := runtime.NumCPU()
	if workerCount < 1 {
		workerCount = 1
	}

	totalTiles := numTilesX * numTilesY
	var processedTiles int
	var progressMu sync.Mutex

	heightMinus1 := float64(cfg.Height - 1)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tiles {
				for y := t.y0; y < t.y1; y++ {
					rowIdx := y * stride
					// Image rows run top-down, camera space bottom-up.
					flipY := heightMinus1 - float64(y)

					for x := t.x0; x < t.x1; x++ {
						r := cam.rayThrough(float64(x), flipY)
						rng := newRandSource(pixelSeed(cfg.Seed, x, y))
						col := w.trace(r, cfg.MaxDepth, rng, cfg.AreaSamples)

						idx := rowIdx + x*4
						pix[idx] = uint8(col.x * 255.999)
						pix[idx+1] = uint8(col.y * 255.999)
						pix[idx+2] = uint8(col.z * 255.999)
						pix[idx+3] = 255
					}
				}

				if progress != nil {
					progressMu.Lock()
					processedTiles++
					threshold := maxInt(1, totalTiles/20)
					notify := processedTiles%threshold == 0 || processedTiles == totalTiles
					progressMu.Unlock()
					if notify {
						progress()
					}
				}
			}
		}()
	}

	wg.Wait()

	if progress != nil {
		progress()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
