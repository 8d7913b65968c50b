package renderer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Recorder writes composited frames to numbered PNG files. Texture readback
// has to happen on the render thread, so Capture runs there and hands the
// CPU-side image to a writer goroutine; encoding never blocks the frame
// loop unless the queue backs up.
type Recorder struct {
	dir    string
	frames chan capturedFrame
	wg     sync.WaitGroup
	next   int
}

type capturedFrame struct {
	img   *rl.Image
	index int
}

// NewRecorder creates the output directory and starts the writer.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}

	r := &Recorder{
		dir:    dir,
		frames: make(chan capturedFrame, 8),
	}
	r.wg.Add(1)
	go r.writer()
	return r, nil
}

// Capture reads the target back from the GPU and queues it for export.
// Must run on the render thread.
func (r *Recorder) Capture(target rl.RenderTexture2D) {
	img := rl.LoadImageFromTexture(target.Texture)
	r.frames <- capturedFrame{img: img, index: r.next}
	r.next++
}

func (r *Recorder) writer() {
	defer r.wg.Done()
	for f := range r.frames {
		// Render textures are stored bottom-up.
		rl.ImageFlipVertical(f.img)
		name := filepath.Join(r.dir, fmt.Sprintf("frame_%06d.png", f.index))
		if !rl.ExportImage(*f.img, name) {
			slog.Error("frame export failed", "file", name)
		}
		rl.UnloadImage(f.img)
	}
}

// Close drains the queue and stops the writer.
func (r *Recorder) Close() {
	close(r.frames)
	r.wg.Wait()
}
