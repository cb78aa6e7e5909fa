package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"robot-viewer/internal/snapshot"
)

// Frame is one pose to render: the keys replayed from the rest pose.
type Frame struct {
	Name string
	Keys string
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Name    string
	Keys    string
	Image   string
	Success bool
	Error   string
}

// Sequence returns one frame per prefix of keys, starting with the rest
// pose, so that playing the frames back animates the key script.
func Sequence(keys string) []Frame {
	runes := []rune(keys)
	frames := make([]Frame, len(runes)+1)
	for i := range frames {
		frames[i] = Frame{
			Name: fmt.Sprintf("frame_%04d", i),
			Keys: string(runes[:i]),
		}
	}
	return frames
}

// Run renders all frames using a worker pool.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, f Frame) Result {
	res := Result{Name: f.Name, Keys: f.Keys, Image: f.Name + cfg.Ext}

	img, err := Render(cfg, f.Keys)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if err := snapshot.Save(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}
