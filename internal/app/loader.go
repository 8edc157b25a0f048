package app

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/watcher"
)

type loadResult struct {
	path     string
	registry *scene.Registry
	err      error
}

// LoadModelAsync parses the model file in a background goroutine. The
// result is installed by the next ApplyLoaded call on the main goroutine.
// A load already in flight is left to finish and the new one is skipped.
func (c *Controller) LoadModelAsync(ctx context.Context, path string) bool {
	if c.state.Load.IsLoading {
		return false
	}

	c.state.Load.ModelPath = path
	c.state.Load.IsLoading = true
	c.state.Load.StartedAt = time.Now()
	fmt.Printf("Loading model: %s\n", path)

	go func() {
		reg, err := scene.Load(path)
		select {
		case c.loaded <- loadResult{path: path, registry: reg, err: err}:
		case <-ctx.Done():
		}
	}()
	return true
}

// RequestReload asks for the current model file to be loaded again. Safe
// to call from any goroutine; extra requests while one is pending are
// dropped.
func (c *Controller) RequestReload() {
	select {
	case c.reload <- struct{}{}:
	default:
	}
}

// ApplyLoaded must be called on the main goroutine, typically once per
// frame. It starts pending reloads and installs a finished load, reporting
// whether a new model was installed.
func (c *Controller) ApplyLoaded(ctx context.Context) bool {
	select {
	case <-c.reload:
		c.state.Load.reloadQueue = true
	default:
	}
	if c.state.Load.reloadQueue && !c.state.Load.IsLoading && c.state.Load.ModelPath != "" {
		c.state.Load.reloadQueue = false
		fmt.Println("Reloading model...")
		c.LoadModelAsync(ctx, c.state.Load.ModelPath)
	}

	var res loadResult
	select {
	case res = <-c.loaded:
	default:
		return false
	}

	c.state.Load.IsLoading = false
	elapsed := time.Since(c.state.Load.StartedAt)

	if res.err != nil {
		// The previous model, if any, stays in place
		c.state.Load.LastError = res.err
		fmt.Printf("Error loading model: %v\n", res.err)
		return false
	}

	c.state.Load.LastError = nil
	c.SetModel(res.registry)
	fmt.Printf("Model loaded in %.2fs: %d meshes, %d triangles\n",
		elapsed.Seconds(), len(res.registry.Meshes()), res.registry.TriangleCount())
	return true
}

// WatchModel reloads the model whenever its file changes. The caller
// closes the returned watcher.
func (c *Controller) WatchModel(path string, debounce time.Duration) (*watcher.FileWatcher, error) {
	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		c.RequestReload()
	}

	if err := fw.Watch([]string{path}, callback); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	fmt.Printf("Watching file for changes: %s\n", path)
	return fw, nil
}
