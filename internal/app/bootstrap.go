package app

import (
	"context"
	"fmt"

	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// NewCamera builds the viewing camera from configuration
func NewCamera(cfg config.CameraConfig) *viewer.Camera {
	return viewer.NewCamera(
		geometry.VectorFrom(cfg.Position),
		geometry.VectorFrom(cfg.Target),
		cfg.FOV, cfg.Near, cfg.Far,
	)
}

// Bootstrap loads the metadata store and, once that succeeds, creates the
// controller and starts loading the model in the background. A metadata
// failure is returned and no controller exists.
func Bootstrap(ctx context.Context, cfg *config.Config, panel InfoPanel) (*Controller, error) {
	store, err := anatomy.Load(ctx, cfg.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	fmt.Printf("Loaded %d part records from %s\n", store.Len(), cfg.Metadata)

	ctl := NewController(store, NewCamera(cfg.Camera), panel, Options{
		SkipHidden: cfg.Picking.SkipHidden,
		AutoFit:    cfg.Camera.AutoFit,
	})
	ctl.LoadModelAsync(ctx, cfg.Model)
	return ctl, nil
}
