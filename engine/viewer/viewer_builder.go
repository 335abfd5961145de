package viewer

// ViewerBuilderOption is a functional option for configuring a Viewer during
// construction.
type ViewerBuilderOption func(*viewer)

// WithComputeWorkers is an option builder that sets the number of worker
// goroutines used for the parallel pose bake on baked-layout models.
// Defaults to NumCPU-1. Panics if workers is less than 1.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - ViewerBuilderOption: the option function
func WithComputeWorkers(workers int) ViewerBuilderOption {
	if workers < 1 {
		panic("viewer: compute workers must be at least 1")
	}
	return func(v *viewer) {
		v.computeWorkers = workers
	}
}

// WithDepthView is an option builder that starts the viewer in the grayscale
// linearized-depth visualization, overriding the configuration.
//
// Parameters:
//   - enabled: true to start with the depth visualization active
//
// Returns:
//   - ViewerBuilderOption: the option function
func WithDepthView(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.depthView = enabled
	}
}

// WithEdgePass is an option builder that toggles the outline pass, overriding
// the configuration.
//
// Parameters:
//   - enabled: true to draw outlines after the color pass
//
// Returns:
//   - ViewerBuilderOption: the option function
func WithEdgePass(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.edgePass = enabled
	}
}
