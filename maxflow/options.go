package maxflow

import "context"

// Options configures both Dinic and HLPP.
//   - Ctx: checked for cancellation between augmenting phases; a nil Ctx
//     defaults to context.Background().
//   - Verbose: accepted but not read; neither Dinic nor HLPP logs anything.
//     Callers that want structured logs wrap Solve themselves (see the
//     search package, which layers zerolog on top of this).
//   - LevelRebuildInterval: for Dinic, rebuild the level graph every N
//     blocking-flow augmentations instead of only when the level graph is
//     exhausted; 0 disables early rebuilding.
type Options struct {
	Ctx                  context.Context
	Verbose              bool
	LevelRebuildInterval int
}

// DefaultOptions returns zero-value Options with Ctx set to Background.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
}

// Method selects a max-flow algorithm by name.
type Method string

const (
	MethodDinic Method = "dinic"
	MethodHLPP  Method = "hlpp"
)

// Solve dispatches to Dinic or HLPP by method, matching the §6 contract
// method ∈ {"dinic", "hlpp"}.
func Solve(g *Graph, source, sink int, method Method, opts Options) (int, error) {
	switch method {
	case MethodDinic, "":
		return Dinic(g, source, sink, opts)
	case MethodHLPP:
		return HLPP(g, source, sink, opts)
	default:
		return 0, ErrUnknownMethod
	}
}
