package search

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures the search drivers, grounded on the teacher's
// functional-options idiom (flow.FlowOptions) but expressed as a plain
// struct here since callers build it once per solve rather than via
// chained With* calls.
type Options struct {
	// Method selects the max-flow engine ("dinic" or "hlpp"); empty
	// defaults to Dinic.
	Method string

	// TauWorkers bounds concurrent tau probes within one T, in
	// synchronized mode. 0 or 1 means sequential.
	TauWorkers int

	// TWorkers bounds concurrent T probes within one exponential-search
	// batch. 0 or 1 means sequential.
	TWorkers int

	// Deadline bounds the search context the mapfcore entry points pass in.
	// Once it passes, probes that have not yet started fail with the
	// context's error; a max-flow solve already running is not
	// interrupted. Zero means no deadline.
	Deadline time.Time

	// AllowSharedStarts permits two agents to list the same start cell;
	// by default the mapfcore entry points reject this with
	// mapfcore.ErrInvalidInput per §9's resolved open question.
	AllowSharedStarts bool

	// Logger receives structured probe-trace events (nil-safe: a nil
	// Logger disables tracing entirely, replacing original_source's
	// verbose/progress_every print statements).
	Logger *zerolog.Logger
}

// tauWorkersPerT implements §4.6's worker-split formula: when T-parallelism
// is active (TWorkers > 1 and more than one T in the batch), each
// concurrently-probed T gets a share of the remaining workers for its own
// tau sweep; otherwise all TauWorkers go to tau.
func (o Options) tauWorkersPerT(activeT int) int {
	if activeT <= 1 || o.TWorkers <= 1 {
		if o.TauWorkers > 0 {
			return o.TauWorkers
		}

		return 1
	}
	if o.TWorkers <= activeT {
		return 1
	}

	share := (o.TWorkers - activeT) / activeT
	if share < 1 {
		share = 1
	}

	return share
}

func (o Options) method() string {
	if o.Method == "" {
		return "dinic"
	}

	return o.Method
}

func (o Options) logEvent() *zerolog.Event {
	if o.Logger == nil {
		return nil
	}

	return o.Logger.Debug()
}

// newSolveID mints a correlation ID for one MinTSingle/MinTSync call, so log lines from concurrently-probed candidates in the same batch
// can be grouped back together. Cheap to call even when Logger is nil.
func newSolveID() string {
	return uuid.NewString()
}

// logEventFor is logEvent with the solve's correlation ID attached, nil-safe
// like logEvent itself.
func (o Options) logEventFor(solveID string) *zerolog.Event {
	ev := o.logEvent()
	if ev == nil {
		return nil
	}

	return ev.Str("solve_id", solveID)
}
