package domain

// Context is the shared key/value state of a run. The caller supplies the
// initial mapping; the engine extends it (never replaces entries) with each
// completed node's output, stored under the producing node's id.
type Context map[string]any

// Results maps node id to the output that node's task returned. It is the
// same data the engine folds into the run context, handed back verbatim when
// the run completes.
type Results map[string]map[string]any

// Clone returns a shallow copy of the context. Values are shared; only the
// top-level mapping is copied, which is enough to isolate tasks from
// engine-side merges because entries are written at most once.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merged returns a new context holding the initial values overlaid with every
// accumulated result keyed by its producer's id. Neither input is modified.
func Merged(initial Context, results Results) Context {
	out := make(Context, len(initial)+len(results))
	for k, v := range initial {
		out[k] = v
	}
	for id, output := range results {
		out[id] = output
	}
	return out
}

// Clone returns a copy of the result mapping. Output maps are shared, not
// copied; completed outputs are treated as immutable.
func (r Results) Clone() Results {
	out := make(Results, len(r))
	for id, output := range r {
		out[id] = output
	}
	return out
}
