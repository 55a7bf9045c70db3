// Package rotation extends the time-expanded network with agent facing
// direction: every cell-timestep carries one oriented node pair per
// direction (East/West/South/North), funnelled through a shared
// occupancy gadget so the vertex-collision bound still applies to the
// cell, never to the oriented state. Movement only happens along an
// agent's current facing; turning 90 degrees costs one timestep and
// never jumps straight to the opposite facing.
package rotation
