// Package field implements the animated particle field: a set of drifting
// points joined by fading lines when close to each other or to the pointer.
//
// The package is host-agnostic. Anything that can paint circles and lines
// implements [Surface]; the braille terminal canvas, the SVG writer and the
// raylib window all do.
//
//   - [Field]: point list, pointer position, per-frame update and drawing
//   - [Renderer]: a field mounted on a surface, with a cancellable frame loop
//   - [Links], [PointerLinks]: proximity line computation
//
// # Example
//
//	r := field.Mount(surface, field.DefaultParams(), rand.New(rand.NewSource(1)))
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	ticker := time.NewTicker(time.Second / 60)
//	defer ticker.Stop()
//	_ = r.Run(ctx, ticker.C, nil)
//
// # Thread Safety
//
// Field and Renderer are NOT safe for concurrent use. Hosts drive them from a
// single loop; the HTTP server serializes access with its own mutex.
package field
