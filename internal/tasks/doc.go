// Package tasks runs the client-side video pipeline with real-time progress reporting.
//
// # Video Pipeline
//
// [VideoEngine.Run] performs three explicit steps:
//
//  1. Render: every slide is rasterized to a 1920x1080 PNG by a [SlideRenderer]
//     (the render package), in slide order.
//  2. Narrate: a [Narrator] turns the course into an audio track.
//  3. Mux: a [Muxer] combines images and audio into a video container.
//
// Only rendering is functional. [SilentNarrator] and [SimulatedMuxer] are placeholders:
// the first produces no audio, the second waits a configurable delay and produces no video.
// Real implementations plug in through the interfaces without touching callers.
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Health Polling
//
// [WaitHealthy] polls the backend's /health endpoint at a fixed rate (golang.org/x/time/rate)
// until it reports healthy.
package tasks
