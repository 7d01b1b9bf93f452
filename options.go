package convert

import (
	"image/color"
	"log/slog"
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCapabilities overrides external tool detection. Useful for bundled
// binaries and for tests.
func WithCapabilities(caps Capabilities) Option {
	return func(e *Engine) {
		e.caps = caps
		e.capsSet = true
	}
}

// WithToolTimeout bounds every external-process invocation. A timed-out
// tool surfaces as a ToolFailedError. Default: 2 minutes.
func WithToolTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.toolTimeout = d
		}
	}
}

// WithJPEGQuality sets the encoder quality (1-100) for JPEG outputs.
// Default: 90.
func WithJPEGQuality(q int) Option {
	return func(e *Engine) {
		if q >= 1 && q <= 100 {
			e.jpegQuality = q
		}
	}
}

// WithWorkers enables bounded per-file parallelism inside a batch. Archive
// entry order still follows input order and the first per-file failure
// aborts the whole batch. Default: 1 (serial).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithBackground sets the still-background size and color used by
// audio→video conversion. Default: 1280x720, black.
func WithBackground(width, height int, c color.Color) Option {
	return func(e *Engine) {
		if width > 0 && height > 0 {
			e.bgWidth = width
			e.bgHeight = height
		}
		if c != nil {
			e.bgColor = c
		}
	}
}
