// Copyright 2026 EzKito
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convert

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"time"
)

// strategyRule maps a (source, target) predicate to a strategy. Rules are
// evaluated in registration order; the first match wins.
type strategyRule struct {
	name     string
	matches  func(source, target string) bool
	strategy Strategy
}

// Engine is the conversion dispatch core: it validates requests against the
// capability matrix, routes them to a strategy, and packages the result.
// It is safe for concurrent use; all mutable state is per request.
type Engine struct {
	logger      *slog.Logger
	caps        Capabilities
	capsSet     bool
	toolTimeout time.Duration
	jpegQuality int
	workers     int
	bgWidth     int
	bgHeight    int
	bgColor     color.Color

	rules []strategyRule
}

// New creates an Engine with the given options. External tool availability
// is probed once here, so a missing LibreOffice or ffmpeg is a
// construction-time fact rather than a per-call surprise.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		toolTimeout: 2 * time.Minute,
		jpegQuality: 90,
		workers:     1,
		bgWidth:     1280,
		bgHeight:    720,
		bgColor:     color.Black,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.capsSet {
		e.caps = DetectCapabilities()
	}
	e.enableBuiltins()
	return e
}

// enableBuiltins registers the strategy rule table. Order matters only for
// readability here; the predicates are mutually exclusive by construction.
func (e *Engine) enableBuiltins() {
	e.register("image_to_pdf", pair(FamilyImage, FamilyPDF), &imageToPDFStrategy{e: e})
	e.register("image_to_image", pair(FamilyImage, FamilyImage), &imageToImageStrategy{e: e})
	e.register("office_to_pdf", pair(FamilyDocument, FamilyPDF), &officeToPDFStrategy{e: e})
	e.register("text_to_pdf", pair(FamilyText, FamilyPDF), &textToPDFStrategy{e: e})
	e.register("pdf_to_image", pair(FamilyPDF, FamilyImage), &pdfToImageStrategy{e: e})
	e.register("video_to_audio", pair(FamilyVideo, FamilyAudio), &videoToAudioStrategy{e: e})
	e.register("audio_to_video", pair(FamilyAudio, FamilyVideo), &audioToVideoStrategy{e: e})
}

func (e *Engine) register(name string, matches func(source, target string) bool, s Strategy) {
	e.rules = append(e.rules, strategyRule{name: name, matches: matches, strategy: s})
}

// pair builds a predicate matching on the family of both formats.
func pair(source, target Family) func(string, string) bool {
	return func(src, dst string) bool {
		return FamilyOf(src) == source && FamilyOf(dst) == target
	}
}

// SelectStrategy returns the strategy for a (source, target) pair, or nil
// when no rule matches.
func (e *Engine) SelectStrategy(source, target string) Strategy {
	for _, r := range e.rules {
		if r.matches(source, target) {
			return r.strategy
		}
	}
	return nil
}

// Convert runs the full pipeline: normalize, validate, select, convert,
// package. Every failure comes back as an error fit for direct display;
// the engine never panics outward.
func (e *Engine) Convert(ctx context.Context, req *ConversionRequest) (*Response, error) {
	req.Normalize()

	if err := Validate(req); err != nil {
		e.logger.Debug("conversion rejected",
			"from", req.SourceFormat, "to", req.TargetFormat, "reason", err)
		return nil, err
	}

	strategy := e.SelectStrategy(req.SourceFormat, req.TargetFormat)
	if strategy == nil {
		// Unreachable when the matrix and rule table agree; degrade to a
		// user-visible failure when they drift apart.
		return nil, &UnimplementedError{Source: req.SourceFormat, Target: req.TargetFormat}
	}

	e.logger.Info("conversion started",
		"from", req.SourceFormat, "to", req.TargetFormat,
		"files", len(req.Files), "strategy", strategy.Name())

	start := time.Now()
	outcome, err := e.runStrategy(ctx, strategy, req)
	if err != nil {
		e.logger.Warn("conversion failed",
			"strategy", strategy.Name(), "error", err)
		return nil, err
	}

	resp, err := Package(outcome)
	if err != nil {
		return nil, err
	}

	e.logger.Info("conversion finished",
		"strategy", strategy.Name(), "output", resp.Filename,
		"bytes", len(resp.Data), "elapsed", time.Since(start))
	return resp, nil
}

// runStrategy invokes the strategy with a panic barrier, so an internal bug
// in a strategy surfaces as a request failure instead of taking down the
// serving process.
func (e *Engine) runStrategy(ctx context.Context, s Strategy, req *ConversionRequest) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("internal error in %s: %v", s.Name(), r)
		}
	}()
	return s.Convert(ctx, req)
}

// Capabilities reports the external tools the engine found at construction.
func (e *Engine) Capabilities() Capabilities {
	return e.caps
}
