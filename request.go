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
	"strings"
)

// PDFMode selects how image→PDF conversions combine multiple inputs.
type PDFMode string

const (
	// PDFModeMerge combines all inputs into one multi-page PDF (default).
	PDFModeMerge PDFMode = "merge"
	// PDFModeSeparate produces one single-page PDF per input.
	PDFModeSeparate PDFMode = "separate"
)

// InputFile is one uploaded file: its declared name and raw bytes.
type InputFile struct {
	Name string
	Data []byte
}

// BaseName returns the filename without its final extension.
func (f InputFile) BaseName() string {
	if i := strings.LastIndex(f.Name, "."); i >= 0 {
		return f.Name[:i]
	}
	return f.Name
}

// Ext returns the lowercased extension after the final dot, without the
// dot. A name with no dot yields "".
func (f InputFile) Ext() string {
	i := strings.LastIndex(f.Name, ".")
	if i < 0 || i == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[i+1:])
}

// ConversionRequest describes one conversion: declared source and target
// formats, the ordered input files, and strategy-specific options.
type ConversionRequest struct {
	SourceFormat string
	TargetFormat string
	Files        []InputFile

	// PDFMode applies to image→PDF conversions only. Empty means merge.
	PDFMode PDFMode
}

// Normalize lowercases the format tokens and defaults the PDF mode. It is
// called by the engine before validation.
func (r *ConversionRequest) Normalize() {
	r.SourceFormat = strings.ToLower(strings.TrimSpace(r.SourceFormat))
	r.TargetFormat = strings.ToLower(strings.TrimSpace(r.TargetFormat))
	if r.PDFMode == "" {
		r.PDFMode = PDFModeMerge
	}
}

// Artifact is one named byte artifact produced by a strategy.
type Artifact struct {
	Name string
	Data []byte
	MIME string
}

// Outcome is the in-memory result of a conversion, prior to packaging.
// Either a single bare artifact, or an ordered set destined for a zip
// archive. It is constructed by a strategy and consumed exactly once by
// the packager; nothing is cached or persisted.
type Outcome struct {
	Artifacts []Artifact

	// Archived forces zip packaging even for a single artifact
	// (PDF→image always archives because page counts are generally >1).
	Archived bool

	// ArchiveName is the zip filename when Archived or len(Artifacts)>1.
	ArchiveName string
}

// IsArchive reports whether packaging must produce a zip.
func (o *Outcome) IsArchive() bool {
	return o.Archived || len(o.Artifacts) > 1
}

// Strategy is the unit of logic implementing one conversion family-pair.
// Convert runs after validation has passed: the files are non-empty and
// every extension matches the request's source format.
type Strategy interface {
	// Name identifies the strategy in logs and selector rules.
	Name() string

	// Convert turns the request's files into an outcome. Strategies that
	// shell out to external tools honor ctx for cancellation and the
	// engine's per-invocation timeout.
	Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error)
}
