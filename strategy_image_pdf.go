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
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// imageToPDFStrategy turns images into PDF pages. The default merge mode
// yields one multi-page PDF; separate mode yields one single-page PDF per
// input, archived when there is more than one.
type imageToPDFStrategy struct {
	e *Engine
}

func (s *imageToPDFStrategy) Name() string { return "image_to_pdf" }

func (s *imageToPDFStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	base := req.Files[0].BaseName()

	if req.PDFMode == PDFModeSeparate {
		artifacts, err := s.e.runBatch(ctx, req.Files, func(_ context.Context, _ int, f InputFile) (Artifact, error) {
			data, err := imagesToPDF([]InputFile{f})
			if err != nil {
				return Artifact{}, err
			}
			return Artifact{
				Name: outputName(f.BaseName(), "pdf"),
				Data: data,
				MIME: "application/pdf",
			}, nil
		})
		if err != nil {
			return nil, err
		}
		if len(artifacts) == 1 {
			// A single input under separate mode is just a single-file
			// conversion; no archive.
			return &Outcome{Artifacts: artifacts}, nil
		}
		return &Outcome{
			Artifacts:   artifacts,
			ArchiveName: base + separatedSuffix + ".zip",
		}, nil
	}

	// Merge mode: one PDF, one page per input, in input order.
	data, err := imagesToPDF(req.Files)
	if err != nil {
		return nil, err
	}

	name := outputName(base, "pdf")
	if len(req.Files) > 1 {
		name = base + mergedSuffix + ".pdf"
	}
	return &Outcome{Artifacts: []Artifact{{
		Name: name,
		Data: data,
		MIME: "application/pdf",
	}}}, nil
}

// imagesToPDF builds a PDF with one page per image, each page sized to the
// image's pixel dimensions at 72 DPI.
func imagesToPDF(files []InputFile) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, f := range files {
		img, err := decodeInputImage(f)
		if err != nil {
			return nil, err
		}

		w := float64(img.Bounds().Dx())
		h := float64(img.Bounds().Dy())
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

		// Re-encode through PNG so every pixel mode gofpdf can't read
		// (paletted, 16-bit, CMYK JPEG) comes in normalized.
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("re-encode %s: %w", f.Name, err)
		}

		ref := fmt.Sprintf("page-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(ref, opts, &buf)
		pdf.ImageOptions(ref, 0, 0, w, h, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}
