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
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// officeToPDFStrategy renders docx/pptx/xlsx to PDF through headless
// LibreOffice. The renderer is an opaque capability: input file in, PDF
// next to it in the output directory, or failure.
type officeToPDFStrategy struct {
	e *Engine
}

func (s *officeToPDFStrategy) Name() string { return "office_to_pdf" }

func (s *officeToPDFStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	if s.e.caps.Soffice == "" {
		return nil, &ToolMissingError{Tool: "LibreOffice"}
	}

	var artifacts []Artifact
	err := WithWorkArea(func(dir string) error {
		var batchErr error
		artifacts, batchErr = s.e.runBatch(ctx, req.Files, func(ctx context.Context, idx int, f InputFile) (Artifact, error) {
			data, err := s.renderOne(ctx, dir, idx, f)
			if err != nil {
				return Artifact{}, err
			}
			return Artifact{
				Name: outputName(f.BaseName(), "pdf"),
				Data: data,
				MIME: "application/pdf",
			}, nil
		})
		return batchErr
	})
	if err != nil {
		return nil, err
	}

	if len(artifacts) == 1 {
		return &Outcome{Artifacts: artifacts}, nil
	}
	return &Outcome{
		Artifacts:   artifacts,
		ArchiveName: req.Files[0].BaseName() + convertedSuffix + ".zip",
	}, nil
}

// renderOne runs LibreOffice for a single document inside its own
// subdirectory of the work area, so same-named inputs in one batch cannot
// clobber each other.
func (s *officeToPDFStrategy) renderOne(ctx context.Context, workArea string, idx int, f InputFile) ([]byte, error) {
	dir := filepath.Join(workArea, strconv.Itoa(idx))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("prepare work area: %w", err)
	}

	inputPath := filepath.Join(dir, filepath.Base(f.Name))
	if err := os.WriteFile(inputPath, f.Data, 0o600); err != nil {
		return nil, fmt.Errorf("stage input %s: %w", f.Name, err)
	}

	err := s.e.runTool(ctx, "LibreOffice", s.e.caps.Soffice,
		"--headless", "--convert-to", "pdf", "--outdir", dir, inputPath)
	if err != nil {
		return nil, err
	}

	pdfPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pdf"
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &OutputMissingError{Tool: "LibreOffice", Path: pdfPath}
	}
	return data, nil
}
