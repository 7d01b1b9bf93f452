package convert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// pdfRenderDPI is the rasterization density for PDF→image conversion.
const pdfRenderDPI = 150

var (
	pdfiumPool     pdfium.Pool
	pdfiumPoolOnce sync.Once
	pdfiumPoolErr  error
)

func initPdfiumPool() {
	pdfiumPool, pdfiumPoolErr = webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
}

// pdfToImageStrategy rasterizes PDFs with the PDFium library via
// WebAssembly, one image per page. The result is always an archive, even
// for a single input, because page counts are generally above one.
type pdfToImageStrategy struct {
	e *Engine
}

func (s *pdfToImageStrategy) Name() string { return "pdf_to_image" }

func (s *pdfToImageStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	pdfiumPoolOnce.Do(initPdfiumPool)
	if pdfiumPoolErr != nil {
		return nil, fmt.Errorf("init pdfium: %w", pdfiumPoolErr)
	}

	var artifacts []Artifact
	for _, f := range req.Files {
		pages, err := s.rasterize(f, req.TargetFormat)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, pages...)
	}

	return &Outcome{
		Artifacts:   artifacts,
		Archived:    true,
		ArchiveName: req.Files[0].BaseName() + convertedSuffix + ".zip",
	}, nil
}

// rasterize renders every page of one PDF, naming outputs by source
// document and 1-based page number.
func (s *pdfToImageStrategy) rasterize(f InputFile, targetFormat string) ([]Artifact, error) {
	instance, err := pdfiumPool.GetInstance(30 * time.Second)
	if err != nil {
		return nil, fmt.Errorf("get pdfium instance: %w", err)
	}
	defer instance.Close()

	data := f.Data
	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &data,
	})
	if err != nil {
		return nil, &DecodeError{Filename: f.Name, Err: err}
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCountResp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, &DecodeError{Filename: f.Name, Err: err}
	}

	base := f.BaseName()
	artifacts := make([]Artifact, 0, pageCountResp.PageCount)

	for i := 0; i < pageCountResp.PageCount; i++ {
		render, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
			DPI: pdfRenderDPI,
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{
					Document: doc.Document,
					Index:    i,
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("render page %d of %s: %w", i+1, f.Name, err)
		}

		// The render buffer belongs to the instance; copy the pixels out
		// before releasing it.
		img := imaging.Clone(render.Result.Image)
		render.Cleanup()

		encoded, err := s.e.encodeImage(img, targetFormat)
		if err != nil {
			return nil, fmt.Errorf("encode page %d of %s: %w", i+1, f.Name, err)
		}

		artifacts = append(artifacts, Artifact{
			Name: pageName(base, i+1, targetFormat),
			Data: encoded,
			MIME: mimeForFormat(targetFormat),
		})
	}

	return artifacts, nil
}
