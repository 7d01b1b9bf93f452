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
	"image"

	"github.com/disintegration/imaging"
)

// imageToImageStrategy re-encodes images between the raster formats in the
// image family (png/jpg/jpeg, self-pairs included).
type imageToImageStrategy struct {
	e *Engine
}

func (s *imageToImageStrategy) Name() string { return "image_to_image" }

func (s *imageToImageStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	artifacts, err := s.e.runBatch(ctx, req.Files, func(_ context.Context, _ int, f InputFile) (Artifact, error) {
		img, err := decodeInputImage(f)
		if err != nil {
			return Artifact{}, err
		}
		data, err := s.e.encodeImage(img, req.TargetFormat)
		if err != nil {
			return Artifact{}, fmt.Errorf("encode %s: %w", f.Name, err)
		}
		return Artifact{
			Name: outputName(f.BaseName(), req.TargetFormat),
			Data: data,
			MIME: mimeForFormat(req.TargetFormat),
		}, nil
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

// decodeInputImage decodes an input file, wrapping failures so the user
// sees which file broke the batch.
func decodeInputImage(f InputFile) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, &DecodeError{Filename: f.Name, Err: err}
	}
	return img, nil
}

// encodeImage writes img in the given format. JPEG has no alpha channel,
// so anything non-RGB is flattened first; imaging.Clone yields NRGBA which
// the JPEG encoder converts on write.
func (e *Engine) encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "jpg", "jpeg":
		err = imaging.Encode(&buf, imaging.Clone(img), imaging.JPEG,
			imaging.JPEGQuality(e.jpegQuality))
	default:
		err = fmt.Errorf("unsupported image output format: %s", format)
	}

	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
