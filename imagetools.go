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

// Image tool operations: resize, compress, crop, rotate/flip, and solid
// background fill. They share the InputFile/Outcome/Package pipeline with
// the conversion strategies but are independent of the capability matrix:
// any decodable raster image is accepted, and outputs keep the source
// format (JPEG stays JPEG, everything else is written as PNG).

package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// ResizeMode selects how target dimensions are specified.
type ResizeMode string

const (
	ResizeByDimensions ResizeMode = "wh"
	ResizeByPercent    ResizeMode = "percent"
)

// ResizeOptions controls ResizeImages.
type ResizeOptions struct {
	Mode      ResizeMode
	Width     int // target width in px (dimensions mode; 0 = keep)
	Height    int // target height in px (dimensions mode; 0 = keep)
	Percent   int // scale percentage (percent mode)
	KeepRatio bool
}

func (o ResizeOptions) validate() error {
	if o.Mode == ResizeByPercent {
		if o.Percent <= 0 {
			return fmt.Errorf("invalid resize values: percent must be positive")
		}
		return nil
	}
	if o.Width <= 0 && o.Height <= 0 {
		return fmt.Errorf("invalid resize values: width or height required")
	}
	return nil
}

// ResizeImages resizes every input with Lanczos resampling. One input
// yields a bare artifact, several yield a zip.
func ResizeImages(files []InputFile, opts ResizeOptions) (*Outcome, error) {
	if len(files) == 0 {
		return nil, &NoFilesError{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return eachImage(files, "resized_images.zip", func(img image.Image, format string) (image.Image, error) {
		w, h := resizeTarget(img.Bounds().Dx(), img.Bounds().Dy(), opts)
		return imaging.Resize(img, w, h, imaging.Lanczos), nil
	}, "_resized")
}

// resizeTarget computes the output dimensions, never letting either side
// collapse below one pixel.
func resizeTarget(srcW, srcH int, opts ResizeOptions) (int, int) {
	if opts.Mode == ResizeByPercent {
		return max(1, srcW*opts.Percent/100), max(1, srcH*opts.Percent/100)
	}

	w, h := opts.Width, opts.Height
	if opts.KeepRatio {
		switch {
		case w > 0 && h <= 0:
			return w, max(1, srcH*w/srcW)
		case h > 0 && w <= 0:
			return max(1, srcW*h/srcH), h
		}
	}
	if w <= 0 {
		w = srcW
	}
	if h <= 0 {
		h = srcH
	}
	return w, h
}

// CompressImages re-encodes inputs at reduced quality. JPEG sources use
// the given quality (1-95); all other sources are written as PNG.
func CompressImages(files []InputFile, quality int) (*Outcome, error) {
	if len(files) == 0 {
		return nil, &NoFilesError{}
	}
	if quality < 1 || quality > 95 {
		return nil, fmt.Errorf("quality must be between 1 and 95")
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		img, format, err := decodeToolImage(f)
		if err != nil {
			return nil, err
		}

		data, ext, err := encodeToolImage(img, format, quality)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Name, err)
		}
		artifacts = append(artifacts, Artifact{
			Name: f.BaseName() + "_compressed." + ext,
			Data: data,
			MIME: toolMIME(ext),
		})
	}

	return toolOutcome(artifacts, "compressed_images.zip"), nil
}

// CropImage crops a single image to the given rectangle. Coordinates are
// clamped to the image bounds; an empty result is rejected.
func CropImage(f InputFile, x, y, w, h int) (*Outcome, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid crop values")
	}

	img, format, err := decodeToolImage(f)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	left := max(0, x)
	top := max(0, y)
	right := min(b.Dx(), x+w)
	bottom := min(b.Dy(), y+h)
	if right <= left || bottom <= top {
		return nil, fmt.Errorf("crop area is out of bounds")
	}

	out := imaging.Crop(img, image.Rect(left, top, right, bottom))
	data, ext, err := encodeToolImage(out, format, 0)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.Name, err)
	}

	return &Outcome{Artifacts: []Artifact{{
		Name: f.BaseName() + "_cropped." + ext,
		Data: data,
		MIME: toolMIME(ext),
	}}}, nil
}

// RotateAction names a rotate/flip transform.
type RotateAction string

const (
	Rotate90  RotateAction = "rotate90" // clockwise
	Rotate180 RotateAction = "rotate180"
	Rotate270 RotateAction = "rotate270"
	FlipH     RotateAction = "flipH"
	FlipV     RotateAction = "flipV"
)

// RotateImage applies a rotate or flip action to a single image.
func RotateImage(f InputFile, action RotateAction) (*Outcome, error) {
	img, format, err := decodeToolImage(f)
	if err != nil {
		return nil, err
	}

	var out image.Image
	switch action {
	case Rotate90:
		// imaging rotates counter-clockwise; 270 CCW is 90 CW.
		out = imaging.Rotate270(img)
	case Rotate180:
		out = imaging.Rotate180(img)
	case Rotate270:
		out = imaging.Rotate90(img)
	case FlipH:
		out = imaging.FlipH(img)
	case FlipV:
		out = imaging.FlipV(img)
	default:
		return nil, fmt.Errorf("unknown action: %s", action)
	}

	data, ext, err := encodeToolImage(out, format, 0)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.Name, err)
	}

	return &Outcome{Artifacts: []Artifact{{
		Name: fmt.Sprintf("%s_%s.%s", f.BaseName(), action, ext),
		Data: data,
		MIME: toolMIME(ext),
	}}}, nil
}

// BackgroundColorImages composites each input over a solid background
// color given as a hex string ("#ffffff"). Output format is png or jpg.
func BackgroundColorImages(files []InputFile, hexColor, outFormat string) (*Outcome, error) {
	if len(files) == 0 {
		return nil, &NoFilesError{}
	}
	outFormat = strings.ToLower(outFormat)
	if outFormat != "png" && outFormat != "jpg" {
		return nil, fmt.Errorf("output format must be png or jpg")
	}
	bg, err := parseHexColor(hexColor)
	if err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		img, _, err := decodeToolImage(f)
		if err != nil {
			return nil, err
		}

		canvas := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), bg)
		composited := imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

		data, ext, err := encodeToolImage(composited, formatForExt(outFormat), 92)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Name, err)
		}
		artifacts = append(artifacts, Artifact{
			Name: f.BaseName() + "_bg." + ext,
			Data: data,
			MIME: toolMIME(ext),
		})
	}

	return toolOutcome(artifacts, "bg_color_images.zip"), nil
}

// eachImage runs a transform over every file, preserving each source's
// format, and assembles the outcome.
func eachImage(files []InputFile, zipName string, transform func(image.Image, string) (image.Image, error), suffix string) (*Outcome, error) {
	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		img, format, err := decodeToolImage(f)
		if err != nil {
			return nil, err
		}

		out, err := transform(img, format)
		if err != nil {
			return nil, err
		}

		data, ext, err := encodeToolImage(out, format, 0)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Name, err)
		}
		artifacts = append(artifacts, Artifact{
			Name: f.BaseName() + suffix + "." + ext,
			Data: data,
			MIME: toolMIME(ext),
		})
	}
	return toolOutcome(artifacts, zipName), nil
}

func toolOutcome(artifacts []Artifact, zipName string) *Outcome {
	if len(artifacts) == 1 {
		return &Outcome{Artifacts: artifacts}
	}
	return &Outcome{Artifacts: artifacts, ArchiveName: zipName}
}

// decodeToolImage decodes any registered raster format and reports which
// one it was ("jpeg", "png", ...).
func decodeToolImage(f InputFile) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, "", &DecodeError{Filename: f.Name, Err: err}
	}
	return img, format, nil
}

// encodeToolImage writes img back out in its source format. JPEG sources
// stay JPEG (flattened to RGB); every other source format is written as
// PNG. quality 0 means the default of 92.
func encodeToolImage(img image.Image, format string, quality int) ([]byte, string, error) {
	if quality == 0 {
		quality = 92
	}

	var buf bytes.Buffer
	if format == "jpeg" {
		err := imaging.Encode(&buf, imaging.Clone(img), imaging.JPEG,
			imaging.JPEGQuality(quality))
		return buf.Bytes(), "jpg", err
	}
	err := imaging.Encode(&buf, img, imaging.PNG)
	return buf.Bytes(), "png", err
}

// formatForExt maps an output extension back to an image.Decode format
// name for encodeToolImage.
func formatForExt(ext string) string {
	if ext == "jpg" || ext == "jpeg" {
		return "jpeg"
	}
	return ext
}

func toolMIME(ext string) string {
	if m := mimeForFormat(ext); m != "" {
		return m
	}
	return "image/" + ext
}

// parseHexColor parses "#rrggbb" (leading # optional).
func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
