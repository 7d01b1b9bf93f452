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

	"github.com/disintegration/imaging"
)

// audioToVideoStrategy turns audio files into mp4 videos by compositing
// the track over a fixed-size solid-color still background. The background
// image is generated once per work area and reused across the whole batch.
type audioToVideoStrategy struct {
	e *Engine
}

func (s *audioToVideoStrategy) Name() string { return "audio_to_video" }

func (s *audioToVideoStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	if s.e.caps.FFmpeg == "" {
		return nil, &ToolMissingError{Tool: "ffmpeg"}
	}

	var artifacts []Artifact
	err := WithWorkArea(func(dir string) error {
		bgPath, err := s.writeBackground(dir)
		if err != nil {
			return err
		}

		var batchErr error
		artifacts, batchErr = s.e.runBatch(ctx, req.Files, func(ctx context.Context, idx int, f InputFile) (Artifact, error) {
			data, err := s.transcodeOne(ctx, dir, bgPath, idx, f, req.TargetFormat)
			if err != nil {
				return Artifact{}, err
			}
			return Artifact{
				Name: outputName(f.BaseName(), req.TargetFormat),
				Data: data,
				MIME: mimeForFormat(req.TargetFormat),
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

// writeBackground renders the still background into the work area. It must
// exist before any transcode starts.
func (s *audioToVideoStrategy) writeBackground(workArea string) (string, error) {
	bg := imaging.New(s.e.bgWidth, s.e.bgHeight, s.e.bgColor)
	path := filepath.Join(workArea, "background.png")
	if err := imaging.Save(bg, path); err != nil {
		return "", fmt.Errorf("write background image: %w", err)
	}
	return path, nil
}

func (s *audioToVideoStrategy) transcodeOne(ctx context.Context, workArea, bgPath string, idx int, f InputFile, target string) ([]byte, error) {
	inputPath := filepath.Join(workArea, strconv.Itoa(idx)+"-"+filepath.Base(f.Name))
	if err := os.WriteFile(inputPath, f.Data, 0o600); err != nil {
		return nil, fmt.Errorf("stage input %s: %w", f.Name, err)
	}
	outputPath := filepath.Join(workArea, strconv.Itoa(idx)+"-out."+target)

	// Loop the still frame for the duration of the audio track; -shortest
	// clamps the video stream to the audio length.
	args := []string{
		"-y",
		"-loop", "1",
		"-i", bgPath,
		"-i", inputPath,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	}

	if err := s.e.runTool(ctx, "ffmpeg", s.e.caps.FFmpeg, args...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, &OutputMissingError{Tool: "ffmpeg", Path: outputPath}
	}
	return data, nil
}
