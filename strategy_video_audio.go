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
)

// videoToAudioStrategy extracts the audio track from video containers via
// ffmpeg, encoding to mp3 or wav.
type videoToAudioStrategy struct {
	e *Engine
}

func (s *videoToAudioStrategy) Name() string { return "video_to_audio" }

func (s *videoToAudioStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	if s.e.caps.FFmpeg == "" {
		return nil, &ToolMissingError{Tool: "ffmpeg"}
	}

	var artifacts []Artifact
	err := WithWorkArea(func(dir string) error {
		var batchErr error
		artifacts, batchErr = s.e.runBatch(ctx, req.Files, func(ctx context.Context, idx int, f InputFile) (Artifact, error) {
			data, err := s.transcodeOne(ctx, dir, idx, f, req.TargetFormat)
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

func (s *videoToAudioStrategy) transcodeOne(ctx context.Context, workArea string, idx int, f InputFile, target string) ([]byte, error) {
	inputPath := filepath.Join(workArea, strconv.Itoa(idx)+"-"+filepath.Base(f.Name))
	if err := os.WriteFile(inputPath, f.Data, 0o600); err != nil {
		return nil, fmt.Errorf("stage input %s: %w", f.Name, err)
	}
	outputPath := filepath.Join(workArea, strconv.Itoa(idx)+"-out."+target)

	args := []string{"-y", "-i", inputPath, "-vn"}
	switch target {
	case "mp3":
		args = append(args, "-acodec", "libmp3lame", "-q:a", "2")
	case "wav":
		args = append(args, "-acodec", "pcm_s16le")
	}
	args = append(args, outputPath)

	if err := s.e.runTool(ctx, "ffmpeg", s.e.caps.FFmpeg, args...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, &OutputMissingError{Tool: "ffmpeg", Path: outputPath}
	}
	return data, nil
}
