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

import "strings"

// Family is the broad content category a format belongs to. Formats in the
// same family share a conversion capability.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyImage
	FamilyDocument
	FamilyPDF
	FamilyText
	FamilyAudio
	FamilyVideo
)

func (f Family) String() string {
	switch f {
	case FamilyImage:
		return "image"
	case FamilyDocument:
		return "document"
	case FamilyPDF:
		return "pdf"
	case FamilyText:
		return "text"
	case FamilyAudio:
		return "audio"
	case FamilyVideo:
		return "video"
	default:
		return "unknown"
	}
}

// families maps each known format token to its family. Family membership is
// derived by lookup here and never stored anywhere else.
var families = map[string]Family{
	"png":  FamilyImage,
	"jpg":  FamilyImage,
	"jpeg": FamilyImage,

	"docx": FamilyDocument,
	"pptx": FamilyDocument,
	"xlsx": FamilyDocument,

	"txt": FamilyText,

	"pdf": FamilyPDF,

	"mp4": FamilyVideo,
	"mov": FamilyVideo,
	"avi": FamilyVideo,
	"mkv": FamilyVideo,

	"mp3": FamilyAudio,
	"wav": FamilyAudio,
	"m4a": FamilyAudio,
	"aac": FamilyAudio,
	"ogg": FamilyAudio,
}

type formatPair struct {
	from string
	to   string
}

// supportedConversions is the capability matrix: the literal set of
// admissible (source, target) pairs, enumerated explicitly rather than
// derived from family cross-products. mp4→mkv is absent even though both
// are video formats, because no strategy implements video-to-video.
var supportedConversions = buildMatrix()

func buildMatrix() map[formatPair]bool {
	m := make(map[formatPair]bool)

	images := []string{"png", "jpg", "jpeg"}
	docs := []string{"docx", "pptx", "xlsx", "txt"}
	videos := []string{"mp4", "mov", "avi", "mkv"}
	audios := []string{"mp3", "wav", "m4a", "aac", "ogg"}

	// Image ↔ Image, self-pairs included (png→png is a valid re-encode).
	for _, from := range images {
		for _, to := range images {
			m[formatPair{from, to}] = true
		}
	}

	// Image → PDF.
	for _, from := range images {
		m[formatPair{from, "pdf"}] = true
	}

	// Document / text → PDF.
	for _, from := range docs {
		m[formatPair{from, "pdf"}] = true
	}

	// PDF → Image.
	for _, to := range images {
		m[formatPair{"pdf", to}] = true
	}

	// Video → Audio (mp3/wav only).
	for _, from := range videos {
		m[formatPair{from, "mp3"}] = true
		m[formatPair{from, "wav"}] = true
	}

	// Audio → Video (mp4 only).
	for _, from := range audios {
		m[formatPair{from, "mp4"}] = true
	}

	return m
}

// FamilyOf returns the family of a format token, or FamilyUnknown for
// formats outside the registry. Lookup is case-insensitive.
func FamilyOf(format string) Family {
	return families[strings.ToLower(format)]
}

// IsSupported reports whether the (source, target) pair is in the
// capability matrix.
func IsSupported(source, target string) bool {
	return supportedConversions[formatPair{
		from: strings.ToLower(source),
		to:   strings.ToLower(target),
	}]
}

// SupportedPairs returns a copy of the capability matrix, for menu
// rendering by callers. Order is unspecified.
func SupportedPairs() [][2]string {
	pairs := make([][2]string, 0, len(supportedConversions))
	for p := range supportedConversions {
		pairs = append(pairs, [2]string{p.from, p.to})
	}
	return pairs
}

// mimeForFormat returns the MIME type for a format token, or "" when the
// format has no static mapping.
func mimeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "pdf":
		return "application/pdf"
	case "txt":
		return "text/plain"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "m4a":
		return "audio/mp4"
	case "aac":
		return "audio/aac"
	case "ogg":
		return "audio/ogg"
	case "mp4":
		return "video/mp4"
	case "mov":
		return "video/quicktime"
	case "avi":
		return "video/x-msvideo"
	case "mkv":
		return "video/x-matroska"
	case "zip":
		return "application/zip"
	}
	return ""
}
