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
	"archive/zip"
	"bytes"
	"fmt"
)

// Output-name suffixes. These are load-bearing: existing automation keys
// on them, so they must not change.
const (
	brandSuffix     = "_ezkito"
	mergedSuffix    = "_merged" + brandSuffix
	separatedSuffix = "_separated" + brandSuffix
	convertedSuffix = "_converted" + brandSuffix
)

// outputName builds "{base}{suffix}.{ext}" with the standard brand suffix.
func outputName(base, ext string) string {
	return base + brandSuffix + "." + ext
}

// pageName builds "{base}_page{n}_ezkito.{ext}" for per-page artifacts.
// Page numbers start at 1.
func pageName(base string, page int, ext string) string {
	return fmt.Sprintf("%s_page%d%s.%s", base, page, brandSuffix, ext)
}

// zipArchive assembles artifacts into a DEFLATE-compressed zip, preserving
// the given order.
func zipArchive(artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, a := range artifacts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   a.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", a.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
