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
	"github.com/gabriel-vasile/mimetype"
)

// Response is the packaged result handed back to the transport layer: one
// named byte stream with one content type, ready for an attachment reply.
type Response struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Package maps an outcome to a response descriptor. Archive outcomes are
// assembled into a DEFLATE zip and always typed application/zip; single
// artifacts keep their format MIME, with content sniffing as the fallback
// for anything unmapped.
func Package(outcome *Outcome) (*Response, error) {
	if outcome.IsArchive() {
		data, err := zipArchive(outcome.Artifacts)
		if err != nil {
			return nil, err
		}
		return &Response{
			Data:        data,
			Filename:    outcome.ArchiveName,
			ContentType: "application/zip",
		}, nil
	}

	a := outcome.Artifacts[0]
	ct := a.MIME
	if ct == "" {
		ct = mimetype.Detect(a.Data).String()
	}
	return &Response{
		Data:        a.Data,
		Filename:    a.Name,
		ContentType: ct,
	}, nil
}
