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
	"os/exec"
)

// Capabilities holds resolved paths to the external tools the subprocess
// strategies depend on. An empty path means the tool is unavailable and the
// dependent strategies will return ToolMissingError.
type Capabilities struct {
	// Soffice is the LibreOffice binary used for office→PDF rendering.
	Soffice string
	// FFmpeg is the transcoder used for the video and audio strategies.
	FFmpeg string
}

// DetectCapabilities probes PATH for the external tools. It runs once at
// engine construction.
func DetectCapabilities() Capabilities {
	return Capabilities{
		// Debian installs the CLI as soffice; some distros only ship the
		// libreoffice wrapper.
		Soffice: findTool("soffice", "libreoffice"),
		FFmpeg:  findTool("ffmpeg"),
	}
}

func findTool(names ...string) string {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// runTool executes an external tool under the engine's per-invocation
// timeout. A non-zero exit (or a timeout kill) comes back as a
// ToolFailedError carrying the stderr tail.
func (e *Engine) runTool(ctx context.Context, label, path string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, e.toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.logger.Debug("running external tool", "tool", label, "path", path, "args", args)
	if err := cmd.Run(); err != nil {
		return &ToolFailedError{Tool: label, Stderr: stderrTail(&stderr), Err: err}
	}
	return nil
}

// stderrTail keeps the last part of a tool's stderr; full transcoder logs
// are too noisy for a user-facing message.
func stderrTail(buf *bytes.Buffer) string {
	const max = 512
	s := buf.String()
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}
