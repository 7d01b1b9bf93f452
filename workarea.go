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
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WithWorkArea allocates a uniquely-named scratch directory, invokes fn
// with its path, and removes the directory and all contents afterward no
// matter how fn returns. The directory is exclusively owned by the calling
// conversion; strategies that shell out to external processes must route
// every temporary path through this scope.
func WithWorkArea(fn func(dir string) error) error {
	dir := filepath.Join(os.TempDir(), "ezkito-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create work area: %w", err)
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}
