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

	"golang.org/x/sync/errgroup"
)

// runBatch converts every input file with fn, at most e.workers at a time.
// Results come back in input order regardless of completion order; the
// first failure cancels the group and aborts the batch, so a partial
// result set never reaches the packager.
func (e *Engine) runBatch(ctx context.Context, files []InputFile, fn func(ctx context.Context, idx int, f InputFile) (Artifact, error)) ([]Artifact, error) {
	results := make([]Artifact, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			a, err := fn(ctx, i, f)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
