/*
Copyright 2013 The Camlistore Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package build

import (
	"context"

	"go4.org/syncutil"
)

// Build walks scanRoot, sorts and spills the results to part files
// under a scratch directory, and k-way merges the parts into db. The
// walk and the part-file writer run concurrently: the walker blocks on
// a channel send whenever the writer falls behind, so memory use stays
// bounded by opts.MemLimit regardless of tree size.
//
// If the writer fails, the walk is canceled rather than run to
// completion and discarded.
func Build(db, scanRoot string, opts Options) error {
	opts = opts.withDefaults()

	dir, cleanup, err := scratchDir(opts.TempDir)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string)
	var parts []string

	var grp syncutil.Group
	grp.Go(func() error {
		defer close(batches)
		return walk(scanRoot, walkOptions{
			memLimit:   opts.MemLimit,
			removeRoot: opts.RemoveRoot,
		}, func(batch []string) bool {
			select {
			case batches <- batch:
				return true
			case <-ctx.Done():
				return false
			}
		})
	})
	grp.Go(func() error {
		got, err := sortToParts(dir, batches)
		if err != nil {
			// Unblock the walker, which may be waiting to send its next
			// batch, so it notices the abort instead of running to
			// completion for nothing.
			cancel()
			return err
		}
		parts = got
		return nil
	})
	if err := grp.Err(); err != nil {
		return err
	}

	return mergeParts(db, parts, opts.Compress)
}
