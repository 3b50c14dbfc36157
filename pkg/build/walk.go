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
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kl/SearchAnywhere/pkg/locateerr"
)

// pathBufOverhead approximates the bookkeeping overhead (the string
// header: a pointer and a length) of carrying one path in a batch,
// mirroring original_source's use of mem::size_of::<PathBuf>() alongside
// the raw byte length when deciding whether the in-memory batch has
// grown too large to keep buffering.
const pathBufOverhead = 16

// flushFunc receives one batch of walked paths. It returns false to abort
// the walk early, e.g. because the consumer (the sorter's part-file
// writer) failed or the caller's context was canceled.
type flushFunc func(batch []string) (ok bool)

// walkOptions configures one walk.
type walkOptions struct {
	// memLimit bounds how many bytes of path data (plus overhead) are
	// buffered before flush is called.
	memLimit int
	// removeRoot strips the root prefix (plus separator) from every
	// emitted path.
	removeRoot bool
}

// walk recursively visits every entry under root depth-first (os.ReadDir
// already returns each directory's entries sorted by name, though the
// overall traversal order is not a global sort — the sorter stage takes
// care of that), batching emitted paths and calling flush whenever
// adding the next path would bring the batch's approximate in-memory
// size to opts.memLimit or beyond. Any
// directory that cannot be read because of a permission error is
// skipped rather than aborting the whole walk; any other read error
// aborts it. A directory with no entries is itself emitted as a leaf
// path, matching locate's traditional behavior of indexing empty
// directories.
//
// The final, possibly short, batch is flushed once the walk completes
// unless flush already returned false.
func walk(root string, opts walkOptions, flush flushFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "stat scan root %q", root)
	}
	if !info.IsDir() {
		return locateerr.Wrapf(locateerr.InvalidArgument, errors.New("not a directory"), "scan root %q", root)
	}

	var prefix string
	if opts.removeRoot {
		prefix = filepath.Clean(root) + string(filepath.Separator)
	}

	w := &walker{opts: opts, flush: flush, prefix: prefix}
	aborted, err := w.dir(root)
	if err != nil {
		return err
	}
	if !aborted && len(w.batch) > 0 {
		if !flush(w.batch) {
			return nil
		}
	}
	return nil
}

type walker struct {
	opts   walkOptions
	flush  flushFunc
	prefix string

	batch    []string
	batchLen int
}

func (w *walker) stripRoot(path string) string {
	if w.prefix == "" {
		return path
	}
	// path == the cleaned root itself (no trailing separator) is one
	// byte shorter than w.prefix; that's an exact match on the root,
	// which strips to the empty string rather than panicking.
	if len(path) < len(w.prefix) {
		return ""
	}
	rel := path[len(w.prefix):]
	if rel == "" {
		return "."
	}
	return rel
}

// dir walks one directory. The returned bool reports whether the walk
// was aborted by flush returning false; once true it propagates all the
// way back up without doing further work.
func (w *walker) dir(path string) (aborted bool, err error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read directory %q", path)
	}

	if len(entries) == 0 {
		return w.emit(path)
	}

	for _, ent := range entries {
		child := filepath.Join(path, ent.Name())
		if ent.IsDir() {
			aborted, err = w.dir(child)
			if aborted || err != nil {
				return aborted, err
			}
			continue
		}
		aborted, err = w.emit(child)
		if aborted || err != nil {
			return aborted, err
		}
	}
	return false, nil
}

// emit adds one path to the current batch, flushing first if adding it
// would reach or exceed the memory limit.
func (w *walker) emit(path string) (aborted bool, err error) {
	out := w.stripRoot(path)
	elemSize := len(out) + pathBufOverhead
	if w.batchLen+elemSize >= w.opts.memLimit && len(w.batch) > 0 {
		if !w.flush(w.batch) {
			return true, nil
		}
		w.batch = nil
		w.batchLen = 0
	}
	w.batch = append(w.batch, out)
	w.batchLen += elemSize
	return false, nil
}
