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
	"bufio"
	"container/heap"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kl/SearchAnywhere/pkg/codec"
)

// partReader holds one part file's buffered reader and its current,
// not-yet-consumed line.
type partReader struct {
	f    *os.File
	r    *bufio.Reader
	line string
	done bool
}

func openPartReader(path string) (*partReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open part file %q", path)
	}
	pr := &partReader{f: f, r: bufio.NewReader(f)}
	if err := pr.advance(); err != nil {
		f.Close()
		return nil, err
	}
	return pr, nil
}

// advance reads the next non-empty line into pr.line, skipping blank
// lines the way original_source's LineHolder does, and sets pr.done
// once the part file is exhausted.
func (pr *partReader) advance() error {
	for {
		line, err := pr.r.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			if line != "" {
				pr.line = line
				return nil
			}
		}
		if err != nil {
			pr.done = true
			pr.line = ""
			return nil
		}
	}
}

// partHeap is a min-heap of *partReader ordered by current line, used
// to drive the k-way merge. Exhausted readers are never pushed back.
type partHeap []*partReader

func (h partHeap) Len() int            { return len(h) }
func (h partHeap) Less(i, j int) bool  { return h[i].line < h[j].line }
func (h partHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *partHeap) Push(x interface{}) { *h = append(*h, x.(*partReader)) }
func (h *partHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// mergeParts k-way merges the already-sorted part files into db, in
// lexical order, optionally front-compressing each record against its
// predecessor. It creates db's parent directory if needed and always
// produces a database file, even when parts is empty.
func mergeParts(db string, parts []string, compress bool) (err error) {
	if dir := filepath.Dir(db); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create database dir %q", dir)
		}
	}

	out, err := os.Create(db)
	if err != nil {
		return errors.Wrapf(err, "create database %q", db)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if len(parts) == 0 {
		return nil
	}

	w := bufio.NewWriter(out)
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()

	h := make(partHeap, 0, len(parts))
	for _, p := range parts {
		pr, err := openPartReader(p)
		if err != nil {
			return err
		}
		if !pr.done {
			h = append(h, pr)
		} else {
			pr.f.Close()
		}
	}
	heap.Init(&h)

	var prev []byte
	var rec []byte
	for h.Len() > 0 {
		top := h[0]
		current := top.line

		if compress {
			rec = codec.Encode(rec[:0], prev, []byte(current))
		} else {
			rec = append(rec[:0], current...)
			rec = append(rec, '\n')
		}
		if _, err := w.Write(rec); err != nil {
			return errors.Wrap(err, "write database")
		}
		prev = append(prev[:0], current...)

		if err := top.advance(); err != nil {
			return err
		}
		if top.done {
			top.f.Close()
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}
	return nil
}
