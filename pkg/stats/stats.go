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

// Package stats implements the trivial record/byte-count pass over an
// anlocate database, the Go home for the bindings surface's
// get_stat_indexed_files contract (spec.md §6) and original_source's
// anlocate/src/stat.rs.
package stats

import (
	"bufio"

	"github.com/kl/SearchAnywhere/pkg/dbrecord"
)

// Stats is the result of a linear scan over a database file.
type Stats struct {
	IndexedFiles uint64
	SizeBytes    uint64
}

// Scan reads every record from r with dbrecord.ReadEntry and returns the
// record count and total byte count.
func Scan(r *bufio.Reader) (Stats, error) {
	var s Stats
	var buf []byte
	for {
		buf = buf[:0]
		var n int
		var err error
		buf, n, err = dbrecord.ReadEntry(r, buf)
		if err != nil {
			return Stats{}, err
		}
		if n == 0 {
			break
		}
		s.IndexedFiles++
		s.SizeBytes += uint64(n)
	}
	return s, nil
}
