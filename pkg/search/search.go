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

// Package search implements the single-pass streaming search over an
// anlocate database: decompress each record against the carried-forward
// previous path and test it against a conjunction of include/exclude
// substring queries.
package search

import (
	"bufio"
	"unicode/utf8"

	"github.com/kl/SearchAnywhere/pkg/codec"
	"github.com/kl/SearchAnywhere/pkg/dbrecord"
	"github.com/kl/SearchAnywhere/pkg/locateerr"
	"github.com/kl/SearchAnywhere/pkg/match"
)

// Kind distinguishes an include query from an exclude one.
type Kind int

const (
	// Include requires the path to contain the needle.
	Include Kind = iota
	// Exclude requires the path to NOT contain the needle.
	Exclude
)

// Query is one term of the conjunction a path must satisfy to be a hit.
type Query struct {
	Needle string
	Kind   Kind

	// ascii caches whether Needle is pure ASCII, computed once by
	// NewQuery rather than per candidate path.
	ascii bool
}

// NewQuery builds a Query, precomputing the needle's ASCII fast-path
// flag once.
func NewQuery(needle string, kind Kind) Query {
	return Query{Needle: needle, Kind: kind, ascii: match.IsASCII(needle)}
}

// Search streams the database read from r and returns every path that
// satisfies every query in the conjunction: every Include query must
// find a hit, and no Exclude query may find one. An empty queries slice
// returns an empty, nil-error result immediately without reading r.
func Search(r *bufio.Reader, queries []Query) ([]string, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	var matches []string
	var prevLocal string
	havePrevLocal := false

	buf, n, err := dbrecord.ReadLine(r, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return matches, nil
	}
	first, err := decodeUTF8(nil, buf)
	if err != nil {
		return nil, err
	}
	if matchesAll(first, queries) {
		matches = append(matches, first)
	} else {
		prevLocal, havePrevLocal = first, true
	}

	var entryBuf []byte
	for {
		entryBuf = entryBuf[:0]
		entryBuf, n, err = dbrecord.ReadEntry(r, entryBuf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		record := entryBuf[:len(entryBuf)-1] // drop the terminator

		var prev string
		if havePrevLocal {
			prev = prevLocal
		} else {
			prev = matches[len(matches)-1]
		}

		curr, err := decodeUTF8([]byte(prev), record)
		if err != nil {
			return nil, err
		}

		if matchesAll(curr, queries) {
			matches = append(matches, curr)
			havePrevLocal = false
			prevLocal = ""
		} else {
			prevLocal, havePrevLocal = curr, true
		}
	}
	return matches, nil
}

func matchesAll(path string, queries []Query) bool {
	for _, q := range queries {
		hit := match.CaselessContains(path, q.Needle, q.ascii)
		switch q.Kind {
		case Include:
			if !hit {
				return false
			}
		case Exclude:
			if hit {
				return false
			}
		}
	}
	return true
}

func decodeUTF8(prevFull, record []byte) (string, error) {
	full := codec.Decode(prevFull, record)
	if !utf8.Valid(full) {
		return "", locateerr.New(locateerr.Encoding, "database record is not valid UTF-8")
	}
	return string(full), nil
}
