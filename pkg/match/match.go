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

// Package match implements anlocate's case-insensitive substring test,
// the same "fold then compare" shape as perkeep's pkg/strutil.ContainsFold,
// but with an explicit ASCII fast path and genuine Unicode simple case
// folding (no normalization) on the slow path, as anlocate's search
// conjunction requires.
package match

import (
	"golang.org/x/text/cases"
)

var unicodeFold = cases.Fold()

// CaselessContains reports whether haystack contains needle under
// case-insensitive comparison. needleASCII should be the caller's
// precomputed answer to "is needle pure ASCII" (searchers typically
// compute this once per query rather than once per candidate path).
//
// Matching slides a window across haystack at every codepoint boundary;
// a window is only compared when it spans exactly len(needle) bytes and
// ends on a codepoint boundary too, so multi-byte runes are never split.
// An empty needle never matches.
func CaselessContains(haystack, needle string, needleASCII bool) bool {
	if len(needle) == 0 {
		return false
	}

	foldedNeedle := foldString(needle, needleASCII)
	needleLen := len(needle)

	for i := range haystack {
		if len(haystack)-i < needleLen {
			break
		}
		end := i + needleLen
		if !isBoundary(haystack, end) {
			continue
		}
		window := haystack[i:end]
		if foldString(window, needleASCII) == foldedNeedle {
			return true
		}
	}
	return false
}

// isBoundary reports whether byte offset i in s is either the end of s
// or the start of a rune (i.e. not a UTF-8 continuation byte).
func isBoundary(s string, i int) bool {
	if i == len(s) {
		return true
	}
	return s[i]&0xC0 != 0x80
}

func foldString(s string, ascii bool) string {
	if ascii {
		return asciiFold(s)
	}
	return unicodeFold.String(s)
}

// asciiFold lower-cases the ASCII letters in s byte-for-byte, leaving
// every other byte (including multi-byte UTF-8 sequences) untouched.
// This is the fast path used when the query needle is known to be pure
// ASCII, avoiding a full Unicode case-folding pass on every candidate
// window.
func asciiFold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// IsASCII reports whether s contains only ASCII bytes. Callers use this
// to precompute a query's needleASCII flag once.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
