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

// Package codec implements anlocate's front-compression record format:
// each record is stored as a variable-length common-prefix count with the
// immediately preceding record, followed by the suffix bytes and a
// newline terminator.
//
// The count header's encoding exists to let a reader recover record
// boundaries with plain read-until-newline calls: byte 0xA (the
// terminator) can never appear as the first byte of a header, because a
// common-prefix count of 10 is special-cased to the reserved marker 251
// instead of being written as the literal byte 10.
package codec

import "encoding/binary"

// Newline is the record terminator.
const Newline = '\n'

// Header byte values from the count-header table.
const (
	maxLiteral  = 250 // 0..=250 encode themselves
	newlineMark = 251 // reserved: means k == 10
	oneExtra    = 252 // one extra byte, value in 251..=255
	twoExtra    = 253 // two extra little-endian bytes (u16)
	threeExtra  = 254 // three extra little-endian bytes (u24)
	fourExtra   = 255 // four extra little-endian bytes (u32)
)

// newlineValue is the common-prefix count that triggers the ambiguity
// the newlineMark header exists to avoid: writing it literally as a
// single byte would place 0x0A (the terminator byte) at the start of the
// record.
const newlineValue = '\n' // 10

// EncodeHeader appends the minimal-width count header for k to dst and
// returns the result.
func EncodeHeader(dst []byte, k uint32) []byte {
	switch {
	case k == newlineValue:
		return append(dst, newlineMark)
	case k <= maxLiteral:
		return append(dst, byte(k))
	case k <= 255:
		return append(dst, oneExtra, byte(k))
	case k <= 0xFFFF:
		return append(dst, twoExtra, byte(k), byte(k>>8))
	case k <= 0xFFFFFF:
		return append(dst, threeExtra, byte(k), byte(k>>8), byte(k>>16))
	default:
		return append(dst, fourExtra, byte(k), byte(k>>8), byte(k>>16), byte(k>>24))
	}
}

// DecodeHeader parses the count header starting at src[0] and returns the
// decoded common-prefix count k and the offset into src where the
// record's suffix bytes begin. DecodeHeader panics if src is empty or
// truncated; callers are expected to use dbrecord.ReadEntry, which never
// hands codec a truncated header.
func DecodeHeader(src []byte) (k uint32, offset int) {
	switch b0 := src[0]; b0 {
	case newlineMark:
		return newlineValue, 1
	case oneExtra:
		return uint32(src[1]), 2
	case twoExtra:
		return uint32(binary.LittleEndian.Uint16(src[1:3])), 3
	case threeExtra:
		return uint32(src[1]) | uint32(src[2])<<8 | uint32(src[3])<<16, 4
	case fourExtra:
		return binary.LittleEndian.Uint32(src[1:5]), 5
	default:
		return uint32(b0), 1
	}
}

// CommonPrefixLen returns the number of leading bytes a and b share.
func CommonPrefixLen(a, b []byte) uint32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var i int
	for i = 0; i < n; i++ {
		if a[i] != b[i] {
			break
		}
	}
	return uint32(i)
}

// Encode appends the compressed record for current, given the previous
// full record prevFull, to dst, including the trailing newline
// terminator. prevFull must be nil or empty for the first record.
func Encode(dst []byte, prevFull, current []byte) []byte {
	k := CommonPrefixLen(prevFull, current)
	dst = EncodeHeader(dst, k)
	dst = append(dst, current[k:]...)
	dst = append(dst, Newline)
	return dst
}

// Decode reconstructs the full current record from the previous full
// record prevFull and a compressed record (without its trailing
// newline). The returned slice is freshly allocated and shares no memory
// with prevFull or record.
func Decode(prevFull, record []byte) []byte {
	k, offset := DecodeHeader(record)
	out := make([]byte, 0, int(k)+len(record)-offset)
	out = append(out, prevFull[:k]...)
	out = append(out, record[offset:]...)
	return out
}
