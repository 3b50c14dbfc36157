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

// Package dbrecord implements the byte-stream primitives used to read
// anlocate database files: a plain read-until-newline for part files, and
// a record-aware read that re-synchronizes across newline bytes that
// happen to fall inside a multi-byte count header.
package dbrecord

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/kl/SearchAnywhere/pkg/locateerr"
)

// ReadLine appends bytes up to and including the next newline to buf,
// strips the terminator, and returns buf and the number of bytes
// consumed from r (including the terminator). A return of 0 bytes
// consumed with a nil error means r is at EOF.
func ReadLine(r *bufio.Reader, buf []byte) ([]byte, int, error) {
	buf, n, err := ReadLineKeepNewline(r, buf)
	if err != nil || n == 0 {
		return buf, n, err
	}
	if last := len(buf) - 1; buf[last] == '\n' {
		buf = buf[:last]
	}
	return buf, n, nil
}

// headerMinLen reports the header length that header byte b0 implies
// when the header can contain an embedded 0x0A (0 otherwise); a complete
// record must be strictly longer than it. Only 253, 254 and 255 can contain
// an embedded 0x0A in their extra header bytes; every other header byte
// is self-delimiting.
func headerMinLen(b0 byte) int {
	switch b0 {
	case 253:
		return 3
	case 254:
		return 4
	case 255:
		return 5
	default:
		return 0
	}
}

// ReadEntry appends one complete compressed record, including its
// trailing newline terminator, to buf. It first reads up to the next
// newline; if the record's header byte is 253, 254 or 255, that newline
// may actually be a 0x0A value inside the header's little-endian count
// rather than the terminator, so ReadEntry keeps reading (and
// concatenating) until the accumulated buffer is long enough to contain
// the full header.
//
// A return of 0 bytes appended with a nil error means r is at EOF. A
// record that never reaches the required length before EOF is reported
// as IO wrapping io.ErrUnexpectedEOF.
func ReadEntry(r *bufio.Reader, buf []byte) ([]byte, int, error) {
	start := len(buf)
	chunk, n, err := ReadLineKeepNewline(r, buf)
	if err != nil {
		return buf, 0, err
	}
	buf = chunk
	if n == 0 {
		return buf, 0, nil
	}
	total := n
	for {
		record := buf[start:]
		if complete(record) {
			return buf, total, nil
		}
		more, mn, err := ReadLineKeepNewline(r, buf)
		if err != nil {
			return buf, 0, err
		}
		if mn == 0 {
			return buf, 0, locateerr.Wrap(locateerr.IO, io.ErrUnexpectedEOF, "truncated database record")
		}
		buf = more
		total += mn
	}
}

// ReadLineKeepNewline is like ReadLine but retains the terminator byte in
// the appended output; it is the primitive ReadEntry uses to
// incrementally extend a record across embedded newline-valued header
// bytes. Bytes read but never followed by a real terminator before EOF
// are a truncated record, not a successful unterminated line, and are
// reported as IO wrapping io.ErrUnexpectedEOF.
func ReadLineKeepNewline(r *bufio.Reader, buf []byte) ([]byte, int, error) {
	line, err := r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return buf, 0, nil
		}
		return buf, 0, locateerr.Wrap(locateerr.IO, io.ErrUnexpectedEOF, "truncated database record")
	}
	if err != nil {
		return buf, 0, locateerr.Wrap(locateerr.IO, errors.WithStack(err), "reading database entry")
	}
	buf = append(buf, line...)
	return buf, len(line), nil
}

// complete reports whether record is a full entry: long enough to be
// past any newline-valued byte embedded in a multi-byte header, and
// actually terminated by a real 0x0A rather than merely long enough.
func complete(record []byte) bool {
	need := headerMinLen(record[0])
	if need == 0 {
		need = 1
	}
	return len(record) > need && record[len(record)-1] == '\n'
}
