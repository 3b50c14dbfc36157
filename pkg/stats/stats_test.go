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

package stats

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

// goldenDatabaseWithEmbeddedNewline reproduces the eight-record database
// used by original_source's own stat and search tests: it extends the
// seven-path build golden vector with one extra synthetic record whose
// header (253, 10, 1) embeds the newline byte value inside its
// little-endian count, exercising dbrecord.ReadEntry's re-synchronizing
// read alongside the plain records.
func goldenDatabaseWithEmbeddedNewline() []byte {
	long := strings.Repeat("has/common/prefix/that/is/longer/than/251/bytes/long/", 5)
	var db []byte
	db = append(db, 0x00)
	db = append(db, "/usr/src"...)
	db = append(db, '\n')
	db = append(db, 0x08)
	db = append(db, "/cmd/aardvark.c"...)
	db = append(db, '\n')
	db = append(db, 0x0E)
	db = append(db, "rmadillo.c"...)
	db = append(db, '\n')
	db = append(db, 0x05)
	db = append(db, "tmp/zoo"...)
	db = append(db, '\n')
	db = append(db, 0x01)
	db = append(db, ("x/" + long + "file1.sh")...)
	db = append(db, '\n')
	db = append(db, 0xFD, 0x10, 0x01)
	db = append(db, "2.jpg"...)
	db = append(db, '\n')
	db = append(db, 0xFD, 0x0A, 0x01)
	db = append(db, "xax"...)
	db = append(db, '\n')
	db = append(db, 0xFB)
	db = append(db, '?')
	db = append(db, '\n')
	return db
}

func TestScan(t *testing.T) {
	db := goldenDatabaseWithEmbeddedNewline()
	got, err := Scan(bufio.NewReader(bytes.NewReader(db)))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := Stats{IndexedFiles: 8, SizeBytes: uint64(len(db))}
	if got != want {
		t.Errorf("Scan() = %+v; want %+v", got, want)
	}
}

func TestScanEmptyDatabase(t *testing.T) {
	got, err := Scan(bufio.NewReader(bytes.NewReader(nil)))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got != (Stats{}) {
		t.Errorf("Scan(empty) = %+v; want zero value", got)
	}
}
