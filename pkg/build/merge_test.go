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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kl/SearchAnywhere/pkg/dbrecord"
)

func writeParts(t *testing.T, dir string, parts [][]string) []string {
	t.Helper()
	var paths []string
	for i, p := range parts {
		path, err := writePartFile(dir, i, append([]string(nil), p...))
		if err != nil {
			t.Fatalf("writePartFile: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func readPaths(t *testing.T, db string) []string {
	t.Helper()
	f, err := os.Open(db)
	if err != nil {
		t.Fatalf("open %q: %v", db, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var got []string
	var prev []byte
	var buf []byte
	for {
		buf = buf[:0]
		var n int
		buf, n, err = dbrecord.ReadEntry(r, buf)
		if err != nil {
			t.Fatalf("ReadEntry: %v", err)
		}
		if n == 0 {
			break
		}
		record := buf[:len(buf)-1]
		full := decodeForTest(prev, record)
		got = append(got, string(full))
		prev = append(prev[:0], full...)
	}
	return got
}

// decodeForTest is a self-contained stand-in for codec.Decode covering
// the header bytes 0..=252. It only reads compressed databases: records
// of an uncompressed database carry no header byte, so their first path
// byte would be taken as a count.
func decodeForTest(prevFull, record []byte) []byte {
	k, offset := 0, 0
	b0 := record[0]
	switch {
	case b0 <= 250:
		k = int(b0)
		offset = 1
	case b0 == 251:
		k = 10
		offset = 1
	case b0 == 252:
		k = int(record[1])
		offset = 2
	default:
		// not exercised by these tests
		offset = 1
	}
	suffix := record[offset:]
	out := append([]byte(nil), prevFull[:k]...)
	return append(out, suffix...)
}

func TestMergePartsUncompressed(t *testing.T) {
	dir := t.TempDir()
	parts := writeParts(t, dir, [][]string{
		{"b", "d"},
		{"a", "c"},
	})
	db := filepath.Join(dir, "out.db")
	if err := mergeParts(db, parts, false); err != nil {
		t.Fatalf("mergeParts: %v", err)
	}
	content, err := os.ReadFile(db)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb\nc\nd\n"
	if string(content) != want {
		t.Errorf("merged content = %q; want %q", content, want)
	}
}

func TestMergePartsCompressed(t *testing.T) {
	dir := t.TempDir()
	parts := writeParts(t, dir, [][]string{
		{"/usr/src/cmd/aardvark.c"},
		{"/usr/src", "/usr/src/cmd/armadillo.c", "/usr/tmp/zoo"},
	})
	db := filepath.Join(dir, "out.db")
	if err := mergeParts(db, parts, true); err != nil {
		t.Fatalf("mergeParts: %v", err)
	}
	got := readPaths(t, db)
	want := []string{"/usr/src", "/usr/src/cmd/aardvark.c", "/usr/src/cmd/armadillo.c", "/usr/tmp/zoo"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestMergePartsEmpty(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "out.db")
	if err := mergeParts(db, nil, true); err != nil {
		t.Fatalf("mergeParts: %v", err)
	}
	content, err := os.ReadFile(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) != 0 {
		t.Errorf("expected empty database, got %d bytes", len(content))
	}
}

func TestMergePartsCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	parts := writeParts(t, dir, [][]string{{"a"}})
	db := filepath.Join(dir, "nested", "sub", "out.db")
	if err := mergeParts(db, parts, false); err != nil {
		t.Fatalf("mergeParts: %v", err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("expected database to exist: %v", err)
	}
}

func TestMergePartsSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.part")
	if err := os.WriteFile(path, []byte("a\n\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "out.db")
	if err := mergeParts(db, []string{path}, false); err != nil {
		t.Fatalf("mergeParts: %v", err)
	}
	content, err := os.ReadFile(db)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, []byte("a\nb\n")) {
		t.Errorf("merged content = %q; want %q", content, "a\nb\n")
	}
}
