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
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// scratchDir creates a fresh, randomly-named directory under base for
// this build's part files and returns it along with a cleanup func that
// removes it. The random suffix lets multiple builds share one temp
// directory without colliding.
func scratchDir(base string) (dir string, cleanup func(), err error) {
	dir = filepath.Join(base, "anlocate-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, errors.Wrapf(err, "create scratch dir %q", dir)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// writePartFile sorts batch in place and writes it, one path per line,
// to dir/<index>.part, returning the part file's path.
func writePartFile(dir string, index int, batch []string) (string, error) {
	sort.Strings(batch)

	path := filepath.Join(dir, fmt.Sprintf("%d.part", index))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create part file %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range batch {
		if _, err := w.WriteString(p); err != nil {
			return "", errors.Wrapf(err, "write part file %q", path)
		}
		if err := w.WriteByte('\n'); err != nil {
			return "", errors.Wrapf(err, "write part file %q", path)
		}
	}
	if err := w.Flush(); err != nil {
		return "", errors.Wrapf(err, "flush part file %q", path)
	}
	return path, nil
}

// sortToParts drains batches off the walker's channel, closed by the
// walker once the directory tree is exhausted (or its send aborts
// early, see Build), and spills each one, independently sorted, to its
// own part file under dir. It returns the part file paths in the order
// they were created, which is also the order the k-way merge expects
// them in — any order is fine there, but listing them predictably makes
// failures easier to diagnose.
func sortToParts(dir string, batches <-chan []string) ([]string, error) {
	var parts []string
	i := 0
	for batch := range batches {
		path, err := writePartFile(dir, i, batch)
		if err != nil {
			return nil, err
		}
		parts = append(parts, path)
		i++
	}
	return parts, nil
}
