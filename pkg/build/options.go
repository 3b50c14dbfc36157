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

// Package build indexes a directory tree into an anlocate database: a
// bounded-memory walker hands batches of paths to an external sorter,
// which spills sorted part files to a scratch directory and then
// k-way merges them into the final, optionally compressed, database.
package build

import (
	"os"

	"go4.org/jsonconfig"
)

// DefaultMemLimit is the in-memory path buffer size the walker fills
// before spilling a batch to a sorted part file, matching
// original_source's own default.
const DefaultMemLimit = 2 * 1000 * 1000 // 2 MB

// Options configures Build.
type Options struct {
	// MemLimit bounds how many bytes of path data the walker buffers
	// before flushing a batch to a part file. Zero means DefaultMemLimit.
	MemLimit int
	// Compress controls whether the merged database is front-compressed.
	Compress bool
	// RemoveRoot, if true, strips the scan root prefix from every
	// indexed path.
	RemoveRoot bool
	// TempDir is the directory under which the scratch directory for
	// part files is created. Empty means os.TempDir().
	TempDir string
}

// DefaultOptions returns the options anlocate uses when none are given
// on the command line: compression on, root kept, system temp dir.
func DefaultOptions() Options {
	return Options{
		MemLimit:   DefaultMemLimit,
		Compress:   true,
		RemoveRoot: false,
		TempDir:    os.TempDir(),
	}
}

// OptionsFromConfig builds an Options from a JSON config object, using
// DefaultOptions for any field the config omits. obj must have had
// every key it recognizes read from it by the time the caller checks
// obj.Validate(), per the go4.org/jsonconfig convention used throughout
// the pack for this style of optional structured config.
func OptionsFromConfig(obj jsonconfig.Obj) Options {
	def := DefaultOptions()
	return Options{
		MemLimit:   obj.OptionalInt("memLimit", def.MemLimit),
		Compress:   obj.OptionalBool("compress", def.Compress),
		RemoveRoot: obj.OptionalBool("removeRoot", def.RemoveRoot),
		TempDir:    obj.OptionalString("tempDir", def.TempDir),
	}
}

func (o Options) withDefaults() Options {
	if o.MemLimit <= 0 {
		o.MemLimit = DefaultMemLimit
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	return o
}
