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

package main

import (
	"flag"
	"fmt"
	"os"

	"go4.org/jsonconfig"

	"github.com/kl/SearchAnywhere/internal/cmdmain"
	"github.com/kl/SearchAnywhere/pkg/build"
)

type buildCmd struct {
	memLimit   int
	noCompress bool
	removeRoot bool
	tempDir    string
	config     string
}

func init() {
	cmdmain.RegisterCommand("build", func(flags *flag.FlagSet) cmdmain.CommandRunner {
		cmd := new(buildCmd)
		flags.IntVar(&cmd.memLimit, "mem-limit", build.DefaultMemLimit, "Bytes of path data the walker buffers before spilling to a part file.")
		flags.BoolVar(&cmd.noCompress, "no-compress", false, "Write an uncompressed database.")
		flags.BoolVar(&cmd.removeRoot, "remove-root", false, "Strip the scan root prefix from every indexed path.")
		flags.StringVar(&cmd.tempDir, "temp-dir", "", "Directory for scratch part files (default: system temp dir).")
		flags.StringVar(&cmd.config, "config", "", configFlagHelp)
		return cmd
	})
}

func (c *buildCmd) Describe() string {
	return "Scan a directory tree into a new database."
}

func (c *buildCmd) Usage() {
	fmt.Fprintf(cmdmain.Stderr, "Usage: anlocate build [opts] <db_path> <scan_root>\n")
}

func (c *buildCmd) Examples() []string {
	return []string{"/var/lib/anlocate/anlocate.db /"}
}

func (c *buildCmd) RunCommand(args []string) error {
	if len(args) != 2 {
		return cmdmain.UsageError("build takes exactly <db_path> and <scan_root>")
	}
	dbPath, scanRoot := args[0], args[1]

	opts := build.DefaultOptions()
	if c.config != "" {
		obj, err := jsonconfig.ReadFile(c.config)
		if err != nil {
			return fmt.Errorf("reading config %q: %v", c.config, err)
		}
		opts = build.OptionsFromConfig(obj)
		if err := obj.Validate(); err != nil {
			return fmt.Errorf("config %q: %v", c.config, err)
		}
	}
	if c.memLimit != build.DefaultMemLimit {
		opts.MemLimit = c.memLimit
	}
	if c.noCompress {
		opts.Compress = false
	}
	if c.removeRoot {
		opts.RemoveRoot = true
	}
	if c.tempDir != "" {
		opts.TempDir = c.tempDir
	}

	if err := build.Build(dbPath, scanRoot, opts); err != nil {
		return err
	}
	if *cmdmain.FlagVerbose {
		info, err := os.Stat(dbPath)
		if err == nil {
			fmt.Fprintf(cmdmain.Stdout, "wrote %s (%d bytes)\n", dbPath, info.Size())
		}
	}
	return nil
}
