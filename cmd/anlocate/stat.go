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
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/kl/SearchAnywhere/internal/cmdmain"
	"github.com/kl/SearchAnywhere/pkg/locateerr"
	"github.com/kl/SearchAnywhere/pkg/stats"
)

type statCmd struct{}

func init() {
	cmdmain.RegisterCommand("stat", func(flags *flag.FlagSet) cmdmain.CommandRunner {
		return new(statCmd)
	})
}

func (c *statCmd) Describe() string {
	return "Print the indexed file count and database size."
}

func (c *statCmd) Usage() {
	fmt.Fprintf(cmdmain.Stderr, "Usage: anlocate stat <db_path>\n")
}

func (c *statCmd) Examples() []string {
	return []string{"/var/lib/anlocate/anlocate.db"}
}

func (c *statCmd) RunCommand(args []string) error {
	if len(args) != 1 {
		return cmdmain.UsageError("stat takes exactly <db_path>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return locateerr.Wrap(locateerr.InvalidArgument, err, "opening database")
	}
	defer f.Close()

	s, err := stats.Scan(bufio.NewReader(f))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmdmain.Stdout, "indexed_files: %d\nsize_bytes: %d\n", s.IndexedFiles, s.SizeBytes)
	return nil
}
