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
	"strings"

	"github.com/kl/SearchAnywhere/internal/cmdmain"
	"github.com/kl/SearchAnywhere/pkg/locateerr"
	"github.com/kl/SearchAnywhere/pkg/search"
)

// excludeFlags collects repeated -exclude flag occurrences, giving the
// CLI access to the exclude side of the conjunction the bindings
// surface exposes natively.
type excludeFlags []string

func (e *excludeFlags) String() string {
	if e == nil {
		return ""
	}
	return strings.Join(*e, ",")
}

func (e *excludeFlags) Set(v string) error {
	*e = append(*e, v)
	return nil
}

type searchCmd struct {
	excludes excludeFlags
}

func init() {
	cmdmain.RegisterCommand("search", func(flags *flag.FlagSet) cmdmain.CommandRunner {
		cmd := new(searchCmd)
		flags.Var(&cmd.excludes, "exclude", "Substring a result must NOT contain. May be repeated.")
		return cmd
	})
}

func (c *searchCmd) Describe() string {
	return "Print every indexed path matching all the given substrings."
}

func (c *searchCmd) Usage() {
	fmt.Fprintf(cmdmain.Stderr, "Usage: anlocate search [opts] <db_path> <text> [<text> ...]\n")
}

func (c *searchCmd) Examples() []string {
	return []string{"/var/lib/anlocate/anlocate.db .c", "--exclude aard /var/lib/anlocate/anlocate.db .c"}
}

func (c *searchCmd) RunCommand(args []string) error {
	if len(args) < 1 {
		return cmdmain.UsageError("search takes a <db_path> and at least one query term, unless only -exclude terms are given")
	}
	dbPath := args[0]
	terms := args[1:]
	if len(terms) == 0 && len(c.excludes) == 0 {
		return cmdmain.UsageError("search needs at least one include or exclude term")
	}

	f, err := os.Open(dbPath)
	if err != nil {
		return locateerr.Wrap(locateerr.InvalidArgument, err, "opening database")
	}
	defer f.Close()

	var queries []search.Query
	for _, t := range terms {
		queries = append(queries, search.NewQuery(t, search.Include))
	}
	for _, t := range c.excludes {
		queries = append(queries, search.NewQuery(t, search.Exclude))
	}

	matches, err := search.Search(bufio.NewReader(f), queries)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(cmdmain.Stdout)
	for _, m := range matches {
		fmt.Fprintln(w, m)
	}
	return w.Flush()
}
