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

// Package cmdmain contains the shared subcommand-dispatch machinery for
// the anlocate binary's build, search and stat modes.
package cmdmain

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	FlagHelp    = flag.Bool("help", false, "print usage")
	FlagVerbose = flag.Bool("verbose", false, "extra debug logging")
)

// ErrUsage is returned by a CommandRunner to request the generic usage
// message be printed alongside its own.
var ErrUsage = UsageError("invalid command")

// UsageError is the error type a CommandRunner returns to signal a
// command-line usage mistake rather than an operational failure.
type UsageError string

func (ue UsageError) Error() string {
	return "Usage error: " + string(ue)
}

var (
	modeCommand = make(map[string]CommandRunner)
	modeFlags   = make(map[string]*flag.FlagSet)
	wantHelp    = make(map[string]*bool)

	Stderr io.Writer = os.Stderr
	Stdout io.Writer = os.Stdout

	Exit = realExit
)

func realExit(code int) {
	os.Exit(code)
}

// CommandRunner is the type a mode must implement.
type CommandRunner interface {
	Usage()
	RunCommand(args []string) error
}

type exampler interface {
	Examples() []string
}

type describer interface {
	Describe() string
}

// RegisterCommand adds a mode to the set of modes Main dispatches to.
// It's meant to be called from init().
func RegisterCommand(mode string, makeCmd func(flags *flag.FlagSet) CommandRunner) {
	if _, dup := modeCommand[mode]; dup {
		panic("duplicate command " + mode + " registered")
	}
	flags := flag.NewFlagSet(mode+" options", flag.ContinueOnError)
	flags.Usage = func() {}

	var cmdHelp bool
	flags.BoolVar(&cmdHelp, "help", false, "Help for this mode.")
	wantHelp[mode] = &cmdHelp
	modeFlags[mode] = flags
	modeCommand[mode] = makeCmd(flags)
}

func hasFlags(flags *flag.FlagSet) bool {
	any := false
	flags.VisitAll(func(*flag.Flag) { any = true })
	return any
}

// Errorf prints to Stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, format, args...)
}

func usage(msg string) {
	cmdName := filepath.Base(os.Args[0])
	if msg != "" {
		Errorf("Error: %v\n", msg)
	}
	Errorf(`
Usage: ` + cmdName + ` [globalopts] <mode> [modeopts] [modeargs]

Modes:

`)
	for mode, cmd := range modeCommand {
		if des, ok := cmd.(describer); ok {
			Errorf("  %s: %s\n", mode, des.Describe())
		}
	}
	Errorf("\nExamples:\n")
	for mode, cmd := range modeCommand {
		if ex, ok := cmd.(exampler); ok {
			for _, example := range ex.Examples() {
				Errorf("  %s %s %s\n", cmdName, mode, example)
			}
		}
	}
	Errorf(`
For mode-specific help:

  ` + cmdName + ` <mode> -help

Global options:
`)
	flag.PrintDefaults()
	Exit(1)
}

func help(mode string) {
	cmdName := os.Args[0]
	cmd := modeCommand[mode]
	cmdFlags := modeFlags[mode]
	cmdFlags.SetOutput(Stderr)
	if des, ok := cmd.(describer); ok {
		Errorf("%s\n", des.Describe())
	}
	Errorf("\n")
	cmd.Usage()
	if hasFlags(cmdFlags) {
		cmdFlags.PrintDefaults()
	}
	if ex, ok := cmd.(exampler); ok {
		Errorf("\nExamples:\n")
		for _, example := range ex.Examples() {
			Errorf("  %s %s %s\n", cmdName, mode, example)
		}
	}
}

// Main parses os.Args, dispatches to the requested mode's
// CommandRunner, and exits the process with the resulting status.
func Main() {
	flag.Parse()

	args := flag.Args()
	if *FlagHelp {
		usage("")
	}
	if len(args) == 0 {
		usage("No mode given.")
	}

	mode := args[0]
	cmd, ok := modeCommand[mode]
	if !ok {
		usage(fmt.Sprintf("Unknown mode %q", mode))
	}

	cmdFlags := modeFlags[mode]
	cmdFlags.SetOutput(Stderr)
	err := cmdFlags.Parse(args[1:])
	if err != nil {
		err = ErrUsage
	} else if *wantHelp[mode] {
		help(mode)
		return
	} else {
		err = cmd.RunCommand(cmdFlags.Args())
	}

	if ue, isUsage := err.(UsageError); isUsage {
		Errorf("%s\n", ue)
		cmd.Usage()
		Errorf("\nGlobal options:\n")
		flag.PrintDefaults()
		if hasFlags(cmdFlags) {
			Errorf("\nMode-specific options for mode %q:\n", mode)
			cmdFlags.PrintDefaults()
		}
		Exit(1)
	}
	if err != nil {
		Errorf("Error: %v\n", err)
		Exit(2)
	}
}
