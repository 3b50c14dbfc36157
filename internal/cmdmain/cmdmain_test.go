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

package cmdmain

import (
	"bytes"
	"flag"
	"os"
	"runtime"
	"testing"
)

type fakeCmd struct {
	ran  []string
	err  error
	desc string
}

func (c *fakeCmd) Usage() {}
func (c *fakeCmd) RunCommand(args []string) error {
	c.ran = args
	return c.err
}
func (c *fakeCmd) Describe() string { return c.desc }

func withArgs(t *testing.T, args []string, fn func()) {
	t.Helper()
	old := os.Args
	oldCmdLine := flag.CommandLine
	os.Args = append([]string{"anlocate-test"}, args...)
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	FlagHelp = flag.Bool("help", false, "print usage")
	defer func() {
		os.Args = old
		flag.CommandLine = oldCmdLine
	}()
	fn()
}

// runMain runs Main to completion on its own goroutine, treating a call
// to Exit as terminal the way os.Exit would be: the fake Exit records
// the code and calls runtime.Goexit so Main never falls through into
// code that assumes the process is already gone, exactly as real
// process exit would prevent.
func runMain(t *testing.T) (exitCode int) {
	t.Helper()
	exitCode = -1
	oldExit := Exit
	Exit = func(code int) {
		exitCode = code
		runtime.Goexit()
	}
	defer func() { Exit = oldExit }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Main()
	}()
	<-done
	return exitCode
}

func TestMainDispatchesToRegisteredMode(t *testing.T) {
	cmd := &fakeCmd{desc: "test mode"}
	modeCommand["test-mode"] = cmd
	modeFlags["test-mode"] = flag.NewFlagSet("test-mode options", flag.ContinueOnError)
	var help bool
	modeFlags["test-mode"].BoolVar(&help, "help", false, "")
	wantHelp["test-mode"] = &help
	defer func() {
		delete(modeCommand, "test-mode")
		delete(modeFlags, "test-mode")
		delete(wantHelp, "test-mode")
	}()

	var stderr bytes.Buffer
	oldStderr := Stderr
	Stderr = &stderr
	defer func() { Stderr = oldStderr }()

	var exitCode int
	withArgs(t, []string{"test-mode", "a", "b"}, func() { exitCode = runMain(t) })

	if exitCode != -1 {
		t.Fatalf("expected no Exit call, got code %d (stderr: %s)", exitCode, stderr.String())
	}
	if len(cmd.ran) != 2 || cmd.ran[0] != "a" || cmd.ran[1] != "b" {
		t.Errorf("RunCommand got args %v; want [a b]", cmd.ran)
	}
}

func TestMainUnknownModeExits(t *testing.T) {
	var stderr bytes.Buffer
	oldStderr := Stderr
	Stderr = &stderr
	defer func() { Stderr = oldStderr }()

	var exitCode int
	withArgs(t, []string{"does-not-exist"}, func() { exitCode = runMain(t) })

	if exitCode != 1 {
		t.Errorf("exitCode = %d; want 1", exitCode)
	}
}
