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

// Package locateerr defines the semantic error kinds shared by anlocate's
// builder and searcher.
package locateerr

import (
	"github.com/pkg/errors"
)

// Kind classifies why an anlocate operation failed.
type Kind int

const (
	// IO covers underlying stream, file or directory errors, including
	// truncation reported as io.ErrUnexpectedEOF.
	IO Kind = iota
	// Encoding means database bytes did not decode to valid UTF-8.
	Encoding
	// InvalidArgument means a scan root is not a directory, or a
	// database path could not be opened.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case Encoding:
		return "Encoding"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying error with a Kind.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

// New returns a new Error of the given Kind with the given message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, err: errors.New(msg)}
}

// Wrap wraps err with the given Kind and message, or returns nil if err
// is nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: errors.Wrap(err, msg)}
}

// Wrapf is like Wrap with a format string.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: errors.Wrapf(err, format, args...)}
}

// KindOf reports the Kind of err, if err (or something it wraps) is an
// *Error. The second return is false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
