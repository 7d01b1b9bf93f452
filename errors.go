// Copyright 2026 EzKito
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convert

import (
	"errors"
	"fmt"
	"strings"
)

// MissingFieldError is returned when the request omits the source or target
// format, or both.
type MissingFieldError struct {
	Source bool // source format missing
	Target bool // target format missing
}

func (e *MissingFieldError) Error() string {
	switch {
	case e.Source && e.Target:
		return "Please select both source and target formats."
	case e.Source:
		return "Please select a source format."
	default:
		return "Please select a target format."
	}
}

// UnsupportedConversionError is returned when the (source, target) pair is
// not in the capability matrix.
type UnsupportedConversionError struct {
	Source string
	Target string
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("Conversion from %s to %s is not supported.",
		strings.ToUpper(e.Source), strings.ToUpper(e.Target))
}

// NoFilesError is returned when the request carries no input files.
type NoFilesError struct{}

func (e *NoFilesError) Error() string {
	return "Please upload at least one file."
}

// ExtensionMismatchError lists every input file whose extension does not
// match the declared source format. Files is in input order.
type ExtensionMismatchError struct {
	Format string
	Files  []string
}

func (e *ExtensionMismatchError) Error() string {
	return fmt.Sprintf("The following files do not match .%s: %s",
		e.Format, strings.Join(e.Files, ", "))
}

// ToolMissingError is returned when an external tool required by the
// selected strategy is not installed. It indicates a deployment problem
// rather than a bad input.
type ToolMissingError struct {
	Tool string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s is required for this conversion but was not found on the system", e.Tool)
}

// ToolFailedError is returned when an external tool ran but exited with an
// error (or was killed by the per-invocation timeout).
type ToolFailedError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolFailedError) Error() string {
	msg := fmt.Sprintf("%s failed to convert the file", e.Tool)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *ToolFailedError) Unwrap() error { return e.Err }

// OutputMissingError is returned when an external tool exited successfully
// but the expected output file was not produced.
type OutputMissingError struct {
	Tool string
	Path string
}

func (e *OutputMissingError) Error() string {
	return fmt.Sprintf("converted file not found after %s conversion", e.Tool)
}

// DecodeError is returned when an input file cannot be decoded. It carries
// the offending filename so the user can tell which file broke the batch.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnimplementedError is returned when a request passes validation but no
// strategy rule matches. Given a correct capability matrix this is
// unreachable; it exists so a matrix/selector mismatch degrades to a
// user-visible failure instead of a crash.
type UnimplementedError struct {
	Source string
	Target string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("conversion for %s to %s is not implemented",
		strings.ToUpper(e.Source), strings.ToUpper(e.Target))
}

// IsToolMissing reports whether the error indicates a missing external tool.
func IsToolMissing(err error) bool {
	var target *ToolMissingError
	return errors.As(err, &target)
}

// IsValidationError reports whether the error was produced by request
// validation, before any conversion work started.
func IsValidationError(err error) bool {
	var mf *MissingFieldError
	var uc *UnsupportedConversionError
	var nf *NoFilesError
	var em *ExtensionMismatchError
	return errors.As(err, &mf) || errors.As(err, &uc) ||
		errors.As(err, &nf) || errors.As(err, &em)
}
