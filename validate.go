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
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// formatToken matches a lowercase-normalized format identifier.
var formatToken = regexp.MustCompile(`^[a-z0-9]+$`)

// Validate checks a normalized request against the capability matrix and
// the uploaded file set. It is pure inspection; passing is a precondition
// for every strategy invocation.
//
// Checks run in a fixed order and the first failing check wins, with one
// exception: extension checking evaluates every file and reports the union
// of mismatches, so the user sees all offending files in a single pass.
func Validate(req *ConversionRequest) error {
	srcMissing := validation.Validate(req.SourceFormat, validation.Required) != nil
	tgtMissing := validation.Validate(req.TargetFormat, validation.Required) != nil
	if srcMissing || tgtMissing {
		return &MissingFieldError{Source: srcMissing, Target: tgtMissing}
	}

	// A token that fails the shape rule cannot be in the matrix either way;
	// the combined check keeps both failures in the same error class.
	srcShaped := validation.Validate(req.SourceFormat, validation.Match(formatToken)) == nil
	tgtShaped := validation.Validate(req.TargetFormat, validation.Match(formatToken)) == nil
	if !srcShaped || !tgtShaped || !IsSupported(req.SourceFormat, req.TargetFormat) {
		return &UnsupportedConversionError{
			Source: req.SourceFormat,
			Target: req.TargetFormat,
		}
	}

	if len(req.Files) == 0 {
		return &NoFilesError{}
	}

	var mismatched []string
	for _, f := range req.Files {
		if f.Ext() != req.SourceFormat {
			mismatched = append(mismatched, f.Name)
		}
	}
	if len(mismatched) > 0 {
		return &ExtensionMismatchError{
			Format: req.SourceFormat,
			Files:  mismatched,
		}
	}

	return nil
}
