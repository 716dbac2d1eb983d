// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cerrors declares the error taxonomy shared by the compiler and
// function catalog. Every user-facing error is a *errors.Kind from
// gopkg.in/src-d/go-errors.v1, the same sentinel-kind pattern
// dolthub/go-mysql-server uses throughout sql/errors.go; callers match on
// kind with Is/As-style helpers (errorkind.Is) rather than string
// comparison.
package cerrors

import (
	errorkind "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrFunctionNotBound is returned when an identifier resolves
	// semantically to an unknown function.
	ErrFunctionNotBound = errorkind.NewKind("function not bound: %s")

	// ErrCompiledTableMissing is returned when an expression references a
	// table context that was not established on the table-context stack.
	ErrCompiledTableMissing = errorkind.NewKind("compiled table missing: %s")

	// ErrCompiledSubtableMissing is returned when an expression references
	// a subtable that was not established in the active table context.
	ErrCompiledSubtableMissing = errorkind.NewKind("compiled subtable missing: %s")

	// ErrNoTableDefined is returned when provenance yields zero named
	// relations for an identifier.
	ErrNoTableDefined = errorkind.NewKind("no table defined for identifier: %s")

	// ErrAmbiguousReference is returned when provenance yields more than
	// one named relation for an identifier and disambiguation failed.
	ErrAmbiguousReference = errorkind.NewKind("ambiguous reference %q: could refer to %v")

	// ErrExpectedLiteral is returned when a position syntactically
	// requiring a literal received a non-literal expression.
	ErrExpectedLiteral = errorkind.NewKind("expected a literal in %s position, got %T")

	// ErrTypeError is returned when the untyper or a partial typer
	// rejects a shape of argument types.
	ErrTypeError = errorkind.NewKind("type error: expected %s, observed %s")

	// ErrDateFormat is returned when a temporal literal fails to parse.
	ErrDateFormat = errorkind.NewKind("could not parse %s %q: %s")

	// ErrGeneric covers any other compilation-logic violation (escape
	// strings longer than one character, division by a literal zero).
	ErrGeneric = errorkind.NewKind("%s")
)

// TypeError constructs a rich type-error value. expected and observed are
// human-readable type descriptions; hint may be empty.
func TypeError(expected, observed, hint string) error {
	if hint == "" {
		return ErrTypeError.New(expected, observed)
	}
	return ErrTypeError.New(expected, observed+" ("+hint+")")
}

// DateFormatError constructs a DateFormatError(kind, input, hint) value.
func DateFormatError(kind, input, hint string) error {
	return ErrDateFormat.New(kind, input, hint)
}

// Generic wraps an ad-hoc message as a GenericError.
func Generic(msg string) error {
	return ErrGeneric.New(msg)
}
