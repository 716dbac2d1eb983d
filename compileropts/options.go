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

// Package compileropts carries the compiler's configuration knobs as a
// plain struct, loadable from a TOML file so cmd/planharness and tests
// can describe a compile in a fixture instead of Go code.
package compileropts

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Options configures a single call to compiler.NewState. The zero value
// is a usable default: fresh names are prefixed "tmp" and identifiers
// are matched case-sensitively.
type Options struct {
	// FreshNamePrefix prefixes every generated Let/Free name the
	// pipeline introduces; defaults to "tmp" when empty.
	FreshNamePrefix string `toml:"fresh_name_prefix"`

	// FoldIdentifierCase makes identifier resolution match in-scope
	// output field names (SELECT aliases) case-insensitively. Relation
	// names and raw table-column names are compared as given.
	FoldIdentifierCase bool `toml:"fold_identifier_case"`

	// MaxJoinDepth bounds how deeply compileFrom recurses through a
	// chain of joins before giving up with an internal-invariant error,
	// guarding against a pathologically deep or cyclic FROM clause.
	MaxJoinDepth int `toml:"max_join_depth"`

	// RegexEngine selects the internal/regex engine ("go" or "native")
	// used to constant-fold Search(str, regex) while type-checking a
	// LIKE predicate during compilation; empty keeps the package's own
	// default. Both registered engines wrap regexp.Regexp today, but
	// the knob is what a future native (non-stdlib) matcher would hang
	// off without touching the compiler.
	RegexEngine string `toml:"regex_engine"`
}

// DefaultMaxJoinDepth is MaxJoinDepth's effective value when Options
// leaves it unset.
const DefaultMaxJoinDepth = 64

// Load reads Options from a TOML file at path.
func Load(path string) (Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, errors.Wrapf(err, "compileropts: decoding %s", path)
	}
	return opts, nil
}

// EffectiveMaxJoinDepth returns MaxJoinDepth, or DefaultMaxJoinDepth if
// it is unset.
func (o Options) EffectiveMaxJoinDepth() int {
	if o.MaxJoinDepth <= 0 {
		return DefaultMaxJoinDepth
	}
	return o.MaxJoinDepth
}
