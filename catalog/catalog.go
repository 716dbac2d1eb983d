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

// Package catalog implements the function catalog: the named operators a
// LogicalPlan Invoke node can carry, each with declared arity/domain, a
// partial simplifier, a partial typer, and an untyper. This is the
// Go-native analogue of dolthub/go-mysql-server's sql/expression function
// registry, specialized to the pure (no Eval) algebra this module needs.
package catalog

import (
	"fmt"

	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/internal/similartext"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
)

// Simplifier is a partial rewrite over an Invoke's already-simplified
// argument trees: it returns (replacement, true) when a simplification
// applies, or (zero, false) to leave the Invoke as-is. A nil Simplifier
// means the function has no simplification rules.
type Simplifier func(args []logical.Plan) (logical.Plan, bool)

// Typer is a partial function from argument types to a result type. It
// may return a Const when every argument is itself Const (constant
// folding at the type level); it returns an error only when the argument
// types are outright incompatible with the function's domain.
type Typer func(argTypes []typesys.Type) (typesys.Type, error)

// Untyper runs in the opposite direction: given an expected result type,
// it either yields the list of argument types required to produce it, or
// fails with a TypeError. Not every function can be usefully inverted;
// such functions supply an Untyper that always fails.
type Untyper func(expected typesys.Type) ([]typesys.Type, error)

// Function is one entry of the catalog.
type Function struct {
	Name string
	Doc  string
	// Arity is the fixed argument count, or -1 for variadic functions
	// (MakeArrayN, ObjectConcat, Coalesce, Concat, ...).
	Arity  int
	Domain []typesys.Type

	Simplify Simplifier
	Type     Typer
	Untype   Untyper
}

// FuncName implements logical.Func so a *Function can be carried directly
// by a logical.Plan Invoke node.
func (f *Function) FuncName() string { return f.Name }

// CheckArity validates that len(args) is acceptable for f's declared
// arity, returning a GenericError if not.
func (f *Function) CheckArity(n int) error {
	if f.Arity >= 0 && n != f.Arity {
		return cerrors.Generic(fmt.Sprintf("%s: expected %d argument(s), got %d", f.Name, f.Arity, n))
	}
	return nil
}

// Catalog is a registry of Functions keyed by name.
type Catalog struct {
	byName map[string]*Function
}

// New builds an empty Catalog.
func New() *Catalog {
	return &Catalog{byName: map[string]*Function{}}
}

// Register adds fn to the catalog. It panics on a duplicate name: the
// catalog is built once, at init time, from a fixed literal set, so a
// collision is a programming error, not a runtime condition.
func (c *Catalog) Register(fn *Function) {
	if _, exists := c.byName[fn.Name]; exists {
		panic("catalog: duplicate function " + fn.Name)
	}
	c.byName[fn.Name] = fn
}

// Lookup returns the named function, or (nil, false).
func (c *Catalog) Lookup(name string) (*Function, bool) {
	fn, ok := c.byName[name]
	return fn, ok
}

// MustLookup panics if name is not registered; used for compiler-internal
// references to catalog functions that must exist by construction.
func (c *Catalog) MustLookup(name string) *Function {
	fn, ok := c.Lookup(name)
	if !ok {
		panic("catalog: unknown function " + name)
	}
	return fn
}

// LookupOrSuggest is Lookup for a name that came from a SQL query rather
// than from compiler-internal construction: an unresolved name is a user
// mistake, not a programming error, so the failure carries a "maybe you
// mean X?" hint instead of panicking.
func (c *Catalog) LookupOrSuggest(name string) (*Function, error) {
	if fn, ok := c.Lookup(name); ok {
		return fn, nil
	}
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	return nil, cerrors.Generic(fmt.Sprintf("unknown function %q%s", name, similartext.Find(names, name)))
}

// Default is the catalog populated by this package's init functions with
// every operator this module supports.
var Default = New()
