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

// Package reshape holds the physical-expression and reshape types shared
// by the Workflow IR, the pipeline optimizer, and the shape resolver:
// Expression, Reshape/Shape, IdHandling, Accumulator and Grouped. It has
// no dependency on the Stage tree itself so both the workflow and shape
// packages can build on it without an import cycle.
package reshape

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/fieldpath"
)

// ExprTag discriminates Expression variants.
type ExprTag uint8

const (
	// ExprVar is a field reference, "$var(DocVar)".
	ExprVar ExprTag = iota
	// ExprInclude is "$include()": keep the source value at this position.
	ExprInclude
	// ExprLiteral wraps a Data literal.
	ExprLiteral
	// ExprOp is an n-ary physical operator ($add, $concat, $cond, ...).
	ExprOp
)

// Expr is a physical-pipeline expression: the value language used inside
// $Project/$Group/$Match stages, distinct from the LogicalPlan's function
// catalog (this is the target language a LogicalPlan Invoke gets compiled
// down to by the external planner).
type Expr struct {
	tag ExprTag

	docvar fieldpath.DocVar

	lit data.Value

	op   string
	args []Expr
}

// Var builds a $var(d) expression.
func Var(d fieldpath.DocVar) Expr { return Expr{tag: ExprVar, docvar: d} }

// Include builds a $include() expression.
func Include() Expr { return Expr{tag: ExprInclude} }

// Literal builds a $literal(Data) expression.
func Literal(v data.Value) Expr { return Expr{tag: ExprLiteral, lit: v} }

// Op builds an n-ary physical operator expression.
func Op(name string, args ...Expr) Expr { return Expr{tag: ExprOp, op: name, args: args} }

// Tag returns the variant tag.
func (e Expr) Tag() ExprTag { return e.tag }

// DocVar returns the field reference payload; only valid when
// Tag() == ExprVar.
func (e Expr) DocVar() fieldpath.DocVar { return e.docvar }

// LiteralValue returns the literal payload; only valid when
// Tag() == ExprLiteral.
func (e Expr) LiteralValue() data.Value { return e.lit }

// OpName and OpArgs decompose an operator expression; only valid when
// Tag() == ExprOp.
func (e Expr) OpName() string  { return e.op }
func (e Expr) OpArgs() []Expr  { return e.args }

// WithOpArgs rebuilds an ExprOp node with new arguments, preserving its
// operator name; used by fixExpr's catamorphism.
func (e Expr) WithOpArgs(args []Expr) Expr {
	return Expr{tag: ExprOp, op: e.op, args: args}
}

// Equal is structural equality.
func (e Expr) Equal(other Expr) bool {
	if e.tag != other.tag {
		return false
	}
	switch e.tag {
	case ExprVar:
		return e.docvar.Equal(other.docvar)
	case ExprInclude:
		return true
	case ExprLiteral:
		return e.lit.Equal(other.lit)
	case ExprOp:
		if e.op != other.op || len(e.args) != len(other.args) {
			return false
		}
		for i := range e.args {
			if !e.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FreeVars collects the DocVars e references, in a stable
// depth-first order (duplicates included; callers needing a set should
// dedupe by DocVar.String()).
func FreeVars(e Expr) []fieldpath.DocVar {
	switch e.tag {
	case ExprVar:
		return []fieldpath.DocVar{e.docvar}
	case ExprOp:
		var out []fieldpath.DocVar
		for _, a := range e.args {
			out = append(out, FreeVars(a)...)
		}
		return out
	default:
		return nil
	}
}

func (e Expr) String() string {
	switch e.tag {
	case ExprVar:
		return e.docvar.String()
	case ExprInclude:
		return "$include()"
	case ExprLiteral:
		if e.lit.Kind() == data.KindStr && strings.HasPrefix(e.lit.Str(), "$") {
			return fmt.Sprintf(`{"$literal": %q}`, e.lit.Str())
		}
		return fmt.Sprintf("{$literal: %s}", e.lit.String())
	case ExprOp:
		parts := make([]string, len(e.args))
		for i, a := range e.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", e.op, strings.Join(parts, ", "))
	default:
		return "<invalid>"
	}
}
