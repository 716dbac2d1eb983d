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

// Package compiler lowers an already-annotated SQL surface tree (the
// output of an upstream semantic analyzer this module does not implement)
// into the LogicalPlan IR of package logical. It owns identifier
// resolution, LIKE-to-regex lowering, CASE desugaring and the grouped
// SELECT pipeline, mirroring the role sql/planbuilder plays for
// dolthub/go-mysql-server's own sql.Node tree.
package compiler

import (
	"fmt"

	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ExprTag discriminates Expr variants of the annotated expression tree.
type ExprTag uint8

const (
	ExprIdent ExprTag = iota
	ExprLiteral
	ExprBinop
	ExprUnop
	ExprInvoke
	ExprLike
	ExprCase
	ExprSplice
	ExprSetLiteral
	ExprArrayLiteral
)

// Provenance names the source relations an Ident depends on, as resolved
// by semantic analysis; empty for identifiers that are already known to
// be in-scope output fields rather than raw table columns.
type Provenance []string

// Expr is one node of the annotated expression tree the compiler
// consumes. Like logical.Plan and workflow.Stage, it is a tagged union
// stored by value with a Tag plus accessor methods meaningful only for
// the matching tag.
type Expr struct {
	tag ExprTag

	// Ident
	name       string
	provenance Provenance

	// Literal
	val data.Value

	// Binop / Unop / Like (lhs/rhs reused as subject/pattern)
	op       string
	lhs, rhs *Expr
	escape   *Expr // Like only; nil means no ESCAPE clause

	// Invoke: fn is the bound function; op and lhs/rhs unused
	fn   *catalog.Function
	args []Expr

	// Case
	caseOperand *Expr // nil for a searched CASE
	whens       []Expr
	thens       []Expr
	elseExpr    *Expr

	// Splice: qualifier is "" for a bare "*", else a table name for "t.*"
	qualifier string

	// SetLiteral / ArrayLiteral
	elems []Expr
}

func (e Expr) Tag() ExprTag          { return e.tag }
func (e Expr) Name() string          { return e.name }
func (e Expr) Provenance() Provenance { return e.provenance }
func (e Expr) Val() data.Value       { return e.val }
func (e Expr) Op() string            { return e.op }
func (e Expr) Lhs() Expr             { return *e.lhs }
func (e Expr) Rhs() Expr             { return *e.rhs }
func (e Expr) HasEscape() bool       { return e.escape != nil }
func (e Expr) Escape() Expr          { return *e.escape }
func (e Expr) Fn() *catalog.Function { return e.fn }
func (e Expr) Args() []Expr          { return e.args }
func (e Expr) CaseOperand() (Expr, bool) {
	if e.caseOperand == nil {
		return Expr{}, false
	}
	return *e.caseOperand, true
}
func (e Expr) Whens() []Expr { return e.whens }
func (e Expr) Thens() []Expr { return e.thens }
func (e Expr) Else() (Expr, bool) {
	if e.elseExpr == nil {
		return Expr{}, false
	}
	return *e.elseExpr, true
}
func (e Expr) Qualifier() string { return e.qualifier }
func (e Expr) Elems() []Expr     { return e.elems }

// Ident builds an identifier reference. provenance is the set of
// relations semantic analysis determined this name could come from; it
// is consulted only when name is not already an in-scope output field.
func Ident(name string, provenance ...string) Expr {
	return Expr{tag: ExprIdent, name: name, provenance: Provenance(provenance)}
}

// Literal builds a literal value node.
func Literal(v data.Value) Expr { return Expr{tag: ExprLiteral, val: v} }

// LiteralFromAny builds a literal node from a raw Go value the way an
// upstream semantic analyzer's literal nodes produce them (an int, a
// float64, a string, a bool, or nil), converting leniently with
// github.com/spf13/cast rather than requiring the caller to have already
// boxed the value as a data.Value. This is the one place a raw Go value
// crosses into the IR; everything past this boundary is data.Value.
func LiteralFromAny(raw interface{}) (Expr, error) {
	if raw == nil {
		return Literal(data.Null), nil
	}
	switch raw.(type) {
	case bool:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return Expr{}, fmt.Errorf("compiler: literal %v is not a bool: %w", raw, err)
		}
		return Literal(data.Bool(v)), nil
	case string:
		v, err := cast.ToStringE(raw)
		if err != nil {
			return Expr{}, fmt.Errorf("compiler: literal %v is not a string: %w", raw, err)
		}
		return Literal(data.Str(v)), nil
	case float32, float64:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return Expr{}, fmt.Errorf("compiler: literal %v is not a float: %w", raw, err)
		}
		return Literal(data.Dec(decimal.NewFromFloat(v))), nil
	default:
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return Expr{}, fmt.Errorf("compiler: literal %v is not an int: %w", raw, err)
		}
		return Literal(data.IntFromInt64(v)), nil
	}
}

// Binop builds a binary operator application; op is a catalog function
// name ("Add", "Eq", "And", ...).
func Binop(op string, lhs, rhs Expr) Expr {
	return Expr{tag: ExprBinop, op: op, lhs: &lhs, rhs: &rhs}
}

// Unop builds a unary operator application.
func Unop(op string, operand Expr) Expr {
	return Expr{tag: ExprUnop, op: op, lhs: &operand}
}

// Invoke builds a function-call node already bound to a catalog function
// by semantic analysis (the "optionalFuncBinding" attribute).
func Invoke(fn *catalog.Function, args ...Expr) Expr {
	return Expr{tag: ExprInvoke, fn: fn, args: args}
}

// Like builds a LIKE predicate. escape is nil when no ESCAPE clause was
// given.
func Like(subject, pattern Expr, escape *Expr) Expr {
	return Expr{tag: ExprLike, lhs: &subject, rhs: &pattern, escape: escape}
}

// SimpleCase builds a simple CASE (operand compared by equality against
// each WHEN).
func SimpleCase(operand Expr, whens, thens []Expr, els *Expr) Expr {
	return Expr{tag: ExprCase, caseOperand: &operand, whens: whens, thens: thens, elseExpr: els}
}

// SearchedCase builds a searched CASE (each WHEN is itself a boolean
// expression).
func SearchedCase(whens, thens []Expr, els *Expr) Expr {
	return Expr{tag: ExprCase, whens: whens, thens: thens, elseExpr: els}
}

// Splice builds a "*" or "t.*" projection item; qualifier is "" for a
// bare "*".
func Splice(qualifier string) Expr {
	return Expr{tag: ExprSplice, qualifier: qualifier}
}

// SetLiteral builds a SET-literal; every element must compile to a
// Literal (enforced by the compiler, ExpectedLiteral otherwise).
func SetLiteral(elems ...Expr) Expr {
	return Expr{tag: ExprSetLiteral, elems: elems}
}

// ArrayLiteral builds an array-literal; elements may be arbitrary
// expressions.
func ArrayLiteral(elems ...Expr) Expr {
	return Expr{tag: ExprArrayLiteral, elems: elems}
}

// JoinKind is the FROM-clause join variety.
type JoinKind uint8

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
)

func (k JoinKind) String() string {
	switch k {
	case LeftOuterJoin:
		return "LeftOuter"
	case RightOuterJoin:
		return "RightOuter"
	case FullOuterJoin:
		return "FullOuter"
	default:
		return "Inner"
	}
}

// RelTag discriminates Relation variants.
type RelTag uint8

const (
	RelTable RelTag = iota
	RelJoin
)

// Relation is a FROM-clause node: either a named table/collection or a
// JOIN of two relations.
type Relation struct {
	tag   RelTag
	table string

	left, right *Relation
	kind        JoinKind
	clause      *Expr
}

func (r Relation) Tag() RelTag     { return r.tag }
func (r Relation) Table() string   { return r.table }
func (r Relation) Left() Relation  { return *r.left }
func (r Relation) Right() Relation { return *r.right }
func (r Relation) Kind() JoinKind  { return r.kind }
func (r Relation) Clause() Expr    { return *r.clause }

// Table builds a base-relation reference.
func Table(name string) Relation { return Relation{tag: RelTable, table: name} }

// Join builds a JOIN relation.
func Join(left, right Relation, kind JoinKind, clause Expr) Relation {
	return Relation{tag: RelJoin, left: &left, right: &right, kind: kind, clause: &clause}
}

// SelectItem is one SELECT-list entry: either a named (possibly aliased)
// expression or a Splice.
type SelectItem struct {
	Name string // output column name; ignored for a Splice item
	Expr Expr
}

// OrderItem is one ORDER BY key.
type OrderItem struct {
	Expr Expr
	Desc bool
}

// Select is the annotated form of a single SELECT statement (the only
// statement shape this version of the compiler lowers; set operations and
// subqueries are a REDESIGN FLAG left for a follow-up).
type Select struct {
	From        Relation
	Where       *Expr
	GroupBy     []Expr
	Having      *Expr
	Columns     []SelectItem
	OrderBy     []OrderItem
	Distinct    bool
	DistinctBy  []Expr
	Offset      *int64
	Limit       *int64
}
