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

package compiler

import (
	"context"
	"testing"

	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/compileropts"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/stretchr/testify/require"
)

func findInvocation(p logical.Plan, fnName string) (logical.Plan, bool) {
	var found logical.Plan
	ok := false
	logical.Fold(p, func(n logical.Plan, _ []bool) bool {
		if !ok && n.Tag() == logical.TagInvoke && n.Fn() != nil && n.Fn().FuncName() == fnName {
			found = n
			ok = true
		}
		return ok
	})
	return found, ok
}

// letBindsReadTo reports whether p contains a Let binding name directly
// to Read(table), i.e. whether the Free reference name ultimately
// traces back to that table rather than some other intermediate value.
func letBindsReadTo(p logical.Plan, name, table string) bool {
	found := false
	logical.Fold(p, func(n logical.Plan, _ []bool) bool {
		if !found && n.Tag() == logical.TagLet && n.LetName() == name {
			b := n.LetBinding()
			if b.Tag() == logical.TagRead && b.Path() == table {
				found = true
			}
		}
		return found
	})
	return found
}

// S1: SELECT city FROM zips lowers to a single ObjectProject("city") off
// Read("zips"), wrapped by the buildRecord/Squash shape every SELECT
// introduces; the bare form spec.md's scenario gives is that shape after
// the further, external LogicalPlan-to-Workflow lowering this package
// does not perform (see DESIGN.md).
func TestCompileSelect_S1(t *testing.T) {
	sel := &Select{
		From:    Table("zips"),
		Columns: []SelectItem{{Name: "city", Expr: Ident("city", "zips")}},
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	proj, ok := findInvocation(plan, "ObjectProject")
	require.True(t, ok, "expected an ObjectProject in the compiled plan")
	require.True(t, proj.Args()[0].Equal(logical.Read("zips")))
	require.True(t, proj.Args()[1].Equal(logical.Constant(data.Str("city"))))

	_, hasSquash := findInvocation(plan, "Squash")
	require.True(t, hasSquash)
}

// S2: SELECT a, COUNT(*) FROM t GROUP BY a produces a GroupBy keyed on
// ObjectProject(root, "a"), with "a" re-projected through Arbitrary in
// the SELECT list (the grouped-reference rewrite) and COUNT(*) compiled
// to Count(Constant(Int(1))).
func TestCompileSelect_S2(t *testing.T) {
	countFn := catalog.Default.MustLookup("Count")
	sel := &Select{
		From:    Table("t"),
		GroupBy: []Expr{Ident("a", "t")},
		Columns: []SelectItem{
			{Name: "a", Expr: Ident("a", "t")},
			{Name: "c1", Expr: Invoke(countFn, Literal(data.IntFromInt64(1)))},
		},
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	groupBy, ok := findInvocation(plan, "GroupBy")
	require.True(t, ok)
	require.Equal(t, logical.TagFree, groupBy.Args()[0].Tag(), "GroupBy's source should be a bound reference to the FROM table")
	rootName := groupBy.Args()[0].Name()
	require.True(t, letBindsReadTo(plan, rootName, "t"))

	keysArg := groupBy.Args()[1]
	require.Equal(t, "MakeArrayN", keysArg.Fn().FuncName())
	key := keysArg.Args()[0]
	require.Equal(t, "ObjectProject", key.Fn().FuncName())
	require.True(t, key.Args()[0].Equal(logical.Free(rootName)), "the GROUP BY key should be anchored to the same row GroupBy consumes")
	require.True(t, key.Args()[1].Equal(logical.Constant(data.Str("a"))))

	arb, ok := findInvocation(plan, "Arbitrary")
	require.True(t, ok, "expected the grouped reference to 'a' to be wrapped in Arbitrary")
	inner := arb.Args()[0]
	require.Equal(t, "ObjectProject", inner.Fn().FuncName())
	require.True(t, inner.Args()[1].Equal(logical.Constant(data.Str("a"))))
	require.False(t, inner.Args()[0].Equal(groupBy.Args()[0]),
		"the grouped reference to 'a' must read GroupBy's output, not the pre-group table directly")

	count, ok := findInvocation(plan, "Count")
	require.True(t, ok)
	require.True(t, count.Args()[0].Equal(logical.Constant(data.IntFromInt64(1))))
}

// S5: SELECT * FROM t WHERE name LIKE 'A\_%' ESCAPE '\' compiles the
// predicate to Search(ObjectProject(root, "name"), Str("^A_.*$")) inside
// a Filter over Read("t").
func TestCompileSelect_S5(t *testing.T) {
	escape := Literal(data.Str(`\`))
	sel := &Select{
		From: Table("t"),
		Where: func() *Expr {
			e := Like(Ident("name", "t"), Literal(data.Str(`A\_%`)), &escape)
			return &e
		}(),
		Columns: []SelectItem{{Expr: Splice("")}},
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	filter, ok := findInvocation(plan, "Filter")
	require.True(t, ok)
	require.Equal(t, logical.TagFree, filter.Args()[0].Tag())
	require.True(t, letBindsReadTo(plan, filter.Args()[0].Name(), "t"))

	search, ok := findInvocation(plan, "Search")
	require.True(t, ok)
	require.Equal(t, "ObjectProject", search.Args()[0].Fn().FuncName())
	require.True(t, search.Args()[0].Args()[0].Equal(filter.Args()[0]),
		"the LIKE predicate must read from the same row Filter is applied to")
	require.True(t, search.Args()[1].Equal(logical.Constant(data.Str("^A_.*$"))))
}

// JOIN: SELECT * FROM t1 JOIN t2 ON t1.id = t2.id compiles the clause
// against the two base rows before the combined {left,right} shape
// exists, and Join's third argument carries the kind as a string.
func TestCompileSelect_Join(t *testing.T) {
	clause := Binop("Eq", Ident("id", "t1"), Ident("id", "t2"))
	sel := &Select{
		From:    Join(Table("t1"), Table("t2"), InnerJoin, clause),
		Columns: []SelectItem{{Expr: Splice("")}},
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	join, ok := findInvocation(plan, "Join")
	require.True(t, ok)
	require.True(t, join.Args()[2].Equal(logical.Constant(data.Str("Inner"))))
	require.Equal(t, "Eq", join.Args()[3].Fn().FuncName())

	_, ok = findInvocation(plan, "Splice")
	require.True(t, ok)
}

// CASE: a searched CASE with one WHEN desugars to a single Cond, ELSE
// evaluated as the innermost fallback.
func TestCompileSelect_Case(t *testing.T) {
	els := Literal(data.Str("y"))
	caseExpr := SearchedCase(
		[]Expr{Binop("Eq", Ident("a", "t"), Literal(data.IntFromInt64(1)))},
		[]Expr{Literal(data.Str("x"))},
		&els,
	)
	sel := &Select{
		From:    Table("t"),
		Columns: []SelectItem{{Name: "r", Expr: caseExpr}},
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	cond, ok := findInvocation(plan, "Cond")
	require.True(t, ok)
	require.Equal(t, "Eq", cond.Args()[0].Fn().FuncName())
	require.True(t, cond.Args()[1].Equal(logical.Constant(data.Str("x"))))
	require.True(t, cond.Args()[2].Equal(logical.Constant(data.Str("y"))))
}

// DISTINCT with an ORDER BY key not present in the SELECT list forces a
// synthetic carrier field, which must be excluded from the DistinctBy
// key (step 8) and pruned from the final output (step 11) — two
// separate DeleteField applications.
func TestCompileSelect_DistinctWithSyntheticOrderBy(t *testing.T) {
	sel := &Select{
		From:     Table("t"),
		Columns:  []SelectItem{{Name: "a", Expr: Ident("a", "t")}},
		OrderBy:  []OrderItem{{Expr: Ident("b", "t")}},
		Distinct: true,
	}

	plan, err := Compile(context.Background(), sel, compileropts.Options{}, nil)
	require.NoError(t, err)

	_, ok := findInvocation(plan, "DistinctBy")
	require.True(t, ok)

	deletes := logical.Fold(plan, func(n logical.Plan, kids []int) int {
		total := 0
		for _, k := range kids {
			total += k
		}
		if n.Tag() == logical.TagInvoke && n.Fn() != nil && n.Fn().FuncName() == "DeleteField" {
			total++
		}
		return total
	})
	require.GreaterOrEqual(t, deletes, 2, "synthetic ORDER BY field must be stripped both from the DistinctBy key and the final output")
}

func TestLikePatternToRegex(t *testing.T) {
	require.Equal(t, "^A_.*$", likePatternToRegex(`A\_%`, `\`))
	require.Equal(t, "^a.b.*$", likePatternToRegex("a_b%", ""))
	require.Equal(t, `^a\.b$`, likePatternToRegex("a.b", ""))
}

func TestInlineLetsCollapsesSingleUse(t *testing.T) {
	p := logical.Let("tmp0", logical.Read("t"), logical.Free("tmp0"))
	require.True(t, inlineLets(p).Equal(logical.Read("t")))
}

func TestInlineLetsKeepsMultiUse(t *testing.T) {
	body := logical.Invoke(catalog.Default.MustLookup("ObjectConcat"), logical.Free("tmp0"), logical.Free("tmp0"))
	p := logical.Let("tmp0", logical.Read("t"), body)
	require.Equal(t, logical.TagLet, inlineLets(p).Tag())
}
